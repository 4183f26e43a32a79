// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered identifiers.
//
// Request IDs and token IDs use it so that log lines and issued tokens sort
// by creation time.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Fallback
//
// If the v7 generator fails (entropy source unavailable), a random v4 value
// is returned instead. Callers only need uniqueness, not ordering.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
