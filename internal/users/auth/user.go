// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity and access management (IAM) core.

It owns account credentials, login, token issuance and the per-request identity
resolution that every protected endpoint depends on.

# Architecture

  - Service: Orchestrates business logic (Register, Login, ChangePassword, admin account state).
  - Resolver: Turns a bearer token into a [sec.Resolution] for the middleware chain.
  - Repository: Postgres for accounts, optional Redis read-through cache for identity lookups.
*/
package auth

import (
	"strings"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	Enabled      bool         `json:"enabled"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Identity projects the account onto the request identity it grants.
func (user *User) Identity() *sec.Identity {
	return sec.NewIdentity(user.ID, user.Email, user.Role, user.Enabled)
}

// NormalizeEmail lowercases and trims an address. Applied on every read and write path.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

// Global field names for validation in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldRole            = "role"
)
