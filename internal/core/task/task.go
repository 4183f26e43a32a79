// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task manages the per-user task board.

Every user-facing operation is scoped to the caller: a task owned by someone
else is indistinguishable from a missing one. Administrators get read-only
listings across all owners.

# Architecture

  - Entity: [Task] with Eisenhower-style urgency and importance flags.
  - Repository: [TaskRepository], implemented over PostgreSQL.
  - Delivery: [Handler] with owner routes and ADMIN listing routes.
*/
package task

import (
	"time"

	"github.com/taibuivan/taskboard/pkg/convert"
)

// # Enumerations

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Urgency flags time pressure.
type Urgency string

const (
	UrgencyUrgent    Urgency = "URGENT"
	UrgencyNotUrgent Urgency = "NOT_URGENT"
)

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	return u == UrgencyUrgent || u == UrgencyNotUrgent
}

// Importance flags impact.
type Importance string

const (
	ImportanceImportant    Importance = "IMPORTANT"
	ImportanceNotImportant Importance = "NOT_IMPORTANT"
)

// Valid reports whether i is a known importance.
func (i Importance) Valid() bool {
	return i == ImportanceImportant || i == ImportanceNotImportant
}

// ParseStatus accepts any letter case and surrounding whitespace.
func ParseStatus(raw string) (Status, bool) {
	status := Status(convert.ToUpperTrim(raw))
	return status, status.Valid()
}

// # Domain Entities

// Task is a single to-do item.
type Task struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Status     Status     `json:"status"`
	Urgency    Urgency    `json:"urgency"`
	Importance Importance `json:"importance"`
	OwnerID    int64      `json:"-"`
	OwnerEmail string     `json:"owner"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Filter narrows a listing. Zero values mean "any".
type Filter struct {
	OwnerID int64
	Status  Status
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldStatus     = "status"
	FieldUrgency    = "urgency"
	FieldImportance = "importance"
)

// Title length bounds in characters.
const (
	MinTitleLength = 3
	MaxTitleLength = 50
)
