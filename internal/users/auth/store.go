// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups that match nothing return dberr.ErrNotFound. Create returns
// dberr.ErrConflict when the email is taken.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given normalized email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account and fills in its ID and timestamps.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrConflict or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error

	/*
		SetEnabled toggles whether the account may authenticate.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - enabled: bool

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	SetEnabled(context context.Context, userID int64, enabled bool) error

	/*
		UpdateRole overwrites the account's role.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - role: sec.UserRole

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	UpdateRole(context context.Context, userID int64, role sec.UserRole) error
}

// # Identity Lookup

// IdentityLookup loads the account state the resolver needs.
// Implementations may omit the password hash.
type IdentityLookup interface {
	FindByEmail(context context.Context, email string) (*User, error)
}

// IdentityInvalidator drops any cached identity for an email after a mutation.
type IdentityInvalidator interface {
	Invalidate(context context.Context, email string) error
}
