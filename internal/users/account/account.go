// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles profile access and administrative account management.

It exposes the caller's own profile and password change, and the ADMIN-only
user directory with enable, disable and role operations.

# Architecture

  - Entities: This package reuses [auth.User]; it owns no table of its own.
  - Reads: Served by [AccountRepository] (profile, directory listing).
  - Writes: Delegated to the auth service so every mutation invalidates the identity cache.
*/
package account

import (
	"context"

	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the read contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by its ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *auth.User: Loaded account entity
		  - error: dberr.ErrNotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*auth.User, error)

	/*
		List returns one page of accounts ordered by ID.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*auth.User: The page
		  - int: Total number of accounts
		  - error: Storage failures
	*/
	List(context context.Context, params pagination.Params) ([]*auth.User, int, error)
}

// # Collaborators

// AccountManager performs the credential and state mutations owned by the auth service.
type AccountManager interface {
	ChangePassword(context context.Context, userID int64, currentPassword, newPassword string) error
	EnableUser(context context.Context, userID int64) (*auth.User, error)
	DisableUser(context context.Context, userID int64) (*auth.User, error)
	UpdateUserRole(context context.Context, userID int64, role sec.UserRole) (*auth.User, error)
}
