// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// # Service Layer

// Service orchestrates profile reads and administrative account management.
type Service struct {
	accountRepository AccountRepository
	accountManager    AccountManager
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, manager AccountManager) *Service {
	return &Service{
		accountRepository: accountRepo,
		accountManager:    manager,
	}
}

// # Profile Management

/*
GetProfile retrieves the account of the authenticated user.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *auth.User: The hydrated user profile
  - error: USER_NOT_FOUND or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID int64) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, auth.ErrUserNotFound()
		}
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// ChangePassword delegates to the auth service.
func (service *Service) ChangePassword(context context.Context, userID int64, currentPassword, newPassword string) error {
	return service.accountManager.ChangePassword(context, userID, currentPassword, newPassword)
}

// # User Directory (ADMIN)

/*
ListUsers returns one page of accounts.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: The page
  - int: Total number of accounts
  - error: Storage failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	users, total, err := service.accountRepository.List(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_users_failed: %w", err)
	}
	return users, total, nil
}

// GetUser is [Service.GetProfile] for an arbitrary account.
func (service *Service) GetUser(context context.Context, userID int64) (*auth.User, error) {
	return service.GetProfile(context, userID)
}

// EnableUser re-enables an account.
func (service *Service) EnableUser(context context.Context, userID int64) (*auth.User, error) {
	return service.accountManager.EnableUser(context, userID)
}

// DisableUser blocks an account.
func (service *Service) DisableUser(context context.Context, userID int64) (*auth.User, error) {
	return service.accountManager.DisableUser(context, userID)
}

// UpdateUserRole overwrites the role of an account.
func (service *Service) UpdateUserRole(context context.Context, userID int64, role sec.UserRole) (*auth.User, error) {
	return service.accountManager.UpdateUserRole(context, userID, role)
}
