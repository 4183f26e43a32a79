// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating identity tokens.
type TokenIssuer interface {
	// Issue creates a signed token for subject carrying roles.
	Issue(subject string, roles []string) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	hasher         sec.PasswordHasher
	tokenIssuer    TokenIssuer
	invalidator    IdentityInvalidator

	dummyOnce sync.Once
	dummyHash string
}

// NewService constructs a new [Service] with necessary dependencies.
// invalidator may be nil when no identity cache is configured.
func NewService(
	userRepo UserRepository,
	hasher sec.PasswordHasher,
	tokenIssuer TokenIssuer,
	invalidator IdentityInvalidator,
) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		invalidator:    invalidator,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Password string
}

/*
Register normalizes, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (role USER, enabled)
  - error: EMAIL_ALREADY_EXISTS or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	// Uniqueness pre-check. The unique index on lower(email) covers the race.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists(email)
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		Enabled:      true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if errors.Is(err, dberr.ErrConflict) {
			return nil, ErrEmailAlreadyExists(email)
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.Int64("user_id", user.ID))

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token string
	User  *User
}

/*
Login validates user credentials and issues an identity token.

Description: Unknown emails and wrong passwords fail identically, and unknown
emails still pay for a bcrypt comparison. A disabled account is reported only
after its password verified.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token with subject = normalized email, roles = [role]
  - error: INVALID_CREDENTIALS, ACCOUNT_DISABLED or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	email := NormalizeEmail(input.Email)
	logger := ctxutil.GetLogger(context)

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if !errors.Is(err, dberr.ErrNotFound) {
			return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
		}
		service.hasher.Check(input.Password, service.timingHash())
		logger.InfoContext(context, "login_failed", slog.String("reason", "unknown_email"))
		return nil, ErrInvalidCredentials()
	}

	if !service.hasher.Check(input.Password, user.PasswordHash) {
		logger.InfoContext(context, "login_failed", slog.String("reason", "bad_password"), slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials()
	}

	if !user.Enabled {
		logger.InfoContext(context, "login_failed", slog.String("reason", "account_disabled"), slog.Int64("user_id", user.ID))
		return nil, ErrAccountDisabled()
	}

	token, err := service.tokenIssuer.Issue(user.Email, []string{string(user.Role)})
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	logger.InfoContext(context, "login_succeeded", slog.Int64("user_id", user.ID))

	return &LoginResult{Token: token, User: user}, nil
}

// timingHash returns a throwaway bcrypt hash compared against for unknown emails.
func (service *Service) timingHash() string {
	service.dummyOnce.Do(func() {
		hash, err := service.hasher.Hash("taskboard-unknown-account")
		if err == nil {
			service.dummyHash = hash
		}
	})
	return service.dummyHash
}

// # Credential Management

/*
ChangePassword lets an authenticated user replace their password.

Parameters:
  - context: context.Context
  - userID: int64
  - currentPassword: string
  - newPassword: string

Returns:
  - error: USER_NOT_FOUND, INVALID_CREDENTIALS (hash left unchanged) or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := service.findByID(context, userID)
	if err != nil {
		return err
	}

	if !service.hasher.Check(currentPassword, user.PasswordHash) {
		return ErrCurrentPasswordMismatch()
	}

	hashedPassword, err := service.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return service.mapUserError(err, "auth_service_change_password_update_failed")
	}

	service.invalidate(context, user.Email)
	ctxutil.GetLogger(context).InfoContext(context, "password_changed", slog.Int64("user_id", userID))

	return nil
}

// # Administrative Account State

/*
EnableUser allows an account to authenticate again. Idempotent.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: Account after the change
  - error: USER_NOT_FOUND or storage failures
*/
func (service *Service) EnableUser(context context.Context, userID int64) (*User, error) {
	return service.setEnabled(context, userID, true)
}

/*
DisableUser blocks an account. Existing tokens stop resolving on their next request.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: Account after the change
  - error: USER_NOT_FOUND or storage failures
*/
func (service *Service) DisableUser(context context.Context, userID int64) (*User, error) {
	return service.setEnabled(context, userID, false)
}

func (service *Service) setEnabled(context context.Context, userID int64, enabled bool) (*User, error) {
	user, err := service.findByID(context, userID)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.SetEnabled(context, userID, enabled); err != nil {
		return nil, service.mapUserError(err, "auth_service_set_enabled_failed")
	}

	user.Enabled = enabled
	service.invalidate(context, user.Email)
	ctxutil.GetLogger(context).InfoContext(context, "user_enabled_changed",
		slog.Int64("user_id", userID),
		slog.Bool("enabled", enabled),
	)

	return user, nil
}

/*
UpdateUserRole overwrites the role of an account.

Parameters:
  - context: context.Context
  - userID: int64
  - role: sec.UserRole

Returns:
  - *User: Account after the change
  - error: USER_NOT_FOUND or storage failures
*/
func (service *Service) UpdateUserRole(context context.Context, userID int64, role sec.UserRole) (*User, error) {
	user, err := service.findByID(context, userID)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.UpdateRole(context, userID, role); err != nil {
		return nil, service.mapUserError(err, "auth_service_update_role_failed")
	}

	user.Role = role
	service.invalidate(context, user.Email)
	ctxutil.GetLogger(context).InfoContext(context, "user_role_changed",
		slog.Int64("user_id", userID),
		slog.String("role", string(role)),
	)

	return user, nil
}

// # Bootstrap

/*
EnsureAdmin provisions the configured administrator at startup.

Description: Creates the account when missing. An existing account is promoted
to ADMIN and enabled; its password is left untouched.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *User: The administrator account
  - error: Storage failures
*/
func (service *Service) EnsureAdmin(context context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	logger := ctxutil.GetLogger(context)

	user, err := service.userRepository.FindByEmail(context, email)
	switch {
	case err == nil:
		if user.Role != sec.RoleAdmin {
			if user, err = service.UpdateUserRole(context, user.ID, sec.RoleAdmin); err != nil {
				return nil, err
			}
		}
		if !user.Enabled {
			if user, err = service.EnableUser(context, user.ID); err != nil {
				return nil, err
			}
		}
		logger.InfoContext(context, "bootstrap_admin_ready", slog.Int64("user_id", user.ID))
		return user, nil

	case !errors.Is(err, dberr.ErrNotFound):
		return nil, fmt.Errorf("auth_service_bootstrap_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user = &User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleAdmin,
		Enabled:      true,
	}
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_bootstrap_create_failed: %w", err)
	}

	logger.InfoContext(context, "bootstrap_admin_created", slog.Int64("user_id", user.ID))
	return user, nil
}

// # Helpers

func (service *Service) findByID(context context.Context, userID int64) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, service.mapUserError(err, "auth_service_find_user_failed")
	}
	return user, nil
}

// mapUserError turns a store not-found into USER_NOT_FOUND.
func (service *Service) mapUserError(err error, action string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return ErrUserNotFound()
	}
	return fmt.Errorf("%s: %w", action, err)
}

// invalidate drops the cached identity. Failures are logged; the cache TTL still bounds staleness.
func (service *Service) invalidate(context context.Context, email string) {
	if service.invalidator == nil {
		return
	}
	if err := service.invalidator.Invalidate(context, email); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "identity_cache_invalidate_failed", slog.Any("error", err))
	}
}
