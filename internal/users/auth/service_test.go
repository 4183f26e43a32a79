// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/internal/users/auth/authtest"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("an-hs256-test-secret-of-32-bytes"))

// recordingInvalidator captures invalidated emails.
type recordingInvalidator struct {
	emails []string
	err    error
}

func (invalidator *recordingInvalidator) Invalidate(_ context.Context, email string) error {
	invalidator.emails = append(invalidator.emails, email)
	return invalidator.err
}

type fixture struct {
	service     *auth.Service
	users       *authtest.MemoryUserRepository
	tokens      *sec.TokenService
	invalidator *recordingInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, 15*time.Minute, "taskboard-test")
	require.NoError(t, err)

	users := authtest.NewMemoryUserRepository()
	invalidator := &recordingInvalidator{}
	hasher := &sec.BcryptHasher{Cost: bcrypt.MinCost}

	return &fixture{
		service:     auth.NewService(users, hasher, tokens, invalidator),
		users:       users,
		tokens:      tokens,
		invalidator: invalidator,
	}
}

func (f *fixture) register(t *testing.T, email, password string) *auth.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), auth.RegisterInput{Email: email, Password: password})
	require.NoError(t, err)
	return user
}

func requireCode(t *testing.T, err error, status int, code string) *apperr.AppError {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.HTTPStatus)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

/*
TestService_Register covers creation defaults and duplicate detection.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "  Alice@Example.COM ", "secret1")

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.True(t, user.Enabled)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NotZero(t, user.ID)

	t.Run("DuplicateIgnoresCaseAndWhitespace", func(t *testing.T) {
		_, err := f.service.Register(ctx, auth.RegisterInput{Email: "ALICE@example.com  ", Password: "other12"})
		appErr := requireCode(t, err, http.StatusConflict, auth.CodeEmailAlreadyExists)
		assert.Equal(t, "Email already exists: alice@example.com", appErr.Message)
	})
}

/*
TestService_Login covers the credential matrix.
*/
func TestService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "bob@example.com", "secret1")
	disabled := f.register(t, "carol@example.com", "secret1")
	_, err := f.service.DisableUser(ctx, disabled.ID)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		result, err := f.service.Login(ctx, auth.LoginInput{Email: " BOB@example.com", Password: "secret1"})
		require.NoError(t, err)

		assert.True(t, f.tokens.Verify(result.Token))
		assert.Equal(t, "bob@example.com", f.tokens.SubjectOf(result.Token))
		assert.Equal(t, []string{"USER"}, f.tokens.RolesOf(result.Token))
	})

	t.Run("UnknownEmailAndWrongPasswordAreIndistinguishable", func(t *testing.T) {
		_, unknownErr := f.service.Login(ctx, auth.LoginInput{Email: "nobody@example.com", Password: "secret1"})
		_, wrongErr := f.service.Login(ctx, auth.LoginInput{Email: "bob@example.com", Password: "wrong-password"})

		unknown := requireCode(t, unknownErr, http.StatusUnauthorized, auth.CodeInvalidCredentials)
		wrong := requireCode(t, wrongErr, http.StatusUnauthorized, auth.CodeInvalidCredentials)
		assert.Equal(t, unknown.Message, wrong.Message)
	})

	t.Run("DisabledAfterCorrectPassword", func(t *testing.T) {
		_, err := f.service.Login(ctx, auth.LoginInput{Email: "carol@example.com", Password: "secret1"})
		requireCode(t, err, http.StatusForbidden, auth.CodeAccountDisabled)
	})

	t.Run("DisabledWithWrongPassword", func(t *testing.T) {
		_, err := f.service.Login(ctx, auth.LoginInput{Email: "carol@example.com", Password: "nope123"})
		requireCode(t, err, http.StatusUnauthorized, auth.CodeInvalidCredentials)
	})
}

/*
TestService_ChangePassword verifies a failed change leaves the stored hash untouched.
*/
func TestService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "dave@example.com", "secret1")

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		before, err := f.users.FindByID(ctx, user.ID)
		require.NoError(t, err)

		err = f.service.ChangePassword(ctx, user.ID, "not-it", "newpass1")
		requireCode(t, err, http.StatusBadRequest, auth.CodeInvalidCredentials)

		after, err := f.users.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, before.PasswordHash, after.PasswordHash)
	})

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, f.service.ChangePassword(ctx, user.ID, "secret1", "newpass1"))

		_, err := f.service.Login(ctx, auth.LoginInput{Email: "dave@example.com", Password: "secret1"})
		requireCode(t, err, http.StatusUnauthorized, auth.CodeInvalidCredentials)

		_, err = f.service.Login(ctx, auth.LoginInput{Email: "dave@example.com", Password: "newpass1"})
		assert.NoError(t, err)
		assert.Contains(t, f.invalidator.emails, "dave@example.com")
	})

	t.Run("UnknownUser", func(t *testing.T) {
		err := f.service.ChangePassword(ctx, 9999, "secret1", "newpass1")
		requireCode(t, err, http.StatusNotFound, auth.CodeUserNotFound)
	})
}

/*
TestService_AccountState covers enable, disable and role updates.
*/
func TestService_AccountState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "erin@example.com", "secret1")

	disabled, err := f.service.DisableUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	// Idempotent
	_, err = f.service.DisableUser(ctx, user.ID)
	require.NoError(t, err)

	enabled, err := f.service.EnableUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, enabled.Enabled)

	promoted, err := f.service.UpdateUserRole(ctx, user.ID, sec.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, promoted.Role)

	stored, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, stored.Role)
	assert.True(t, stored.Enabled)

	assert.Len(t, f.invalidator.emails, 4)

	for name, call := range map[string]func() error{
		"Enable":  func() error { _, err := f.service.EnableUser(ctx, 404); return err },
		"Disable": func() error { _, err := f.service.DisableUser(ctx, 404); return err },
		"Role":    func() error { _, err := f.service.UpdateUserRole(ctx, 404, sec.RoleUser); return err },
	} {
		t.Run("UnknownUser_"+name, func(t *testing.T) {
			requireCode(t, call(), http.StatusNotFound, auth.CodeUserNotFound)
		})
	}
}

/*
TestService_InvalidationFailureIsNotFatal ensures a cache outage does not fail mutations.
*/
func TestService_InvalidationFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.invalidator.err = errors.New("redis down")

	user := f.register(t, "frank@example.com", "secret1")

	_, err := f.service.DisableUser(context.Background(), user.ID)
	assert.NoError(t, err)
}

/*
TestService_EnsureAdmin covers creation and promotion of the bootstrap administrator.
*/
func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesMissingAdmin", func(t *testing.T) {
		f := newFixture(t)

		admin, err := f.service.EnsureAdmin(ctx, "Root@Example.com", "rootpass")
		require.NoError(t, err)
		assert.Equal(t, sec.RoleAdmin, admin.Role)

		result, err := f.service.Login(ctx, auth.LoginInput{Email: "root@example.com", Password: "rootpass"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ADMIN"}, f.tokens.RolesOf(result.Token))

		// Second run is a no-op.
		again, err := f.service.EnsureAdmin(ctx, "root@example.com", "ignored")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, again.ID)
	})

	t.Run("PromotesAndEnablesExisting", func(t *testing.T) {
		f := newFixture(t)

		user := f.register(t, "ops@example.com", "secret1")
		_, err := f.service.DisableUser(ctx, user.ID)
		require.NoError(t, err)

		admin, err := f.service.EnsureAdmin(ctx, "ops@example.com", "different")
		require.NoError(t, err)
		assert.Equal(t, user.ID, admin.ID)
		assert.Equal(t, sec.RoleAdmin, admin.Role)
		assert.True(t, admin.Enabled)

		// Existing password is kept.
		_, err = f.service.Login(ctx, auth.LoginInput{Email: "ops@example.com", Password: "secret1"})
		assert.NoError(t, err)
	})
}
