// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/auth"
)

var accountColumns = []string{"id", "email", "passwordhash", "role", "enabled", "createdat", "updatedat"}

func newMockRepository(t *testing.T) (pgxmock.PgxPoolIface, *auth.PostgresUserRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, auth.NewUserRepository(mock)
}

func TestPostgresUserRepository_FindByEmail(t *testing.T) {
	mock, repository := newMockRepository(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, email, passwordhash, role, enabled, createdat, updatedat FROM users.account WHERE lower\(email\) = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(1), "alice@example.com", "$2a$hash", "ADMIN", true, created, created))

	user, err := repository.FindByEmail(context.Background(), "  Alice@Example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, sec.RoleAdmin, user.Role)
	assert.True(t, user.Enabled)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByID_NotFound(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(`FROM users.account WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock, repository := newMockRepository(t)

		mock.ExpectQuery(`INSERT INTO users.account \(email, passwordhash, role, enabled\)`).
			WithArgs("bob@example.com", "hash", "USER", true).
			WillReturnRows(pgxmock.NewRows([]string{"id", "createdat", "updatedat"}).AddRow(int64(7), created, created))

		user := &auth.User{Email: "Bob@Example.com", PasswordHash: "hash", Role: sec.RoleUser, Enabled: true}
		require.NoError(t, repository.Create(ctx, user))

		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, created, user.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		mock, repository := newMockRepository(t)

		mock.ExpectQuery(`INSERT INTO users.account`).
			WithArgs("bob@example.com", "hash", "USER", true).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := repository.Create(ctx, &auth.User{Email: "bob@example.com", PasswordHash: "hash", Role: sec.RoleUser, Enabled: true})
		assert.ErrorIs(t, err, dberr.ErrConflict)
	})
}

func TestPostgresUserRepository_Updates(t *testing.T) {
	ctx := context.Background()

	t.Run("SetEnabled", func(t *testing.T) {
		mock, repository := newMockRepository(t)

		mock.ExpectExec(`UPDATE users.account SET enabled = \$1, updatedat = now\(\) WHERE id = \$2`).
			WithArgs(false, int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repository.SetEnabled(ctx, 3, false))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateRole", func(t *testing.T) {
		mock, repository := newMockRepository(t)

		mock.ExpectExec(`UPDATE users.account SET role = \$1`).
			WithArgs("ADMIN", int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repository.UpdateRole(ctx, 3, sec.RoleAdmin))
	})

	t.Run("UpdatePasswordMissingRow", func(t *testing.T) {
		mock, repository := newMockRepository(t)

		mock.ExpectExec(`UPDATE users.account SET passwordhash = \$1`).
			WithArgs("newhash", int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repository.UpdatePassword(ctx, 99, "newhash"), dberr.ErrNotFound)
	})
}
