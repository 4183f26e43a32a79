// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/taskboard/internal/platform/database/schema"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/postgres"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped through [dberr.Wrap]
// so callers never see driver types.
type PostgresUserRepository struct {
	db postgres.Querier
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// userSelect is the shared projection for account lookups.
var userSelect = fmt.Sprintf(`SELECT %s FROM %s`,
	strings.Join(schema.UserAccount.Columns(), ", "),
	schema.UserAccount.Table,
)

// ScanUser hydrates a [User] from a row in [schema.UserAccount.Columns] order.
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.Enabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = sec.UserRole(role)
	return user, nil
}

/*
FindByID retrieves a user record by primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, userSelect, schema.UserAccount.ID)

	user, err := ScanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_id_failed")
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by its case-insensitive email.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`%s WHERE lower(%s) = $1`, userSelect, schema.UserAccount.Email)

	user, err := ScanUser(repository.db.QueryRow(context, query, NormalizeEmail(email)))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_email_failed")
	}

	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: The database assigns the ID and timestamps, which are written
back into the entity.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: dberr.ErrConflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Email, schema.UserAccount.Password, schema.UserAccount.Role, schema.UserAccount.Enabled,
		schema.UserAccount.ID, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		NormalizeEmail(user.Email),
		user.PasswordHash,
		string(user.Role),
		user.Enabled,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
UpdatePassword replaces the stored password hash.

Parameters:
  - context: context.Context
  - userID: int64
  - newHash: string

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	return repository.updateColumn(context, userID, schema.UserAccount.Password, newHash, "postgres_user_repo_update_password_failed")
}

/*
SetEnabled toggles the account's enabled flag.

Parameters:
  - context: context.Context
  - userID: int64
  - enabled: bool

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) SetEnabled(context context.Context, userID int64, enabled bool) error {
	return repository.updateColumn(context, userID, schema.UserAccount.Enabled, enabled, "postgres_user_repo_set_enabled_failed")
}

/*
UpdateRole overwrites the account's role.

Parameters:
  - context: context.Context
  - userID: int64
  - role: sec.UserRole

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) UpdateRole(context context.Context, userID int64, role sec.UserRole) error {
	return repository.updateColumn(context, userID, schema.UserAccount.Role, string(role), "postgres_user_repo_update_role_failed")
}

// updateColumn sets one column and bumps updatedat. Zero affected rows is not found.
func (repository *PostgresUserRepository) updateColumn(context context.Context, userID int64, column string, value any, action string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = now() WHERE %s = $2`,
		schema.UserAccount.Table, column, schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := repository.db.Exec(context, query, value, userID)
	if err != nil {
		return dberr.Wrap(err, action)
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
