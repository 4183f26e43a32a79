// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/taskboard/internal/platform/database/schema"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/postgres"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	db postgres.Querier
}

// NewAccountRepository creates a new Postgres implementation for account reads.
func NewAccountRepository(db postgres.Querier) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *auth.User: Hydrated identity entity
  - error: dberr.ErrNotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.UserAccount.Columns(), ", "),
		schema.UserAccount.Table,
		schema.UserAccount.ID,
	)

	user, err := auth.ScanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_account_repo_find_failed")
	}

	return user, nil
}

/*
List returns a page of accounts ordered by ID together with the total count.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Accounts on the requested page
  - int: Total number of accounts
  - error: Database execution failure
*/
func (repository *PostgresAccountRepository) List(context context.Context, params pagination.Params) ([]*auth.User, int, error) {

	// 1. Total for pagination metadata
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.UserAccount.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_count_failed")
	}

	// 2. Page
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2`,
		strings.Join(schema.UserAccount.Columns(), ", "),
		schema.UserAccount.Table,
		schema.UserAccount.ID,
	)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_list_failed")
	}
	defer rows.Close()

	users := make([]*auth.User, 0, params.Limit)
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_account_repo_scan_failed")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_rows_failed")
	}

	return users, total, nil
}
