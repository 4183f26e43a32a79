// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/users/account"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

var accountColumns = []string{"id", "email", "passwordhash", "role", "enabled", "createdat", "updatedat"}

func TestPostgresAccountRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users.account`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`FROM users.account ORDER BY id LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(11), "a@example.com", "h", "USER", true, now, now).
			AddRow(int64(12), "b@example.com", "h", "ADMIN", false, now, now))

	users, total, err := account.NewAccountRepository(mock).List(context.Background(), pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 12, total)
	require.Len(t, users, 2)
	assert.Equal(t, int64(11), users[0].ID)
	assert.False(t, users[1].Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAccountRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users.account WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	_, err = account.NewAccountRepository(mock).FindByID(context.Background(), 5)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
