// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/taskboard/internal/platform/database/schema"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/postgres"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// # Repository Implementation

// PostgresTaskRepository implements [TaskRepository] using pgx.
type PostgresTaskRepository struct {
	db postgres.Querier
}

// NewTaskRepository creates a new PostgreSQL implementation of the TaskRepository.
func NewTaskRepository(db postgres.Querier) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

// taskProjection selects task columns prefixed with "t." plus the owner email from "a.".
var taskProjection = func() string {
	columns := make([]string, 0, len(schema.CoreTask.Columns())+1)
	for _, column := range schema.CoreTask.Columns() {
		columns = append(columns, "t."+column)
	}
	columns = append(columns, "a."+schema.UserAccount.Email)
	return strings.Join(columns, ", ")
}()

// taskFrom joins each task to its owner.
var taskFrom = fmt.Sprintf(`%s t JOIN %s a ON a.%s = t.%s`,
	schema.CoreTask.Table, schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreTask.OwnerID,
)

// scanTask hydrates a task in taskProjection order, followed by any extra destinations.
func scanTask(row pgx.Row, extra ...any) (*Task, error) {
	task := &Task{}
	var status, urgency, importance string

	dest := append([]any{
		&task.ID,
		&task.Title,
		&status,
		&urgency,
		&importance,
		&task.OwnerID,
		&task.CreatedAt,
		&task.OwnerEmail,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	task.Status = Status(status)
	task.Urgency = Urgency(urgency)
	task.Importance = Importance(importance)
	return task, nil
}

/*
List retrieves a page of tasks newest first, filtered by owner and status.

Description: Uses COUNT(*) OVER() so the total arrives with the page in a
single round-trip. A page past the end therefore reports a total of zero.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*Task: Hydrated tasks
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresTaskRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Task, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE TRUE`, taskProjection, taskFrom))

	// Owner scoping
	if filter.OwnerID != 0 {
		queryBuilder.WriteString(fmt.Sprintf(` AND t.%s = $%d`, schema.CoreTask.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	// Status filtering
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND t.%s = $%d`, schema.CoreTask.Status, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY t.%s DESC, t.%s DESC LIMIT $%d OFFSET $%d`,
		schema.CoreTask.CreatedAt, schema.CoreTask.ID, argID, argID+1,
	))
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_task_repo_list_failed")
	}
	defer rows.Close()

	tasks := make([]*Task, 0, params.Limit)
	var totalCount int

	for rows.Next() {
		task, err := scanTask(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_task_repo_scan_failed")
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_task_repo_rows_failed")
	}

	return tasks, totalCount, nil
}

/*
FindByIDAndOwner retrieves a single task owned by ownerID.

Parameters:
  - context: context.Context
  - id: int64
  - ownerID: int64

Returns:
  - *Task: Hydrated task
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresTaskRepository) FindByIDAndOwner(context context.Context, id, ownerID int64) (*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE t.%s = $1 AND t.%s = $2`,
		taskProjection, taskFrom, schema.CoreTask.ID, schema.CoreTask.OwnerID,
	)

	task, err := scanTask(repository.db.QueryRow(context, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_task_repo_find_failed")
	}

	return task, nil
}

/*
Create persists a new task.

Description: The insert and the owner email lookup run as one statement.

Parameters:
  - context: context.Context
  - task: *Task (ID, CreatedAt and OwnerEmail are written back)

Returns:
  - error: Database errors
*/
func (repository *PostgresTaskRepository) Create(context context.Context, task *Task) error {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING %s, %s, %s
		)
		SELECT i.%s, i.%s, a.%s
		FROM inserted i JOIN %s a ON a.%s = i.%s`,
		schema.CoreTask.Table,
		schema.CoreTask.Title, schema.CoreTask.Status, schema.CoreTask.Urgency, schema.CoreTask.Importance, schema.CoreTask.OwnerID,
		schema.CoreTask.ID, schema.CoreTask.CreatedAt, schema.CoreTask.OwnerID,
		schema.CoreTask.ID, schema.CoreTask.CreatedAt, schema.UserAccount.Email,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreTask.OwnerID,
	)

	err := repository.db.QueryRow(context, query,
		task.Title,
		string(task.Status),
		string(task.Urgency),
		string(task.Importance),
		task.OwnerID,
	).Scan(&task.ID, &task.CreatedAt, &task.OwnerEmail)

	if err != nil {
		return dberr.Wrap(err, "postgres_task_repo_create_failed")
	}

	return nil
}

/*
Update overwrites the mutable fields of an owned task.

Parameters:
  - context: context.Context
  - task: *Task (ID and OwnerID select the row)

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresTaskRepository) Update(context context.Context, task *Task) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4 WHERE %s = $5 AND %s = $6`,
		schema.CoreTask.Table,
		schema.CoreTask.Title, schema.CoreTask.Status, schema.CoreTask.Urgency, schema.CoreTask.Importance,
		schema.CoreTask.ID, schema.CoreTask.OwnerID,
	)

	return repository.execOwned(context, "postgres_task_repo_update_failed", query,
		task.Title, string(task.Status), string(task.Urgency), string(task.Importance), task.ID, task.OwnerID,
	)
}

/*
UpdateStatus sets the status of an owned task.

Parameters:
  - context: context.Context
  - id: int64
  - ownerID: int64
  - status: Status

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresTaskRepository) UpdateStatus(context context.Context, id, ownerID int64, status Status) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s = $3`,
		schema.CoreTask.Table, schema.CoreTask.Status, schema.CoreTask.ID, schema.CoreTask.OwnerID,
	)

	return repository.execOwned(context, "postgres_task_repo_update_status_failed", query, string(status), id, ownerID)
}

/*
Delete removes an owned task.

Parameters:
  - context: context.Context
  - id: int64
  - ownerID: int64

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresTaskRepository) Delete(context context.Context, id, ownerID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreTask.Table, schema.CoreTask.ID, schema.CoreTask.OwnerID,
	)

	return repository.execOwned(context, "postgres_task_repo_delete_failed", query, id, ownerID)
}

/*
DeleteByStatus removes all of an owner's tasks in a given status.

Parameters:
  - context: context.Context
  - ownerID: int64
  - status: Status

Returns:
  - int64: Deleted row count (zero is not an error)
  - error: Database errors
*/
func (repository *PostgresTaskRepository) DeleteByStatus(context context.Context, ownerID int64, status Status) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreTask.Table, schema.CoreTask.OwnerID, schema.CoreTask.Status,
	)

	tag, err := repository.db.Exec(context, query, ownerID, string(status))
	if err != nil {
		return 0, dberr.Wrap(err, "postgres_task_repo_delete_by_status_failed")
	}

	return tag.RowsAffected(), nil
}

// execOwned runs an owner-scoped write. Zero affected rows is not found.
func (repository *PostgresTaskRepository) execOwned(context context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
