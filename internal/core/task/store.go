// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"

	"github.com/taibuivan/taskboard/pkg/pagination"
)

// # Task Data Access

// TaskRepository defines the persistence contract for tasks.
//
// Owner-scoped methods match on both id and owner; a miss returns dberr.ErrNotFound.
type TaskRepository interface {

	/*
		List returns one page of tasks, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter (OwnerID 0 lists every owner)
		  - params: pagination.Params

		Returns:
		  - []*Task: The page, with owner emails
		  - int: Total matching tasks
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, params pagination.Params) ([]*Task, int, error)

	/*
		FindByIDAndOwner returns a task only if ownerID owns it.

		Returns:
		  - *Task: Hydrated entity
		  - error: dberr.ErrNotFound or storage failures
	*/
	FindByIDAndOwner(context context.Context, id, ownerID int64) (*Task, error)

	/*
		Create inserts a task and fills in ID, CreatedAt and OwnerEmail.

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, task *Task) error

	/*
		Update overwrites title, status, urgency and importance of an owned task.

		Returns:
		  - error: dberr.ErrNotFound or storage failures
	*/
	Update(context context.Context, task *Task) error

	/*
		UpdateStatus sets the status of an owned task.

		Returns:
		  - error: dberr.ErrNotFound or storage failures
	*/
	UpdateStatus(context context.Context, id, ownerID int64, status Status) error

	/*
		Delete removes an owned task.

		Returns:
		  - error: dberr.ErrNotFound or storage failures
	*/
	Delete(context context.Context, id, ownerID int64) error

	/*
		DeleteByStatus removes every task of ownerID in status.

		Returns:
		  - int64: Number of deleted tasks
		  - error: Storage failures
	*/
	DeleteByStatus(context context.Context, ownerID int64, status Status) (int64, error)
}
