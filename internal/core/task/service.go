// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// # Contracts

// OwnerDirectory confirms that an account exists before listing its tasks.
type OwnerDirectory interface {
	FindByID(context context.Context, id int64) (*auth.User, error)
}

// # Service Layer

// Service implements the task board use cases.
type Service struct {
	taskRepository TaskRepository
	owners         OwnerDirectory
}

// NewService constructs a new [Service].
func NewService(taskRepo TaskRepository, owners OwnerDirectory) *Service {
	return &Service{taskRepository: taskRepo, owners: owners}
}

// # Owner Operations

/*
ListMine returns the caller's tasks, optionally filtered by status.

Parameters:
  - context: context.Context
  - ownerID: int64
  - status: Status ("" for any)
  - params: pagination.Params

Returns:
  - []*Task: The page
  - int: Total matching tasks
  - error: Storage failures
*/
func (service *Service) ListMine(context context.Context, ownerID int64, status Status, params pagination.Params) ([]*Task, int, error) {
	tasks, total, err := service.taskRepository.List(context, Filter{OwnerID: ownerID, Status: status}, params)
	if err != nil {
		return nil, 0, fmt.Errorf("task_service_list_mine_failed: %w", err)
	}
	return tasks, total, nil
}

/*
GetMine returns one of the caller's tasks.

Returns:
  - *Task: The task
  - error: TASK_NOT_FOUND (also for tasks owned by someone else) or storage failures
*/
func (service *Service) GetMine(context context.Context, id, ownerID int64) (*Task, error) {
	task, err := service.taskRepository.FindByIDAndOwner(context, id, ownerID)
	if err != nil {
		return nil, mapTaskError(err, "task_service_get_failed")
	}
	return task, nil
}

// CreateInput carries a new task. Nil enums take their defaults.
type CreateInput struct {
	Title      string
	Urgency    *Urgency
	Importance *Importance
}

/*
Create adds a task to the caller's board with status TODO.

Parameters:
  - context: context.Context
  - ownerID: int64
  - input: CreateInput

Returns:
  - *Task: The persisted task including its ID and owner email
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, ownerID int64, input CreateInput) (*Task, error) {
	task := &Task{
		Title:      input.Title,
		Status:     StatusTodo,
		Urgency:    UrgencyNotUrgent,
		Importance: ImportanceNotImportant,
		OwnerID:    ownerID,
	}
	if input.Urgency != nil {
		task.Urgency = *input.Urgency
	}
	if input.Importance != nil {
		task.Importance = *input.Importance
	}

	if err := service.taskRepository.Create(context, task); err != nil {
		return nil, fmt.Errorf("task_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "task_created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", ownerID),
	)

	return task, nil
}

// UpdateInput replaces every mutable field of a task.
type UpdateInput struct {
	Title      string
	Status     Status
	Urgency    Urgency
	Importance Importance
}

/*
Update overwrites one of the caller's tasks.

Returns:
  - error: TASK_NOT_FOUND or storage failures
*/
func (service *Service) Update(context context.Context, id, ownerID int64, input UpdateInput) error {
	err := service.taskRepository.Update(context, &Task{
		ID:         id,
		OwnerID:    ownerID,
		Title:      input.Title,
		Status:     input.Status,
		Urgency:    input.Urgency,
		Importance: input.Importance,
	})
	if err != nil {
		return mapTaskError(err, "task_service_update_failed")
	}
	return nil
}

// UpdateStatus moves one of the caller's tasks to status.
func (service *Service) UpdateStatus(context context.Context, id, ownerID int64, status Status) error {
	if err := service.taskRepository.UpdateStatus(context, id, ownerID, status); err != nil {
		return mapTaskError(err, "task_service_update_status_failed")
	}
	return nil
}

// Delete removes one of the caller's tasks.
func (service *Service) Delete(context context.Context, id, ownerID int64) error {
	if err := service.taskRepository.Delete(context, id, ownerID); err != nil {
		return mapTaskError(err, "task_service_delete_failed")
	}
	return nil
}

/*
DeleteByStatus clears the caller's tasks in status. Deleting nothing is not an error.

Returns:
  - error: Storage failures
*/
func (service *Service) DeleteByStatus(context context.Context, ownerID int64, status Status) error {
	deleted, err := service.taskRepository.DeleteByStatus(context, ownerID, status)
	if err != nil {
		return fmt.Errorf("task_service_delete_by_status_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "tasks_deleted_by_status",
		slog.Int64("owner_id", ownerID),
		slog.String("status", string(status)),
		slog.Int64("deleted", deleted),
	)

	return nil
}

// # Administrative Listings

/*
ListAll returns every owner's tasks, newest first.

Parameters:
  - context: context.Context
  - status: Status ("" for any)
  - params: pagination.Params

Returns:
  - []*Task: The page
  - int: Total matching tasks
  - error: Storage failures
*/
func (service *Service) ListAll(context context.Context, status Status, params pagination.Params) ([]*Task, int, error) {
	tasks, total, err := service.taskRepository.List(context, Filter{Status: status}, params)
	if err != nil {
		return nil, 0, fmt.Errorf("task_service_list_all_failed: %w", err)
	}
	return tasks, total, nil
}

/*
ListForUser returns the tasks of a specific account.

Returns:
  - []*Task: The page
  - int: Total matching tasks
  - error: USER_NOT_FOUND or storage failures
*/
func (service *Service) ListForUser(context context.Context, userID int64, status Status, params pagination.Params) ([]*Task, int, error) {
	if _, err := service.owners.FindByID(context, userID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, 0, auth.ErrUserNotFound()
		}
		return nil, 0, fmt.Errorf("task_service_owner_lookup_failed: %w", err)
	}

	tasks, total, err := service.taskRepository.List(context, Filter{OwnerID: userID, Status: status}, params)
	if err != nil {
		return nil, 0, fmt.Errorf("task_service_list_for_user_failed: %w", err)
	}
	return tasks, total, nil
}

// mapTaskError turns a store not-found into TASK_NOT_FOUND.
func mapTaskError(err error, action string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return ErrTaskNotFound()
	}
	return fmt.Errorf("%s: %w", action, err)
}
