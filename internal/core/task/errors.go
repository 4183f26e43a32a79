// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// CodeTaskNotFound covers both missing tasks and tasks owned by another user.
const CodeTaskNotFound = "TASK_NOT_FOUND"

// ErrTaskNotFound reports a task that does not exist for the caller.
func ErrTaskNotFound() *apperr.AppError {
	return apperr.New(http.StatusNotFound, CodeTaskNotFound, "Task not found")
}
