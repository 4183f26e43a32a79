// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskboard/internal/platform/request"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/validate"
	"github.com/taibuivan/taskboard/pkg/pagination"
	"github.com/taibuivan/taskboard/pkg/pointer"
)

// Handler implements the HTTP layer for the task board.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] with the caller's task endpoints.
//
// # Endpoints
//   - GET    /             : Paginated own tasks (?status).
//   - POST   /             : Create.
//   - DELETE /?status=     : Delete own tasks in a status.
//   - GET    /{id}         : Single own task.
//   - PUT    /{id}         : Replace.
//   - PATCH  /{id}/status  : Change status.
//   - DELETE /{id}         : Delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMine)
	router.Post("/", handler.create)
	router.Delete("/", handler.deleteByStatus)

	router.Get("/{id}", handler.getMine)
	router.Put("/{id}", handler.update)
	router.Patch("/{id}/status", handler.updateStatus)
	router.Delete("/{id}", handler.delete)

	return router
}

// AdminRoutes registers cross-owner listings on router, which must already enforce the ADMIN role.
//
// # Endpoints
//   - GET /tasks       : All tasks (?status), 10 per page by default.
//   - GET /{id}/tasks  : Tasks of one user (?status).
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Get("/tasks", handler.listAll)
	router.Get("/{id}/tasks", handler.listForUser)
}

// # Request Payloads

type createTaskRequest struct {
	Title      string  `json:"title"`
	Urgency    *string `json:"urgency"`
	Importance *string `json:"importance"`
}

type updateTaskRequest struct {
	Title      string `json:"title"`
	Status     string `json:"status"`
	Urgency    string `json:"urgency"`
	Importance string `json:"importance"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// # Owner Endpoints

/*
GET /api/tasks.

Request:
  - query: page, limit, status (optional)

Response:
  - 200: Paginated tasks
  - 400: VALIDATION_ERROR (unknown status)
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := statusQuery(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	tasks, total, err := handler.taskService.ListMine(request.Context(), identity.UserID, status, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/tasks/{id}.

Response:
  - 200: Task
  - 404: TASK_NOT_FOUND
*/
func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	taskID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.GetMine(request.Context(), taskID, identity.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

/*
POST /api/tasks.

Request:
  - body: createTaskRequest (urgency and importance optional)

Response:
  - 201: Task, with Location /api/tasks/{id}
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	urgency := Urgency(pointer.Fallback(input.Urgency, string(UrgencyNotUrgent)))
	importance := Importance(pointer.Fallback(input.Importance, string(ImportanceNotImportant)))

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		Length(FieldTitle, input.Title, MinTitleLength, MaxTitleLength).
		OneOf(FieldUrgency, string(urgency), string(UrgencyUrgent), string(UrgencyNotUrgent)).
		OneOf(FieldImportance, string(importance), string(ImportanceImportant), string(ImportanceNotImportant))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Create(request.Context(), identity.UserID, CreateInput{
		Title:      input.Title,
		Urgency:    &urgency,
		Importance: &importance,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, fmt.Sprintf("/api/tasks/%d", task.ID), task)
}

/*
PUT /api/tasks/{id}.

Request:
  - body: updateTaskRequest (every field required)

Response:
  - 204: Updated
  - 400: VALIDATION_ERROR
  - 404: TASK_NOT_FOUND
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	taskID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		Length(FieldTitle, input.Title, MinTitleLength, MaxTitleLength).
		OneOf(FieldStatus, input.Status, string(StatusTodo), string(StatusInProgress), string(StatusDone)).
		OneOf(FieldUrgency, input.Urgency, string(UrgencyUrgent), string(UrgencyNotUrgent)).
		OneOf(FieldImportance, input.Importance, string(ImportanceImportant), string(ImportanceNotImportant))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.taskService.Update(request.Context(), taskID, identity.UserID, UpdateInput{
		Title:      input.Title,
		Status:     Status(input.Status),
		Urgency:    Urgency(input.Urgency),
		Importance: Importance(input.Importance),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PATCH /api/tasks/{id}/status.

Request:
  - body: {"status": "TODO" | "IN_PROGRESS" | "DONE"}

Response:
  - 204: Updated
  - 400: VALIDATION_ERROR
  - 404: TASK_NOT_FOUND
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	taskID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, input.Status, string(StatusTodo), string(StatusInProgress), string(StatusDone))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.UpdateStatus(request.Context(), taskID, identity.UserID, Status(input.Status)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// DELETE /api/tasks/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	taskID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.Delete(request.Context(), taskID, identity.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/tasks?status=DONE.

Response:
  - 204: Matching tasks deleted (possibly none)
  - 400: VALIDATION_ERROR (missing or unknown status)
*/
func (handler *Handler) deleteByStatus(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := statusQuery(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.DeleteByStatus(request.Context(), identity.UserID, status); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Admin Endpoints

// GET /api/admin/users/tasks.
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	status, err := statusQuery(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequestWithLimit(request, pagination.AdminDefaultLimit)
	tasks, total, err := handler.taskService.ListAll(request.Context(), status, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/admin/users/{id}/tasks.

Response:
  - 200: Paginated tasks
  - 404: USER_NOT_FOUND
*/
func (handler *Handler) listForUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := statusQuery(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequestWithLimit(request, pagination.AdminDefaultLimit)
	tasks, total, err := handler.taskService.ListForUser(request.Context(), userID, status, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, pagination.NewMeta(params.Page, params.Limit, total))
}

// statusQuery reads ?status. An empty value is allowed unless required.
func statusQuery(request *http.Request, required bool) (Status, error) {
	raw := request.URL.Query().Get(FieldStatus)
	if raw == "" && !required {
		return "", nil
	}

	status, ok := ParseStatus(raw)
	if !ok {
		return "", validate.RequiredError(FieldStatus, "Must be one of: TODO, IN_PROGRESS, DONE")
	}

	return status, nil
}
