// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskboard/internal/platform/constants"
	requestutil "github.com/taibuivan/taskboard/internal/platform/request"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/platform/validate"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the caller's own account endpoints.
//
// # Endpoints
//   - GET   /me          : Current profile.
//   - PATCH /me/password : Change password.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Patch("/me/password", handler.changePassword)

	return router
}

// AdminRoutes registers the user directory on router, which must already enforce the ADMIN role.
//
// # Endpoints
//   - GET   /              : Paginated users.
//   - GET   /{id}          : Single user.
//   - PATCH /{id}/disable  : Disable.
//   - PATCH /{id}/enable   : Enable.
//   - PATCH /{id}/role     : Change role.
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Get("/", handler.listUsers)
	router.Get("/{id}", handler.getUser)
	router.Patch("/{id}/disable", handler.disableUser)
	router.Patch("/{id}/enable", handler.enableUser)
	router.Patch("/{id}/role", handler.updateRole)
}

// # Own Account

/*
GET /api/me.

Response:
  - 200: User
  - 401: UNAUTHORIZED
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
PATCH /api/me/password.

Request:
  - body: changePasswordRequest

Response:
  - 204: Password replaced
  - 400: VALIDATION_ERROR or INVALID_CREDENTIALS (current password wrong)
  - 401: UNAUTHORIZED
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldCurrentPassword, input.CurrentPassword).
		Length(auth.FieldNewPassword, input.NewPassword, constants.MinPasswordLength, constants.MaxPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), identity.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # User Directory

/*
GET /api/admin/users.

Request:
  - query: page, limit (default 10)

Response:
  - 200: Paginated users
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequestWithLimit(request, pagination.AdminDefaultLimit)

	users, total, err := handler.accountService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/admin/users/{id}.

Response:
  - 200: User
  - 404: USER_NOT_FOUND
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) disableUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.DisableUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) enableUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.EnableUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

/*
PATCH /api/admin/users/{id}/role.

Request:
  - body: {"role": "USER" | "ADMIN"} (case-insensitive)

Response:
  - 200: User with the new role
  - 400: VALIDATION_ERROR
  - 404: USER_NOT_FOUND
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRoleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, ok := sec.ParseRole(input.Role)

	validator := &validate.Validator{}
	validator.Custom(auth.FieldRole, !ok, "Must be one of: USER, ADMIN")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateUserRole(request.Context(), userID, role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
