// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskboard/internal/platform/constants"
	requestutil "github.com/taibuivan/taskboard/internal/platform/request"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints.
//
// The handler is a thin mediation layer: it validates input shape, delegates
// to [Service], and maps the result onto status codes.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// # Request Payloads

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /auth/register

Request:
  - Body: credentialsRequest (Email, Password 6..30)

Response:
  - 200: Empty body
  - 400: VALIDATION_ERROR
  - 409: EMAIL_ALREADY_EXISTS
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Length(FieldPassword, input.Password, constants.MinPasswordLength, constants.MaxPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Status(writer, http.StatusOK)
}

/*
Login authenticates credentials and returns an identity token.

POST /auth/login

Request:
  - Body: credentialsRequest

Response:
  - 200: {"token": "..."}
  - 400: VALIDATION_ERROR
  - 401: INVALID_CREDENTIALS
  - 403: ACCOUNT_DISABLED
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Token(writer, result.Token)
}
