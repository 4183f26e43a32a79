// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// # Error Codes

const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
)

// ErrInvalidCredentials is the single login failure for unknown emails and wrong passwords.
func ErrInvalidCredentials() *apperr.AppError {
	return apperr.New(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
}

// ErrCurrentPasswordMismatch rejects a password change whose current password is wrong.
func ErrCurrentPasswordMismatch() *apperr.AppError {
	return apperr.New(http.StatusBadRequest, CodeInvalidCredentials, "Current password is incorrect")
}

// ErrAccountDisabled is returned after a correct password on a disabled account.
func ErrAccountDisabled() *apperr.AppError {
	return apperr.New(http.StatusForbidden, CodeAccountDisabled, "Account is disabled")
}

// ErrEmailAlreadyExists reports a registration conflict on the normalized email.
func ErrEmailAlreadyExists(email string) *apperr.AppError {
	return apperr.New(http.StatusConflict, CodeEmailAlreadyExists, "Email already exists: "+email)
}

// ErrUserNotFound is returned when an account id does not exist.
func ErrUserNotFound() *apperr.AppError {
	return apperr.New(http.StatusNotFound, CodeUserNotFound, "User not found")
}
