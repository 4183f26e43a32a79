// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

/*
TestError_Envelope verifies that AppErrors keep their status and code while
unknown errors are hidden behind INTERNAL_ERROR.
*/
func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"AppError", apperr.New(http.StatusNotFound, "TASK_NOT_FOUND", "Task not found"), http.StatusNotFound, "TASK_NOT_FOUND", "Task not found"},
		{"Validation", apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "required"}), http.StatusBadRequest, apperr.CodeValidation, "Validation failed"},
		{"Plain", errors.New("pq: relation does not exist"), http.StatusInternalServerError, apperr.CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.NotContains(t, recorder.Body.String(), "relation")
		})
	}
}

func TestSuccessHelpers(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Created(recorder, "/api/tasks/7", map[string]int{"id": 7})

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, "/api/tasks/7", recorder.Header().Get("Location"))
		assert.JSONEq(t, `{"data":{"id":7}}`, recorder.Body.String())
	})

	t.Run("Token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Token(recorder, "abc")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"token":"abc"}`, recorder.Body.String())
	})

	t.Run("Paginated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Paginated(recorder, []int{1, 2}, pagination.NewMeta(1, 2, 3))

		assert.JSONEq(t, `{"data":[1,2],"meta":{"page":1,"limit":2,"total":3,"total_pages":2}}`, recorder.Body.String())
	})

	t.Run("Status", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Status(recorder, http.StatusOK)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	})
}
