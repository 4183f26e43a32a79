// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/users/auth"
)

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestHandler_Register(t *testing.T) {
	f := newFixture(t)
	router := auth.NewHandler(f.service).Routes()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"Success", `{"email":"hana@example.com","password":"secret1"}`, http.StatusOK, "", ""},
		{"Duplicate", `{"email":"HANA@example.com","password":"secret1"}`, http.StatusConflict, auth.CodeEmailAlreadyExists, ""},
		{"BadEmail", `{"email":"not-an-email","password":"secret1"}`, http.StatusBadRequest, "VALIDATION_ERROR", "email"},
		{"ShortPassword", `{"email":"ivan@example.com","password":"12345"}`, http.StatusBadRequest, "VALIDATION_ERROR", "password"},
		{"LongPassword", `{"email":"ivan@example.com","password":"` + strings.Repeat("x", 31) + `"}`, http.StatusBadRequest, "VALIDATION_ERROR", "password"},
		{"MalformedJSON", `{"email":`, http.StatusBadRequest, "VALIDATION_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := post(t, router, "/register", tt.body)
			require.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())

			if tt.wantCode == "" {
				return
			}

			envelope := decodeError(t, recorder)
			assert.Equal(t, tt.wantCode, envelope.Code)
			if tt.wantField != "" {
				require.NotEmpty(t, envelope.Details)
				assert.Equal(t, tt.wantField, envelope.Details[0].Field)
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com", "secret1")
	router := auth.NewHandler(f.service).Routes()

	t.Run("Success", func(t *testing.T) {
		recorder := post(t, router, "/login", `{"email":"Jane@example.com","password":"secret1"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope respond.TokenEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "jane@example.com", f.tokens.SubjectOf(envelope.Token))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		recorder := post(t, router, "/login", `{"email":"jane@example.com","password":"bad-password"}`)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, auth.CodeInvalidCredentials, decodeError(t, recorder).Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		recorder := post(t, router, "/login", `{}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Len(t, decodeError(t, recorder).Details, 2)
	})
}
