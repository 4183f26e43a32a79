// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// stubResolver returns a fixed resolution and records the header it saw.
type stubResolver struct {
	resolution sec.Resolution
	seen       string
}

func (resolver *stubResolver) Resolve(_ context.Context, header string) sec.Resolution {
	resolver.seen = header
	return resolver.resolution
}

type recordingObserver struct {
	observed []sec.Resolution
}

func (observer *recordingObserver) ObserveResolution(resolution sec.Resolution) {
	observer.observed = append(observer.observed, resolution)
}

// identityEcho writes the caller's email, or "anonymous".
var identityEcho = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if identity := ctxutil.GetIdentity(request.Context()); identity != nil {
		_, _ = writer.Write([]byte(identity.Email))
		return
	}
	_, _ = writer.Write([]byte("anonymous"))
})

/*
TestAuthenticate verifies that the middleware attaches identities and never rejects.
*/
func TestAuthenticate(t *testing.T) {
	user := sec.NewIdentity(1, "user@test.com", sec.RoleUser, true)

	tests := []struct {
		name       string
		resolution sec.Resolution
		wantBody   string
	}{
		{"Authenticated", sec.Authenticated(user, sec.ReasonVerified), "user@test.com"},
		{"InvalidToken", sec.Anonymous(sec.ReasonInvalidToken), "anonymous"},
		{"Disabled", sec.Anonymous(sec.ReasonAccountDisabled), "anonymous"},
		{"NoCredentials", sec.Anonymous(sec.ReasonNoCredentials), "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{resolution: tt.resolution}
			observer := &recordingObserver{}
			handler := middleware.Authenticate(resolver, observer)(identityEcho)

			request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			request.Header.Set("Authorization", "Bearer abc")
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.wantBody, recorder.Body.String())
			assert.Equal(t, "Bearer abc", resolver.seen)
			require.Len(t, observer.observed, 1)
			assert.Equal(t, tt.resolution.Reason, observer.observed[0].Reason)
		})
	}
}

/*
TestAuthenticate_NilObserver ensures metrics are optional.
*/
func TestAuthenticate_NilObserver(t *testing.T) {
	resolver := &stubResolver{resolution: sec.Anonymous(sec.ReasonNoCredentials)}
	handler := middleware.Authenticate(resolver, nil)(identityEcho)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "anonymous", recorder.Body.String())
}

/*
TestRequireAuth checks the 401 gate.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(identityEcho)

	t.Run("Anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"code":"UNAUTHORIZED"`)
	})

	t.Run("Authenticated", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		ctx := ctxutil.WithIdentity(request.Context(), sec.NewIdentity(1, "u@test.com", sec.RoleUser, true))
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request.WithContext(ctx))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestRequireRole checks 401 for anonymous callers and 403 for insufficient roles.
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.RequireRole(sec.RoleAdmin)(identityEcho)

	tests := []struct {
		name       string
		identity   *sec.Identity
		wantStatus int
		wantCode   string
	}{
		{"Anonymous", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"User", sec.NewIdentity(1, "u@test.com", sec.RoleUser, true), http.StatusForbidden, "FORBIDDEN"},
		{"Admin", sec.NewIdentity(2, "a@test.com", sec.RoleAdmin, true), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			request = request.WithContext(ctxutil.WithIdentity(request.Context(), tt.identity))
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantCode != "" {
				assert.Contains(t, recorder.Body.String(), `"code":"`+tt.wantCode+`"`)
			}
		})
	}
}
