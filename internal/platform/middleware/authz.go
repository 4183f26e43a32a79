// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// IdentityResolver turns an Authorization header into a [sec.Resolution].
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the account
// store, allowing us to inject fakes during unit testing.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorizationHeader string) sec.Resolution
}

// ResolutionObserver records resolution outcomes (metrics). May be nil.
type ResolutionObserver interface {
	ObserveResolution(resolution sec.Resolution)
}

// Authenticate resolves the caller's identity from the Authorization header.
//
// # Flow
//  1. Hand the raw header to the [IdentityResolver].
//  2. Authenticated: inject [*sec.Identity] into the request context.
//  3. Anonymous: proceed unchanged. This middleware never rejects a request;
//     [RequireAuth] and [RequireRole] decide what anonymous callers may reach.
//
// # Parameters
//   - resolver: The IdentityResolver instance.
//   - observer: Optional outcome recorder.
func Authenticate(resolver IdentityResolver, observer ResolutionObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			resolution := resolver.Resolve(ctx, request.Header.Get(constants.HeaderAuthorization))

			if observer != nil {
				observer.ObserveResolution(resolution)
			}

			ctxutil.GetLogger(ctx).DebugContext(ctx, "identity_resolved",
				slog.String("outcome", string(resolution.Outcome)),
				slog.String("reason", string(resolution.Reason)),
			)

			if resolution.IsAuthenticated() {
				ctx = ctxutil.WithIdentity(ctx, resolution.Identity)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. No identity in context: HTTP 401 Unauthorized.
//  2. Role below target (see [sec.UserRole.AtLeast]): HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !identity.HasRole(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
