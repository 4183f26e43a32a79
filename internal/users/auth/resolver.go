// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// TokenVerifier checks a token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Resolver derives the caller's identity from a bearer token.
//
// It never fails a request: every problem yields an anonymous [sec.Resolution]
// and access control happens later in the chain. The account is re-read on
// every request, so disabling it takes effect on the next call.
type Resolver struct {
	verifier TokenVerifier
	lookup   IdentityLookup
}

// NewResolver constructs a [Resolver].
func NewResolver(verifier TokenVerifier, lookup IdentityLookup) *Resolver {
	return &Resolver{verifier: verifier, lookup: lookup}
}

/*
Resolve maps an Authorization header onto a resolution.

Parameters:
  - context: context.Context (an identity already present is returned unchanged)
  - authorizationHeader: raw header value, possibly empty

Returns:
  - sec.Resolution: Authenticated with the account's identity, or Anonymous with a reason
*/
func (resolver *Resolver) Resolve(context context.Context, authorizationHeader string) sec.Resolution {

	// 1. Credential extraction
	token, ok := BearerToken(authorizationHeader)
	if !ok {
		return sec.Anonymous(sec.ReasonNoCredentials)
	}

	// 2. Earlier stage already authenticated this request
	if identity := ctxutil.GetIdentity(context); identity != nil {
		return sec.Authenticated(identity, sec.ReasonAlreadyAuthenticated)
	}

	// 3. Signature, algorithm and validity window
	claims, err := resolver.verifier.VerifyToken(token)
	if err != nil {
		return sec.Anonymous(sec.ReasonInvalidToken)
	}

	// 4. Current account state
	email := NormalizeEmail(claims.Subject)
	if email == "" {
		return sec.Anonymous(sec.ReasonInvalidToken)
	}

	user, err := resolver.lookup.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return sec.Anonymous(sec.ReasonUserNotFound)
		}
		ctxutil.GetLogger(context).ErrorContext(context, "identity_lookup_failed", slog.Any("error", err))
		return sec.Anonymous(sec.ReasonLookupFailed)
	}

	// 5. Enabled gate
	if !user.Enabled {
		return sec.Anonymous(sec.ReasonAccountDisabled)
	}

	return sec.Authenticated(user.Identity(), sec.ReasonVerified)
}

// BearerToken extracts the credential from "Bearer <token>".
// The scheme is case-insensitive; an empty token counts as absent.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}
