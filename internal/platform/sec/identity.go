// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Request Identity

// Identity is the authenticated caller attached to a request context.
// It is rebuilt on every request and never persisted.
type Identity struct {
	UserID      int64
	Email       string
	Role        UserRole
	Enabled     bool
	Authorities []string
}

// NewIdentity builds an identity whose authorities derive from role.
func NewIdentity(userID int64, email string, role UserRole, enabled bool) *Identity {
	return &Identity{
		UserID:      userID,
		Email:       email,
		Role:        role,
		Enabled:     enabled,
		Authorities: []string{role.Authority()},
	}
}

// HasRole reports whether the identity meets the target role.
func (identity *Identity) HasRole(target UserRole) bool {
	return identity != nil && identity.Role.AtLeast(target)
}

// # Resolution

// Outcome is the result class of resolving a request's identity.
type Outcome string

const (
	OutcomeAnonymous     Outcome = "anonymous"
	OutcomeAuthenticated Outcome = "authenticated"
)

// Reason explains how a resolution was reached. Used for logs and metrics.
type Reason string

const (
	ReasonNoCredentials        Reason = "no_credentials"
	ReasonAlreadyAuthenticated Reason = "already_authenticated"
	ReasonInvalidToken         Reason = "invalid_token"
	ReasonUserNotFound         Reason = "user_not_found"
	ReasonLookupFailed         Reason = "lookup_failed"
	ReasonAccountDisabled      Reason = "account_disabled"
	ReasonVerified             Reason = "verified"
)

// Resolution is the tagged result of identity resolution.
// Identity is non-nil only when Outcome is [OutcomeAuthenticated].
type Resolution struct {
	Outcome  Outcome
	Reason   Reason
	Identity *Identity
}

// Anonymous returns an anonymous resolution with the given reason.
func Anonymous(reason Reason) Resolution {
	return Resolution{Outcome: OutcomeAnonymous, Reason: reason}
}

// Authenticated returns an authenticated resolution for identity.
func Authenticated(identity *Identity, reason Reason) Resolution {
	return Resolution{Outcome: OutcomeAuthenticated, Reason: reason, Identity: identity}
}

// IsAuthenticated reports whether the resolution carries an identity.
func (resolution Resolution) IsAuthenticated() bool {
	return resolution.Outcome == OutcomeAuthenticated && resolution.Identity != nil
}
