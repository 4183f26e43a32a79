// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via constructors.
package sec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/taskboard/pkg/uuidv7"
)

// DefaultTokenTTL applies when a non-positive lifetime is configured.
const DefaultTokenTTL = 15 * time.Minute

// minSecretBytes is the HS256 key floor (256 bits).
const minSecretBytes = 32

// ErrInvalidToken is returned for every verification failure.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside an identity token.
//
// The subject is the normalized account email. Roles is a list on the wire
// even though accounts currently hold a single role.
type AuthClaims struct {
	jwt.RegisteredClaims

	Roles []string `json:"roles"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock overrides the time source used for both issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		if now != nil {
			service.now = now
		}
	}
}

// NewTokenService creates a new TokenService from base64-encoded key material.
func NewTokenService(base64Secret string, ttl time.Duration, issuer string, opts ...Option) (*TokenService, error) {
	trimmed := strings.TrimSpace(base64Secret)
	if trimmed == "" {
		return nil, errors.New("sec: token secret is empty")
	}

	secret, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("sec: token secret is not valid base64: %w", err)
	}
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("sec: token secret must be at least %d bytes, got %d", minSecretBytes, len(secret))
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	service := &TokenService{
		secret: secret,
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TTL returns the configured token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a signed token for subject carrying the given roles.
func (service *TokenService) Issue(subject string, roles []string) (string, error) {
	currentTime := service.now()

	if roles == nil {
		roles = []string{}
	}

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuidv7.New(),
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		Roles: roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify reports whether token is authentic and currently valid.
func (service *TokenService) Verify(token string) bool {
	_, err := service.VerifyToken(token)
	return err == nil
}

// VerifyToken checks signature, algorithm, issuer and validity window.
//
// Every failure collapses to [ErrInvalidToken] so callers cannot tell an
// expired token from a forged one.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(service.now),
	}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, options...)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// # Unverified Claim Access

// SubjectOf returns the subject claim without verifying the token.
// Callers must check [TokenService.Verify] first.
func (service *TokenService) SubjectOf(token string) string {
	claims := unverifiedClaims(token)
	if claims == nil {
		return ""
	}
	return claims.Subject
}

// RolesOf returns the roles claim without verifying the token.
// Callers must check [TokenService.Verify] first.
func (service *TokenService) RolesOf(token string) []string {
	claims := unverifiedClaims(token)
	if claims == nil || claims.Roles == nil {
		return []string{}
	}
	return claims.Roles
}

func unverifiedClaims(token string) *AuthClaims {
	claims := &AuthClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
