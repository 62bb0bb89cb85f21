// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration and login errors.
	ErrConflict           = errors.New("user already exists")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid otp")

	// Device binding errors. ErrDeviceNotAuthorized wraps ErrorUnauthorized.
	ErrDeviceNotAuthorized = fmt.Errorf("device not authorized: %w", ErrorUnauthorized)

	// Token errors.
	ErrInvalidToken          = errors.New("invalid token")
	ErrInvalidSignature      = errors.New("invalid token signature")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("malformed token")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// Configuration errors.
	ErrMissingSigningKey = errors.New("missing signing key")
)
