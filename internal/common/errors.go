// Package common defines shared constants and sentinel errors used across
// client and server layers of RetailMediaAI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Input validation.
	ErrEmptyEmail       = errors.New("email is required")
	ErrPasswordMismatch = errors.New("password was not match")
	ErrInvalidOTP       = errors.New("invalid verification code")

	// Account lifecycle errors.
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Credential check failures (reported inside a result, not thrown).
	ErrNoPasswordSet   = errors.New("no password set")
	ErrInvalidPassword = errors.New("invalid password")

	// Login flow errors surfaced to the UI.
	ErrIncorrectCredentials = errors.New("incorrect phone number or password")
	ErrAccountNotFound      = errors.New("there is no account with these details")

	// Mail delivery errors.
	ErrEmailDoesNotExist = errors.New("this email address does not exist")
	ErrMailUnavailable   = errors.New("email service unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
