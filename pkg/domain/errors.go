package domain

import "errors"

// Sentinel errors shared across services. The web layer maps these to HTTP
// statuses in exactly one place, so every handler reports the same failure
// class with the same status and body shape.
var (
	// ErrNotFound is returned when a requested resource does not exist or is
	// not visible to the caller.
	ErrNotFound = errors.New("resource not found")
	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInsufficientBalance is returned when a transaction would drive an
	// account balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrUnauthorized is returned on missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller's role does not allow the action.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation is returned when input fails a business-level check.
	ErrValidation = errors.New("validation error")
	// ErrGoalNeedsTarget is returned when a goal is created or updated without
	// at least one target.
	ErrGoalNeedsTarget = errors.New("goal requires at least one target")
	// ErrWeakPassword is returned when a password fails the strength policy.
	ErrWeakPassword = errors.New("password does not meet strength requirements")
	// ErrResetTokenInvalid is returned when a password-reset token is unknown,
	// expired, or already used.
	ErrResetTokenInvalid = errors.New("reset token invalid or expired")
	// ErrSecretNotConfigured is returned when a JWT secret is missing from the
	// environment. Surfaces as a 500, never as an auth failure.
	ErrSecretNotConfigured = errors.New("jwt secret not configured")
)
