// Package usecase implements the business logic for the account feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create or update a user
	// with an email that belongs to a different existing user.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on login when the email is unknown or the
	// password does not match. Callers get the same error for both cases.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated is returned when a protected operation is called without
	// an established session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrWeakPassword is returned when a password does not meet the minimum
	// length requirement.
	ErrWeakPassword = errors.New("password too short")
)
