package service

import "errors"

var (
	// ErrEmailTaken is returned when registration hits an existing email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned for absent, malformed or badly signed
	// tokens.
	ErrInvalidToken = errors.New("invalid token")
)
