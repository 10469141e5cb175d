package domain

import "errors"

var (
	// ErrValidation covers missing or blank required fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both an unknown identity and a
	// wrong password, so callers cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrRentalNotFound = errors.New("rental not found")
	ErrForbidden      = errors.New("access forbidden")

	// Token verification failures. All of them surface as 401.
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	ErrTokenExpired          = errors.New("token expired")
)
