package domain

import "errors"

// Credential errors. All of them end up as a 401 at the auth middleware.
var (
	ErrMissingCredential   = errors.New("authorization header missing")
	ErrMalformedCredential = errors.New("authorization header must be 'Bearer <token>'")
	ErrExpiredToken        = errors.New("token expired")
	ErrInvalidToken        = errors.New("invalid token")
)

// Routing errors.
var (
	ErrModuleResolution = errors.New("resource module unavailable")
	ErrUnmatchedRoute   = errors.New("route not found")
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("record already exists")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
