package services

import "errors"

// Failure taxonomy shared by all services. Handlers map these to HTTP
// statuses; anything else is a backend write failure surfaced as 502.
var (
	ErrUnauthenticated = errors.New("sign in required")
	ErrForbidden       = errors.New("not allowed")
	ErrValidation      = errors.New("validation failed")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("wrong email or password")
)
