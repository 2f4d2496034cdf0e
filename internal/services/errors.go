package services

import "errors"

// Domain errors mapped to HTTP responses at the handler boundary.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUnknownUser       = errors.New("no such user")
	ErrWrongPassword     = errors.New("wrong password")
	ErrValidation        = errors.New("missing required field")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
)
