package models

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique field is already taken
	ErrAlreadyExists = errors.New("already exists")

	// ErrStoreUnavailable marks transient persistence failures
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidArgument is wrapped by every input validation error
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPermissionDenied is wrapped by authorization failures
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthenticated is returned when credentials are missing or wrong
	ErrUnauthenticated = errors.New("unauthenticated")
)
