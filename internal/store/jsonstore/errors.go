package jsonstore

import "errors"

// Error taxonomy surfaced to callers. Wrapped with context at the call
// site; match with errors.Is.
var (
	// ErrValidation marks bad input to Add/Update (empty name and the like).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an identity that resolves to no record.
	ErrNotFound = errors.New("project not found")

	// ErrPersistence marks a file that exists but cannot be read or written.
	// A simply-missing data file is not an error; Load starts empty instead.
	ErrPersistence = errors.New("persistence failed")
)
