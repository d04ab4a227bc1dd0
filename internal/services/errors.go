package services

import "errors"

var (
	// ErrNotFound is returned when an id-based lookup misses.
	ErrNotFound = errors.New("resource not found")
	// ErrValidationFailed wraps request validation failures.
	ErrValidationFailed = errors.New("validation failed")
	// ErrDuplicateEmail is returned when a teacher email is already taken,
	// whether the existing record is visible or deactivated.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidFileFormat is returned when an uploaded workbook cannot be
	// parsed.
	ErrInvalidFileFormat = errors.New("invalid file format")
)
