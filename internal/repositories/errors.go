package repositories

import "errors"

var (
	// ErrNotFound is returned when an id or email lookup misses.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness
	// constraint, e.g. the teachers.email unique index.
	ErrDuplicate = errors.New("record already exists")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
