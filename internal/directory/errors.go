package directory

import "errors"

var (
	// ErrTherapistNotFound is returned when an id does not resolve
	// against the directory
	ErrTherapistNotFound = errors.New("therapist not found")
)
