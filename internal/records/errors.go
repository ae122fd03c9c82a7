package records

import "errors"

var (
	// ErrNoAppointment means the durable appointment slot is empty (or
	// unreadable, which readers treat the same way).
	ErrNoAppointment = errors.New("records: no appointment on file")

	// ErrNoProfile means the patient profile slot is empty.
	ErrNoProfile = errors.New("records: no patient profile on file")
)
