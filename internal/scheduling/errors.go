package scheduling

import "errors"

var (
	// ErrDateRequired is returned when no date was chosen
	ErrDateRequired = errors.New("appointment date is required")

	// ErrTimeRequired is returned when no time slot was chosen
	ErrTimeRequired = errors.New("appointment time is required")

	// ErrDateNotSelectable is returned for past dates, weekends, and
	// unavailable quick-pick entries
	ErrDateNotSelectable = errors.New("date is not available for booking")

	// ErrUnknownSlot is returned when the time label is not one of the
	// fixed slots
	ErrUnknownSlot = errors.New("time slot is not offered")

	// ErrUnknownMode is returned for unsupported consultation modes
	ErrUnknownMode = errors.New("unsupported consultation mode")
)
