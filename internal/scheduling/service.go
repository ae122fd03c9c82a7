package scheduling

import "time"

// Service validates scheduling drafts against the clinic's calendar and
// slot grid.
type Service struct {
	clock Clock
}

// NewService constructs a scheduling service. A nil clock falls back to
// the system clock.
func NewService(clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{clock: clock}
}

// Complete turns a draft into a Selection, enforcing the continue rule:
// both date and time must be set, the date must be selectable, the slot
// must be offered, and the mode supported. An empty mode defaults to
// in-person, matching how the booking screen starts.
func (s *Service) Complete(therapistID, dateValue, timeValue string, mode Mode) (*Selection, error) {
	if dateValue == "" {
		return nil, ErrDateRequired
	}
	if timeValue == "" {
		return nil, ErrTimeRequired
	}
	date, err := ParseDate(dateValue)
	if err != nil {
		return nil, ErrDateNotSelectable
	}
	if !SelectableDate(s.clock, date) {
		return nil, ErrDateNotSelectable
	}
	if !ValidSlot(timeValue) {
		return nil, ErrUnknownSlot
	}
	if mode == "" {
		mode = ModeInPerson
	}
	if !ValidMode(mode) {
		return nil, ErrUnknownMode
	}
	return &Selection{
		TherapistID: therapistID,
		Date:        date,
		Time:        timeValue,
		Mode:        mode,
		Location:    DefaultLocation(),
	}, nil
}

// FormatDate renders a selection date for summaries and receipts.
func FormatDate(date time.Time) string {
	if date.IsZero() {
		return "Not selected"
	}
	return date.Format("Monday, 2 January 2006")
}
