package scheduling

import "time"

// Clock abstracts "now" so calendar rules are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SelectableDate applies the calendar selection rules. Quick-pick
// entries bypass the calendar: they are selectable exactly when flagged
// available. Any other date must not lie before today and must not fall
// on a Saturday or Sunday.
func SelectableDate(clock Clock, date time.Time) bool {
	day := date.Format("2006-01-02")
	if listed, available := quickPickAvailability(day); listed {
		return available
	}
	today := clock.Now()
	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if date.Before(startOfToday) {
		return false
	}
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// ParseDate parses a YYYY-MM-DD request value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
