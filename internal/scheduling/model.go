package scheduling

import "time"

// Mode is the consultation delivery mode.
type Mode string

const (
	ModeInPerson Mode = "in-person"
	ModeVideo    Mode = "video"
	ModePhone    Mode = "phone"
)

// ValidMode reports whether m is one of the supported consultation modes.
func ValidMode(m Mode) bool {
	switch m {
	case ModeInPerson, ModeVideo, ModePhone:
		return true
	}
	return false
}

// FormatMode renders a mode as its display label.
func FormatMode(m Mode) string {
	switch m {
	case ModeInPerson:
		return "In-Person"
	case ModeVideo:
		return "Video Consultation"
	case ModePhone:
		return "Phone Consultation"
	}
	return string(m)
}

// Location describes the single hospital site all consultations are
// held at.
type Location struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Facilities  []string `json:"facilities"`
}

// DefaultLocation returns the fixed hospital location.
func DefaultLocation() Location {
	return Location{
		Name:        "Nila Hospital",
		Description: "Main Building - Medical Complex",
		Facilities:  []string{"Emergency", "ICU", "Pharmacy", "Parking"},
	}
}

// QuickPick is a pre-enumerated date offered as a one-click alternative
// to the full calendar. Unavailable entries must never be selectable.
type QuickPick struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Weekday   string `json:"weekday"`
	Day       string `json:"day"`
	Month     string `json:"month"`
	Available bool   `json:"available"`
}

// Selection is the completed output of the scheduling stage.
type Selection struct {
	TherapistID string    `json:"therapist_id"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"` // slot label, "HH:MM"
	Mode        Mode      `json:"mode"`
	Location    Location  `json:"location"`
}
