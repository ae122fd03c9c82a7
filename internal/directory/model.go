package directory

import (
	"strconv"
	"strings"
)

// Therapist represents one entry in the static specialist directory.
type Therapist struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Experience    string   `json:"experience"`
	Tags          []string `json:"tags"`
	Hours         string   `json:"hours"`
	Progress      string   `json:"progress"` // "current/total" sessions
	AudioDuration string   `json:"audio_duration"`
	NextSlot      string   `json:"next_slot"`
	Price         int      `json:"price"` // consultation fee in rupees
}

// ProgressPercent converts the "current/total" sessions label into a
// percentage. Malformed or zero-total labels yield 0.
func ProgressPercent(progress string) float64 {
	parts := strings.SplitN(progress, "/", 2)
	if len(parts) != 2 {
		return 0
	}
	current, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	total, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || total == 0 {
		return 0
	}
	return float64(current) / float64(total) * 100
}
