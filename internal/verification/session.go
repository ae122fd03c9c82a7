package verification

import (
	"strings"
	"time"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// State names the verification flow states.
type State string

const (
	StatePhoneEntry State = "phone_entry"
	StateCodeEntry  State = "code_entry"
	StateVerifying  State = "verifying"
	StateDone       State = "done"
)

// Session is the verification stage's draft state. The issued code is
// held server-side and never rendered to clients; Digits is the
// keypad-driven entry grid.
type Session struct {
	State      State              `json:"state"`
	Phone      string             `json:"phone"`
	IssuedCode string             `json:"issued_code,omitempty"`
	Digits     [CodeLength]string `json:"digits"`
	Focus      int                `json:"focus"`
	ResendAt   time.Time          `json:"resend_at"`
	Progress   int                `json:"progress"`
	VerifiedAt time.Time          `json:"verified_at,omitempty"`
}

// NewSession starts the flow at phone entry.
func NewSession() *Session {
	return &Session{State: StatePhoneEntry}
}

// StartCodeEntry moves to code entry for phone: the grid resets to six
// empty cells, focus returns to the first cell, and the resend
// countdown restarts. Calling it again acts as "change number" plus a
// fresh code issue.
func (s *Session) StartCodeEntry(phone, code string, now time.Time, resendWindow time.Duration) {
	s.State = StateCodeEntry
	s.Phone = phone
	s.IssuedCode = code
	s.Digits = [CodeLength]string{}
	s.Focus = 0
	s.ResendAt = now.Add(resendWindow)
	s.Progress = 0
}

// ChangeNumber returns to phone entry, discarding in-progress code
// state.
func (s *Session) ChangeNumber() {
	s.State = StatePhoneEntry
	s.IssuedCode = ""
	s.Digits = [CodeLength]string{}
	s.Focus = 0
	s.Progress = 0
}

// SecondsUntilResend reports the remaining countdown, clamped at zero.
func (s *Session) SecondsUntilResend(now time.Time) int {
	if !now.Before(s.ResendAt) {
		return 0
	}
	return int(s.ResendAt.Sub(now).Round(time.Second) / time.Second)
}

// CanResend reports whether the countdown has elapsed.
func (s *Session) CanResend(now time.Time) bool {
	return s.State == StateCodeEntry && !now.Before(s.ResendAt)
}

// Resend clears the grid, resets focus to the first cell, and restarts
// the countdown. Before the countdown elapses it fails without touching
// the deadline.
func (s *Session) Resend(code string, now time.Time, resendWindow time.Duration) error {
	if s.State != StateCodeEntry {
		return ErrNotAwaitingCode
	}
	if !s.CanResend(now) {
		return ErrResendNotReady
	}
	s.IssuedCode = code
	s.Digits = [CodeLength]string{}
	s.Focus = 0
	s.ResendAt = now.Add(resendWindow)
	return nil
}

// PressKey applies one keypad event to the entry grid. A digit fills
// the focused cell and advances focus (stopping at the last cell);
// backspace clears a filled cell in place or moves focus back from an
// empty one; the arrow keys move focus without altering content.
func (s *Session) PressKey(key string) error {
	if s.State != StateCodeEntry {
		return ErrNotAwaitingCode
	}
	switch {
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		s.Digits[s.Focus] = key
		if s.Focus < CodeLength-1 {
			s.Focus++
		}
	case key == "backspace":
		if s.Digits[s.Focus] != "" {
			s.Digits[s.Focus] = ""
		} else if s.Focus > 0 {
			s.Focus--
		}
	case key == "left":
		if s.Focus > 0 {
			s.Focus--
		}
	case key == "right":
		if s.Focus < CodeLength-1 {
			s.Focus++
		}
	default:
		return ErrUnknownKey
	}
	return nil
}

// EnteredCode joins the grid into the candidate code.
func (s *Session) EnteredCode() string {
	return strings.Join(s.Digits[:], "")
}

// CheckCode validates a candidate against the issued code. A mismatch
// leaves the session unchanged so the patient can retry; there is no
// lockout.
func (s *Session) CheckCode(candidate string) error {
	if s.State != StateCodeEntry {
		return ErrNotAwaitingCode
	}
	if len(candidate) != CodeLength {
		return ErrCodeIncomplete
	}
	if candidate != s.IssuedCode {
		return ErrCodeMismatch
	}
	return nil
}

// MarkVerified records completion of the progress simulation.
func (s *Session) MarkVerified(now time.Time) {
	s.State = StateDone
	s.Progress = 100
	s.VerifiedAt = now
}
