package checkout

import "fmt"

// FieldErrors maps form field names to patient-facing messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return fmt.Sprintf("checkout: %d invalid field(s)", len(fe))
}

const (
	msgNameTooShort = "please enter your full name"
	msgInvalidEmail = "please enter a valid email address"
	msgInvalidPhone = "please enter a valid 10-digit phone number"
)
