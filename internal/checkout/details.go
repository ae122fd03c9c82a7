package checkout

import (
	"regexp"
	"strings"

	"github.com/nilahealth/patient-booking/internal/verification"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PatientDetails is the contact form filled in before payment.
type PatientDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Normalize trims the fields and reduces the phone to bare digits.
func (d PatientDetails) Normalize() PatientDetails {
	return PatientDetails{
		Name:  strings.TrimSpace(d.Name),
		Email: strings.TrimSpace(d.Email),
		Phone: verification.NormalizePhone(d.Phone),
	}
}

// Validate checks the normalized details and reports every failing
// field at once so the form can highlight all of them.
func (d PatientDetails) Validate() FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(d.Name)) < 3 {
		errs["name"] = msgNameTooShort
	}
	if !emailPattern.MatchString(strings.TrimSpace(d.Email)) {
		errs["email"] = msgInvalidEmail
	}
	if _, err := verification.ValidatePhone(d.Phone); err != nil {
		errs["phone"] = msgInvalidPhone
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
