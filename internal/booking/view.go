package booking

import (
	"time"

	"github.com/nilahealth/patient-booking/internal/checkout"
	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/internal/payments"
	"github.com/nilahealth/patient-booking/internal/verification"
)

// OTPView is the client-facing slice of verification state. The issued
// code itself never leaves the server.
type OTPView struct {
	State              verification.State `json:"state"`
	Phone              string             `json:"phone,omitempty"`
	Digits             []string           `json:"digits"`
	Focus              int                `json:"focus"`
	SecondsUntilResend int                `json:"seconds_until_resend"`
	Progress           int                `json:"progress"`
}

// SessionView is the API representation of a flow session.
type SessionView struct {
	ID           string              `json:"id"`
	Stage        Stage               `json:"stage"`
	Therapist    directory.Therapist `json:"therapist"`
	Summary      checkout.Summary    `json:"summary"`
	OTP          *OTPView            `json:"otp,omitempty"`
	PendingOrder *payments.Order     `json:"pending_order,omitempty"`
	Notice       string              `json:"notice,omitempty"`
	Payment      *PaymentResult      `json:"payment,omitempty"`
}

// NewSessionView projects a session for API responses, evaluating the
// resend countdown against now.
func NewSessionView(sess *FlowSession, now time.Time, currency string) SessionView {
	view := SessionView{
		ID:        sess.ID,
		Stage:     sess.Stage,
		Therapist: sess.Therapist,
		Summary:   checkout.BuildSummary(sess.Therapist, sess.Selection, currency),
		Notice:    sess.Notice,
		Payment:   sess.Payment,
	}
	if sess.PendingOrder != nil {
		order := *sess.PendingOrder
		view.PendingOrder = &order
	}
	if otp := sess.OTP; otp != nil && sess.Stage == StageVerification {
		view.OTP = &OTPView{
			State:              otp.State,
			Phone:              otp.Phone,
			Digits:             otp.Digits[:],
			Focus:              otp.Focus,
			SecondsUntilResend: otp.SecondsUntilResend(now),
			Progress:           otp.Progress,
		}
	}
	return view
}
