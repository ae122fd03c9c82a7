package booking

import (
	"time"

	"github.com/nilahealth/patient-booking/internal/checkout"
	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/internal/payments"
	"github.com/nilahealth/patient-booking/internal/scheduling"
	"github.com/nilahealth/patient-booking/internal/verification"
)

// Stage names the booking flow stages. The flow is forward-only:
// scheduling completes when the session is created, then verification,
// checkout, and confirmed.
type Stage string

const (
	StageVerification Stage = "verification"
	StageCheckout     Stage = "checkout"
	StageConfirmed    Stage = "confirmed"
)

// VerificationResult is the completed output of the verification stage.
type VerificationResult struct {
	Phone      string    `json:"phone"`
	Verified   bool      `json:"verified"`
	VerifiedAt time.Time `json:"verified_at"`
}

// PaymentResult is the completed output of the checkout stage.
type PaymentResult struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	AmountPaise int64     `json:"amount_paise"`
	Currency    string    `json:"currency"`
	OrderID     string    `json:"order_id"`
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	CompletedAt time.Time `json:"completed_at"`
}

// FlowSession carries a booking through its stages. Each stage's
// typed result is attached as it completes; later stages read earlier
// results instead of re-deriving them.
type FlowSession struct {
	ID        string              `json:"id"`
	Stage     Stage               `json:"stage"`
	Therapist directory.Therapist `json:"therapist"`

	Selection    scheduling.Selection     `json:"selection"`
	OTP          *verification.Session    `json:"otp,omitempty"`
	Verification *VerificationResult      `json:"verification,omitempty"`
	Details      *checkout.PatientDetails `json:"details,omitempty"`
	PendingOrder *payments.Order          `json:"pending_order,omitempty"`
	Notice       string                   `json:"notice,omitempty"`
	Payment      *PaymentResult           `json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
