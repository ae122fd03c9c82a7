package checkout

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/internal/payments"
	"github.com/nilahealth/patient-booking/internal/scheduling"
	"github.com/nilahealth/patient-booking/pkg/logging"
)

var checkoutTracer = otel.Tracer("nila.internal.checkout")

// Summary is the review card shown before payment.
type Summary struct {
	TherapistID   string              `json:"therapist_id"`
	TherapistName string              `json:"therapist_name"`
	TherapistRole string              `json:"therapist_role"`
	Date          string              `json:"date"`
	DateDisplay   string              `json:"date_display"`
	Time          string              `json:"time"`
	Mode          scheduling.Mode     `json:"mode"`
	ModeDisplay   string              `json:"mode_display"`
	Location      scheduling.Location `json:"location"`
	FeeRupees     int                 `json:"fee_rupees"`
	FeePaise      int64               `json:"fee_paise"`
	Currency      string              `json:"currency"`
}

// BuildSummary assembles the review card from the chosen therapist and
// the confirmed slot selection.
func BuildSummary(t directory.Therapist, sel scheduling.Selection, currency string) Summary {
	if currency == "" {
		currency = "INR"
	}
	return Summary{
		TherapistID:   t.ID,
		TherapistName: t.Name,
		TherapistRole: t.Role,
		Date:          sel.Date.Format("2006-01-02"),
		DateDisplay:   scheduling.FormatDate(sel.Date),
		Time:          sel.Time,
		Mode:          sel.Mode,
		ModeDisplay:   scheduling.FormatMode(sel.Mode),
		Location:      sel.Location,
		FeeRupees:     t.Price,
		FeePaise:      int64(t.Price) * 100,
		Currency:      currency,
	}
}

// Service validates patient details and opens payment orders for the
// consultation fee.
type Service struct {
	gateway  payments.Gateway
	currency string
	logger   *logging.Logger
}

func NewService(gateway payments.Gateway, currency string, logger *logging.Logger) *Service {
	if gateway == nil {
		panic("checkout: payment gateway required")
	}
	if currency == "" {
		currency = "INR"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{gateway: gateway, currency: currency, logger: logger}
}

// Currency reports the fee currency the service charges in.
func (s *Service) Currency() string { return s.currency }

// StartPayment validates the patient details and creates a hosted
// payment order for the therapist's consultation fee. The fee is
// charged in the currency's minor unit, so a 1200 rupee fee becomes a
// 120000 paise order.
func (s *Service) StartPayment(ctx context.Context, sessionID string, t directory.Therapist, sel scheduling.Selection, details PatientDetails) (*payments.Order, error) {
	ctx, span := checkoutTracer.Start(ctx, "checkout.start_payment")
	defer span.End()

	normalized := details.Normalize()
	if errs := normalized.Validate(); errs != nil {
		return nil, errs
	}
	if t.Price <= 0 {
		return nil, fmt.Errorf("checkout: therapist %s has no consultation fee configured", t.ID)
	}

	amountPaise := int64(t.Price) * 100
	span.SetAttributes(
		attribute.String("nila.therapist_id", t.ID),
		attribute.Int64("nila.amount_paise", amountPaise),
	)

	order, err := s.gateway.CreateOrder(ctx, payments.OrderParams{
		AmountPaise: amountPaise,
		Currency:    s.currency,
		Receipt:     sessionID,
		Description: fmt.Sprintf("Consultation with %s", t.Name),
		Payer: payments.Payer{
			Name:  normalized.Name,
			Email: normalized.Email,
			Phone: normalized.Phone,
		},
		Notes: map[string]string{
			"therapist_id":     t.ID,
			"appointment_date": sel.Date.Format("2006-01-02"),
			"appointment_time": sel.Time,
			"mode":             string(sel.Mode),
		},
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("checkout: create payment order: %w", err)
	}

	s.logger.Info("payment order opened",
		"order_id", order.ID,
		"therapist_id", t.ID,
		"amount_paise", amountPaise,
	)
	return order, nil
}
