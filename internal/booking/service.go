package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nilahealth/patient-booking/internal/checkout"
	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/internal/observability/metrics"
	"github.com/nilahealth/patient-booking/internal/records"
	"github.com/nilahealth/patient-booking/internal/scheduling"
	"github.com/nilahealth/patient-booking/internal/verification"
	"github.com/nilahealth/patient-booking/pkg/logging"
)

var bookingTracer = otel.Tracer("nila.internal.booking")

// CancelNotice is surfaced when the payment widget is dismissed.
const CancelNotice = "Payment was cancelled. You have not been charged. You can retry whenever you are ready."

// Service drives a booking session through scheduling, verification,
// checkout and confirmation.
type Service struct {
	directory directory.Repository
	scheduler *scheduling.Service
	verifier  *verification.Service
	checkout  *checkout.Service
	sessions  *SessionStore
	records   *records.Store
	metrics   *metrics.FlowMetrics
	method    string
	logger    *logging.Logger
}

func NewService(
	dir directory.Repository,
	scheduler *scheduling.Service,
	verifier *verification.Service,
	co *checkout.Service,
	sessions *SessionStore,
	recordStore *records.Store,
	flowMetrics *metrics.FlowMetrics,
	paymentMethod string,
	logger *logging.Logger,
) *Service {
	if dir == nil || scheduler == nil || verifier == nil || co == nil || sessions == nil || recordStore == nil {
		panic("booking: missing service dependency")
	}
	if paymentMethod == "" {
		paymentMethod = "razorpay"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		directory: dir,
		scheduler: scheduler,
		verifier:  verifier,
		checkout:  co,
		sessions:  sessions,
		records:   recordStore,
		metrics:   flowMetrics,
		method:    paymentMethod,
		logger:    logger,
	}
}

// Start creates a flow session from a completed slot selection. The
// scheduling stage finishes here; the session opens at verification.
func (s *Service) Start(ctx context.Context, therapistID, date, slot string, mode scheduling.Mode) (*FlowSession, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.start")
	defer span.End()
	span.SetAttributes(attribute.String("nila.therapist_id", therapistID))

	therapist, err := s.directory.GetByID(ctx, therapistID)
	if err != nil {
		return nil, err
	}

	selection, err := s.scheduler.Complete(therapistID, date, slot, mode)
	if err != nil {
		return nil, err
	}

	now := s.verifier.Now()
	sess := &FlowSession{
		ID:        uuid.NewString(),
		Stage:     StageVerification,
		Therapist: *therapist,
		Selection: *selection,
		OTP:       verification.NewSession(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveBookingStarted()
	s.logger.Info("booking session started",
		"session_id", sess.ID,
		"therapist_id", therapistID,
		"date", selection.Date.Format("2006-01-02"),
		"slot", selection.Time,
	)
	return sess, nil
}

// Now exposes the flow clock for countdown projections.
func (s *Service) Now() time.Time { return s.verifier.Now() }

// Load fetches a session by id.
func (s *Service) Load(ctx context.Context, id string) (*FlowSession, error) {
	return s.sessions.Load(ctx, id)
}

// SubmitPhone starts (or restarts) code entry for the session. A
// second submission acts as "change number" and discards prior code
// state.
func (s *Service) SubmitPhone(ctx context.Context, id, phone string) (*FlowSession, error) {
	sess, err := s.requireStage(ctx, id, StageVerification)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.Begin(ctx, sess.OTP, phone); err != nil {
		return nil, err
	}
	s.metrics.ObserveCodeSent("initial")
	return sess, s.save(ctx, sess)
}

// PressKey applies one keypad event to the code entry grid.
func (s *Service) PressKey(ctx context.Context, id, key string) (*FlowSession, error) {
	sess, err := s.requireStage(ctx, id, StageVerification)
	if err != nil {
		return nil, err
	}
	if err := sess.OTP.PressKey(key); err != nil {
		return nil, err
	}
	return sess, s.save(ctx, sess)
}

// Resend re-issues the verification code once the countdown elapsed.
func (s *Service) Resend(ctx context.Context, id string) (*FlowSession, error) {
	sess, err := s.requireStage(ctx, id, StageVerification)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.Resend(ctx, sess.OTP); err != nil {
		return nil, err
	}
	s.metrics.ObserveCodeSent("resend")
	return sess, s.save(ctx, sess)
}

// Verify checks the entered code and, on success, advances the session
// to checkout. A mismatch leaves the stage and grid untouched.
func (s *Service) Verify(ctx context.Context, id, code string) (*FlowSession, error) {
	sess, err := s.requireStage(ctx, id, StageVerification)
	if err != nil {
		return nil, err
	}

	if err := s.verifier.Verify(ctx, sess.OTP, code); err != nil {
		switch err {
		case verification.ErrCodeMismatch:
			s.metrics.ObserveCodeChecked("mismatch")
		case verification.ErrCodeIncomplete:
			s.metrics.ObserveCodeChecked("incomplete")
		}
		return nil, err
	}

	sess.Verification = &VerificationResult{
		Phone:      sess.OTP.Phone,
		Verified:   true,
		VerifiedAt: sess.OTP.VerifiedAt,
	}
	sess.Stage = StageCheckout
	s.metrics.ObserveCodeChecked("verified")
	return sess, s.save(ctx, sess)
}

// Checkout validates patient details and opens a payment order for the
// consultation fee. Validation failures change nothing server-side.
func (s *Service) Checkout(ctx context.Context, id string, details checkout.PatientDetails) (*FlowSession, error) {
	sess, err := s.requireStage(ctx, id, StageCheckout)
	if err != nil {
		return nil, err
	}

	order, err := s.checkout.StartPayment(ctx, sess.ID, sess.Therapist, sess.Selection, details)
	if err != nil {
		return nil, err
	}

	normalized := details.Normalize()
	sess.Details = &normalized
	sess.PendingOrder = order
	sess.Notice = ""
	s.metrics.ObservePayment("created")
	return sess, s.save(ctx, sess)
}

// CompletePayment is the gateway success callback: it records the
// payment, writes the durable appointment record, and confirms the
// session.
func (s *Service) CompletePayment(ctx context.Context, id, paymentID string) error {
	ctx, span := bookingTracer.Start(ctx, "booking.complete_payment")
	defer span.End()

	sess, err := s.requireStage(ctx, id, StageCheckout)
	if err != nil {
		return err
	}
	if sess.PendingOrder == nil || sess.Details == nil {
		return ErrNoPendingOrder
	}
	if paymentID == "" {
		return ErrPaymentIDRequired
	}

	now := s.verifier.Now()
	sess.Payment = &PaymentResult{
		Name:        sess.Details.Name,
		Email:       sess.Details.Email,
		Phone:       sess.Details.Phone,
		AmountPaise: sess.PendingOrder.AmountPaise,
		Currency:    sess.PendingOrder.Currency,
		OrderID:     sess.PendingOrder.ID,
		PaymentID:   paymentID,
		Status:      "completed",
		Method:      s.method,
		CompletedAt: now,
	}
	sess.Stage = StageConfirmed
	sess.PendingOrder = nil
	sess.Notice = ""
	sess.UpdatedAt = now

	if err := s.records.SaveAppointment(ctx, s.buildRecord(ctx, sess)); err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		span.RecordError(err)
		return err
	}

	s.metrics.ObservePayment("completed")
	s.metrics.ObserveBookingConfirmed()
	s.logger.Info("booking confirmed",
		"session_id", sess.ID,
		"therapist_id", sess.Therapist.ID,
		"payment_id", paymentID,
	)
	return nil
}

// CancelPayment is the gateway dismissal callback: the pending order
// is dropped, a notice is surfaced, and the entered details stay so
// the patient can retry.
func (s *Service) CancelPayment(ctx context.Context, id string) (*FlowSession, error) {
	sess, err := s.requireStage(ctx, id, StageCheckout)
	if err != nil {
		return nil, err
	}
	if sess.PendingOrder == nil {
		return nil, ErrNoPendingOrder
	}

	sess.PendingOrder = nil
	sess.Notice = CancelNotice
	s.metrics.ObservePayment("cancelled")
	return sess, s.save(ctx, sess)
}

// Confirmation returns the confirmed session for the post-payment
// summary.
func (s *Service) Confirmation(ctx context.Context, id string) (*FlowSession, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Stage != StageConfirmed {
		return nil, ErrNotConfirmed
	}
	return sess, nil
}

func (s *Service) requireStage(ctx context.Context, id string, stage Stage) (*FlowSession, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Stage != stage {
		return nil, fmt.Errorf("%w: session is at %s, wanted %s", ErrWrongStage, sess.Stage, stage)
	}
	return sess, nil
}

func (s *Service) save(ctx context.Context, sess *FlowSession) error {
	sess.UpdatedAt = s.verifier.Now()
	return s.sessions.Save(ctx, sess)
}

func (s *Service) buildRecord(ctx context.Context, sess *FlowSession) *records.AppointmentRecord {
	rec := &records.AppointmentRecord{
		Doctor:       sess.Therapist.Name,
		Specialty:    sess.Therapist.Role,
		Date:         sess.Selection.Date.Format("2006-01-02"),
		Time:         sess.Selection.Time,
		Mode:         sess.Selection.Mode,
		Location:     sess.Selection.Location,
		PatientName:  sess.Payment.Name,
		Email:        sess.Payment.Email,
		Phone:        sess.Payment.Phone,
		AmountRupees: sess.Therapist.Price,
		Currency:     sess.Payment.Currency,
		OrderID:      sess.Payment.OrderID,
		PaymentID:    sess.Payment.PaymentID,
		Method:       sess.Payment.Method,
		Status:       sess.Payment.Status,
		BookedAt:     sess.Payment.CompletedAt,
	}
	if profile, err := s.records.LoadProfile(ctx); err == nil {
		rec.Patient = *profile
	}
	return rec
}
