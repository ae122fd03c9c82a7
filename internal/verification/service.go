package verification

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/nilahealth/patient-booking/pkg/logging"
)

var verificationTracer = otel.Tracer("nila.internal.verification")

// Clock abstracts "now" for countdown handling.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ProgressStep is the fixed increment of the verification progress
// simulation.
const ProgressStep = 25

// Service runs the phone verification flow: issue a code, gate resends
// behind a countdown, and simulate the verify progress.
type Service struct {
	sender           CodeSender
	clock            Clock
	resendWindow     time.Duration
	progressInterval time.Duration
	logger           *logging.Logger
}

// NewService constructs a verification service.
func NewService(sender CodeSender, clock Clock, resendWindow, progressInterval time.Duration, logger *logging.Logger) *Service {
	if sender == nil {
		panic("verification: code sender required")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if resendWindow <= 0 {
		resendWindow = 30 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sender:           sender,
		clock:            clock,
		resendWindow:     resendWindow,
		progressInterval: progressInterval,
		logger:           logger,
	}
}

// Now exposes the service clock.
func (s *Service) Now() time.Time { return s.clock.Now() }

// Begin validates the submitted phone number, issues a code, and moves
// the session into code entry with a fresh countdown. Submitting a new
// number while a code is pending discards the old code state.
func (s *Service) Begin(ctx context.Context, sess *Session, rawPhone string) error {
	ctx, span := verificationTracer.Start(ctx, "verification.begin")
	defer span.End()

	phone, err := ValidatePhone(rawPhone)
	if err != nil {
		return err
	}
	code, err := s.sender.Send(ctx, phone)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("verification: issue code: %w", err)
	}
	sess.StartCodeEntry(phone, code, s.clock.Now(), s.resendWindow)
	return nil
}

// Resend re-issues the code once the countdown has elapsed. Earlier
// calls fail with ErrResendNotReady and leave the countdown untouched.
func (s *Service) Resend(ctx context.Context, sess *Session) error {
	ctx, span := verificationTracer.Start(ctx, "verification.resend")
	defer span.End()

	now := s.clock.Now()
	if !sess.CanResend(now) {
		return ErrResendNotReady
	}
	code, err := s.sender.Send(ctx, sess.Phone)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("verification: reissue code: %w", err)
	}
	return sess.Resend(code, now, s.resendWindow)
}

// Verify checks the candidate code (or the accumulated grid when
// candidate is empty) and, on a match, runs the staged progress
// simulation to completion. The simulation honors ctx cancellation so
// an abandoned request never marks a session verified. A mismatch
// returns ErrCodeMismatch and leaves the session in code entry.
func (s *Service) Verify(ctx context.Context, sess *Session, candidate string) error {
	ctx, span := verificationTracer.Start(ctx, "verification.verify")
	defer span.End()

	if candidate == "" {
		candidate = sess.EnteredCode()
	}
	if err := sess.CheckCode(candidate); err != nil {
		return err
	}

	sess.State = StateVerifying
	for progress := ProgressStep; progress <= 100; progress += ProgressStep {
		if s.progressInterval > 0 {
			select {
			case <-ctx.Done():
				sess.State = StateCodeEntry
				sess.Progress = 0
				return ctx.Err()
			case <-time.After(s.progressInterval):
			}
		}
		sess.Progress = progress
	}
	sess.MarkVerified(s.clock.Now())
	s.logger.Info("patient identity verified", "phone", maskPhone(sess.Phone))
	return nil
}
