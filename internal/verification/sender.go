package verification

import (
	"context"

	"github.com/nilahealth/patient-booking/pkg/logging"
)

// CodeSender issues a verification code for a phone number. In
// production this would dispatch an SMS; the returned code is what the
// flow later checks entries against.
type CodeSender interface {
	Send(ctx context.Context, phone string) (string, error)
}

// DemoSender issues a fixed placeholder code and performs no real
// dispatch. It stands in for an SMS provider in development and demos;
// the placeholder has no security value.
type DemoSender struct {
	code   string
	logger *logging.Logger
}

// NewDemoSender creates a demo sender issuing the given code.
func NewDemoSender(code string, logger *logging.Logger) *DemoSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &DemoSender{code: code, logger: logger}
}

// Send logs the issue and returns the fixed code.
func (s *DemoSender) Send(ctx context.Context, phone string) (string, error) {
	s.logger.Info("verification code issued", "phone", maskPhone(phone))
	return s.code, nil
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
