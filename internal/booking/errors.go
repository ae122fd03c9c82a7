package booking

import "errors"

var (
	// ErrSessionNotFound means the booking session id does not resolve.
	ErrSessionNotFound = errors.New("booking: session not found")

	// ErrWrongStage means the request arrived out of stage order.
	ErrWrongStage = errors.New("booking: operation not valid for current stage")

	// ErrNoPendingOrder means payment completion or cancellation was
	// requested without an open order.
	ErrNoPendingOrder = errors.New("booking: no pending payment order")

	// ErrPaymentIDRequired means the success callback carried no
	// payment reference.
	ErrPaymentIDRequired = errors.New("booking: payment id required")

	// ErrNotConfirmed means the confirmation summary was requested
	// before payment completed.
	ErrNotConfirmed = errors.New("booking: session not confirmed yet")
)
