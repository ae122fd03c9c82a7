package verification

import "errors"

var (
	// ErrPhoneRequired is returned when the phone number is empty
	ErrPhoneRequired = errors.New("phone number is required")

	// ErrInvalidPhone is returned when the phone number is not exactly
	// 10 digits
	ErrInvalidPhone = errors.New("please enter a valid 10-digit phone number")

	// ErrCodeIncomplete is returned when fewer than six digits were
	// entered
	ErrCodeIncomplete = errors.New("please enter all 6 digits")

	// ErrCodeMismatch is returned when the entered code does not match
	// the issued one
	ErrCodeMismatch = errors.New("invalid verification code")

	// ErrResendNotReady is returned when resend is requested before the
	// countdown reaches zero
	ErrResendNotReady = errors.New("resend not available yet")

	// ErrNotAwaitingCode is returned for code operations outside the
	// code-entry state
	ErrNotAwaitingCode = errors.New("no verification code pending")

	// ErrUnknownKey is returned for unsupported keypad keys
	ErrUnknownKey = errors.New("unsupported key")
)
