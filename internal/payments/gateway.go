package payments

import (
	"context"
	"errors"
)

// ErrOrderNotFound is returned when a payment order does not exist.
var ErrOrderNotFound = errors.New("payments: order not found")

// Payer prefills the hosted checkout page with contact details.
type Payer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderParams describe a consultation fee order. AmountPaise is the
// fee in the currency's minor unit (paise for INR).
type OrderParams struct {
	AmountPaise int64
	Currency    string
	Receipt     string
	Description string
	Payer       Payer
	Notes       map[string]string
}

// Order is a created payment order with a hosted checkout URL.
type Order struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	AmountPaise int64  `json:"amount_paise"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// Gateway creates hosted payment orders for consultation fees.
type Gateway interface {
	CreateOrder(ctx context.Context, params OrderParams) (*Order, error)
}
