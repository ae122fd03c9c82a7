package payments

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nilahealth/patient-booking/pkg/logging"
)

// PaymentCompleter finalizes a booking once its consultation fee is
// paid. The fake checkout page drives it with the payment reference it
// mints on completion.
type PaymentCompleter interface {
	CompletePayment(ctx context.Context, sessionID, paymentID string) error
}

// FakePaymentsHandler exposes a tiny demo UI to pay consultation fees
// without Razorpay. Only mount this handler when ALLOW_FAKE_PAYMENTS=true.
type FakePaymentsHandler struct {
	gateway   *FakeGateway
	completer PaymentCompleter
	logger    *logging.Logger
}

func NewFakePaymentsHandler(gateway *FakeGateway, completer PaymentCompleter, logger *logging.Logger) *FakePaymentsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &FakePaymentsHandler{
		gateway:   gateway,
		completer: completer,
		logger:    logger,
	}
}

func (h *FakePaymentsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/payments/{orderID}", h.HandleCheckout)
	r.Post("/payments/{orderID}/complete", h.HandleComplete)
	r.Get("/payments/{orderID}/success", h.HandleSuccess)
	return r
}

func (h *FakePaymentsHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	order, params, found := h.gateway.Lookup(orderID)
	if !found {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	amount := float64(order.AmountPaise) / 100.0
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Demo Consultation Checkout</title>
    <style>
      body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Cantarell,Noto Sans,sans-serif;max-width:680px;margin:40px auto;padding:0 16px;}
      .card{border:1px solid #e5e7eb;border-radius:12px;padding:18px;}
      .btn{display:inline-block;background:#111827;color:#fff;padding:12px 16px;border-radius:10px;text-decoration:none;border:0;cursor:pointer;}
      .muted{color:#6b7280;font-size:14px;}
      code{background:#f3f4f6;padding:2px 6px;border-radius:6px;}
    </style>
  </head>
  <body>
    <h1>Demo Consultation Checkout</h1>
    <div class="card">
      <p><strong>Amount:</strong> &#8377;%.2f</p>
      <p><strong>Patient:</strong> %s</p>
      <p class="muted">This is a demo-only payment page (no real payment is processed).</p>
      <form method="POST" action="/demo/payments/%s/complete">
        <button class="btn" type="submit">Pay Consultation Fee</button>
      </form>
      <p class="muted">Order ID: <code>%s</code></p>
    </div>
  </body>
</html>`, amount, params.Payer.Name, order.ID, order.ID)
}

func (h *FakePaymentsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	_, params, found := h.gateway.Lookup(orderID)
	if !found {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if h.completer == nil {
		http.Error(w, "payments unavailable", http.StatusServiceUnavailable)
		return
	}

	paymentID := NewFakePaymentID()
	if err := h.completer.CompletePayment(r.Context(), params.Receipt, paymentID); err != nil {
		h.logger.Error("fake payment completion failed", "error", err, "order_id", orderID)
		http.Error(w, "failed to complete payment", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/demo/payments/%s/success", orderID), http.StatusSeeOther)
}

func (h *FakePaymentsHandler) HandleSuccess(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Payment Completed</title>
    <style>
      body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Cantarell,Noto Sans,sans-serif;max-width:680px;margin:40px auto;padding:0 16px;}
      .card{border:1px solid #e5e7eb;border-radius:12px;padding:18px;}
      .muted{color:#6b7280;font-size:14px;}
      code{background:#f3f4f6;padding:2px 6px;border-radius:6px;}
    </style>
  </head>
  <body>
    <h1>Payment Completed</h1>
    <div class="card">
      <p>Thanks &mdash; your demo consultation fee is marked as paid.</p>
      <p class="muted">You can close this tab and return to your appointment dashboard.</p>
      <p class="muted">Order ID: <code>%s</code></p>
    </div>
  </body>
</html>`, orderID)
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderID"))
	if raw == "" {
		http.Error(w, "missing order id", http.StatusBadRequest)
		return "", false
	}
	return raw, true
}
