package payments

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/nilahealth/patient-booking/pkg/logging"
)

// FakeGateway is a dev/demo provider that serves an internal checkout
// page instead of calling Razorpay. Created orders are held in memory
// so the demo page can render them.
//
// This MUST be gated by configuration (ALLOW_FAKE_PAYMENTS) and should
// never be enabled in production.
type FakeGateway struct {
	publicBaseURL string
	logger        *logging.Logger

	mu     sync.Mutex
	orders map[string]fakeOrder
}

type fakeOrder struct {
	order  Order
	params OrderParams
}

func NewFakeGateway(publicBaseURL string, logger *logging.Logger) *FakeGateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &FakeGateway{
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		logger:        logger,
		orders:        make(map[string]fakeOrder),
	}
}

func (g *FakeGateway) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	_ = ctx
	if params.Receipt == "" {
		return nil, fmt.Errorf("payments: fake gateway requires a receipt reference")
	}
	if g.publicBaseURL == "" {
		return nil, fmt.Errorf("payments: fake gateway requires PUBLIC_BASE_URL")
	}
	if !isValidBaseURL(g.publicBaseURL) {
		return nil, fmt.Errorf("payments: fake gateway PUBLIC_BASE_URL must be an absolute http(s) URL")
	}

	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}
	orderID := "order_fake_" + randomHex(12)
	order := Order{
		ID:          orderID,
		URL:         fmt.Sprintf("%s/demo/payments/%s", g.publicBaseURL, orderID),
		AmountPaise: params.AmountPaise,
		Currency:    currency,
		Status:      "created",
	}

	g.mu.Lock()
	g.orders[orderID] = fakeOrder{order: order, params: params}
	g.mu.Unlock()

	g.logger.Info("fake payment order created", "order_id", orderID, "amount_paise", params.AmountPaise)
	return &order, nil
}

// Lookup returns a previously created fake order.
func (g *FakeGateway) Lookup(orderID string) (Order, OrderParams, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stored, ok := g.orders[orderID]
	if !ok {
		return Order{}, OrderParams{}, false
	}
	return stored.order, stored.params, true
}

// NewFakePaymentID mints a payment reference in the provider's format.
func NewFakePaymentID() string {
	return "pay_fake_" + randomHex(12)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("payments: random id: %v", err))
	}
	return hex.EncodeToString(buf)
}

func isValidBaseURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
