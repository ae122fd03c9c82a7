package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nilahealth/patient-booking/pkg/logging"
)

var razorpayTracer = otel.Tracer("nila.internal.payments.razorpay")

// RazorpayGateway creates hosted payment links through the Razorpay
// Payment Links API.
type RazorpayGateway struct {
	keyID       string
	keySecret   string
	callbackURL string
	baseURL     string
	httpClient  *http.Client
	logger      *logging.Logger
}

func NewRazorpayGateway(keyID, keySecret, callbackURL string, logger *logging.Logger) *RazorpayGateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &RazorpayGateway{
		keyID:       keyID,
		keySecret:   keySecret,
		callbackURL: callbackURL,
		baseURL:     "https://api.razorpay.com",
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// WithBaseURL overrides the Razorpay API host (tests, sandboxes).
func (g *RazorpayGateway) WithBaseURL(baseURL string) *RazorpayGateway {
	if baseURL == "" {
		return g
	}
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	if g.keyID == "" || g.keySecret == "" {
		return nil, fmt.Errorf("payments: razorpay credentials not configured")
	}
	if params.AmountPaise <= 0 {
		return nil, fmt.Errorf("payments: razorpay order amount must be positive, got %d", params.AmountPaise)
	}

	ctx, span := razorpayTracer.Start(ctx, "razorpay.create_payment_link")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("nila.amount_paise", params.AmountPaise),
		attribute.String("nila.currency", params.Currency),
		attribute.String("nila.receipt", params.Receipt),
	)

	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}
	description := params.Description
	if strings.TrimSpace(description) == "" {
		description = "Consultation Fee"
	}

	body := map[string]any{
		"amount":       params.AmountPaise,
		"currency":     currency,
		"reference_id": params.Receipt,
		"description":  description,
		"customer": map[string]any{
			"name":    params.Payer.Name,
			"email":   params.Payer.Email,
			"contact": params.Payer.Phone,
		},
		"notify": map[string]any{
			"sms":   false,
			"email": false,
		},
	}
	if len(params.Notes) > 0 {
		body["notes"] = params.Notes
	}
	if g.callbackURL != "" {
		body["callback_url"] = g.callbackURL
		body["callback_method"] = "get"
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("payments: razorpay payload: %w", err)
	}

	apiURL := g.baseURL + "/v1/payment_links"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("payments: razorpay request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: razorpay http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payments: razorpay api status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		ID       string `json:"id"`
		ShortURL string `json:"short_url"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("payments: razorpay decode: %w", err)
	}
	if parsed.ShortURL == "" {
		return nil, fmt.Errorf("payments: razorpay response missing short_url")
	}

	return &Order{
		ID:          parsed.ID,
		URL:         parsed.ShortURL,
		AmountPaise: parsed.Amount,
		Currency:    parsed.Currency,
		Status:      parsed.Status,
	}, nil
}
