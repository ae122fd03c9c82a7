package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nilahealth/patient-booking/internal/booking"
	"github.com/nilahealth/patient-booking/internal/directory"
	httpmiddleware "github.com/nilahealth/patient-booking/internal/http/middleware"
	"github.com/nilahealth/patient-booking/internal/payments"
	"github.com/nilahealth/patient-booking/internal/records"
	"github.com/nilahealth/patient-booking/internal/scheduling"
	"github.com/nilahealth/patient-booking/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	DirectoryHandler   *directory.Handler
	SchedulingHandler  *scheduling.Handler
	BookingHandler     *booking.Handler
	DashboardHandler   *records.Handler
	FakePayments       *payments.FakePaymentsHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	RequestsPerSecond  float64
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RequestsPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RequestsPerSecond, int(cfg.RequestsPerSecond)*2))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.DirectoryHandler != nil {
		r.Route("/therapists", func(r chi.Router) {
			r.Get("/", cfg.DirectoryHandler.ListTherapists)
			r.Get("/{therapistID}", cfg.DirectoryHandler.GetTherapist)
			if cfg.SchedulingHandler != nil {
				r.Get("/{therapistID}/availability", cfg.SchedulingHandler.GetAvailability)
			}
		})
	}

	if cfg.BookingHandler != nil {
		r.Mount("/bookings", cfg.BookingHandler.Routes())
	}

	if cfg.DashboardHandler != nil {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", cfg.DashboardHandler.GetDashboard)
			r.Put("/patient-info", cfg.DashboardHandler.SavePatientInfo)
			r.Get("/receipt", cfg.DashboardHandler.GetReceipt)
			r.Post("/share", cfg.DashboardHandler.ShareReceipt)
		})
	}

	if cfg.FakePayments != nil {
		r.Mount("/demo", cfg.FakePayments.Routes())
	}

	return r
}

// SplitOrigins parses a comma-separated origins list.
func SplitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
