package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nilahealth/patient-booking/internal/api/router"
	"github.com/nilahealth/patient-booking/internal/booking"
	"github.com/nilahealth/patient-booking/internal/checkout"
	appconfig "github.com/nilahealth/patient-booking/internal/config"
	"github.com/nilahealth/patient-booking/internal/directory"
	"github.com/nilahealth/patient-booking/internal/notify"
	"github.com/nilahealth/patient-booking/internal/observability/metrics"
	"github.com/nilahealth/patient-booking/internal/payments"
	"github.com/nilahealth/patient-booking/internal/records"
	"github.com/nilahealth/patient-booking/internal/scheduling"
	"github.com/nilahealth/patient-booking/internal/verification"
	"github.com/nilahealth/patient-booking/pkg/logging"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting patient-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("redis unavailable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:" + cfg.Port
	}

	// Payment provider selection. The fake gateway serves local and demo
	// environments; Razorpay payment links serve everything else.
	var gateway payments.Gateway
	var fakeGateway *payments.FakeGateway
	switch cfg.PaymentProvider {
	case "razorpay":
		rzp := payments.NewRazorpayGateway(
			cfg.RazorpayKeyID,
			cfg.RazorpayKeySecret,
			publicBaseURL+"/dashboard",
			logger,
		)
		if cfg.RazorpayBaseURL != "" {
			rzp = rzp.WithBaseURL(cfg.RazorpayBaseURL)
		}
		gateway = rzp
	default:
		if !cfg.AllowFakePayments {
			logger.Error("fake payments disabled and no real provider configured",
				"provider", cfg.PaymentProvider)
			os.Exit(1)
		}
		fakeGateway = payments.NewFakeGateway(publicBaseURL, logger)
		gateway = fakeGateway
	}

	therapists := directory.NewStaticRepository(nil)
	scheduler := scheduling.NewService(nil)
	verifier := verification.NewService(
		verification.NewDemoSender(cfg.OTPDemoCode, logger),
		nil,
		cfg.OTPResendWindow,
		cfg.VerifyProgressInterval,
		logger,
	)
	checkoutService := checkout.NewService(gateway, cfg.CurrencyCode, logger)

	sessionStore := booking.NewSessionStore(redisClient, cfg.BookingSessionTTL)
	recordStore := records.NewStore(redisClient, logger)

	flowMetrics := metrics.NewFlowMetrics(nil)

	paymentMethod := "razorpay"
	if fakeGateway != nil {
		paymentMethod = "demo"
	}

	bookingService := booking.NewService(
		therapists,
		scheduler,
		verifier,
		checkoutService,
		sessionStore,
		recordStore,
		flowMetrics,
		paymentMethod,
		logger,
	)

	var mailer notify.EmailSender
	if cfg.SendGridAPIKey != "" {
		mailer = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	}

	var fakePaymentsHandler *payments.FakePaymentsHandler
	if fakeGateway != nil {
		fakePaymentsHandler = payments.NewFakePaymentsHandler(fakeGateway, bookingService, logger)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		DirectoryHandler:   directory.NewHandler(therapists, logger),
		SchedulingHandler:  scheduling.NewHandler(therapists, logger),
		BookingHandler:     booking.NewHandler(bookingService, logger),
		DashboardHandler:   records.NewHandler(recordStore, mailer, nil, logger),
		FakePayments:       fakePaymentsHandler,
		MetricsHandler:     promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: router.SplitOrigins(cfg.CORSAllowedOrigins),
		RequestsPerSecond:  25,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
