package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kaiwebdesign/quote-service/cmd/mainconfig"
	"github.com/kaiwebdesign/quote-service/internal/api/router"
	appconfig "github.com/kaiwebdesign/quote-service/internal/config"
	"github.com/kaiwebdesign/quote-service/internal/notify"
	"github.com/kaiwebdesign/quote-service/internal/observability/metrics"
	"github.com/kaiwebdesign/quote-service/internal/quotes"
	"github.com/kaiwebdesign/quote-service/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting quote-service API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Select the storage backend: Postgres when DATABASE_URL is set,
	// otherwise the in-process store for environments without a database.
	var quotesRepo quotes.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		quotesRepo = quotes.NewPostgresRepository(pool)
		logger.Info("using postgres storage backend")
	} else {
		quotesRepo = quotes.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory storage backend")
	}

	quoteMetrics := metrics.NewQuoteMetrics(prometheus.DefaultRegisterer)

	emailSender := buildEmailSender(cfg, logger)
	notifier := notify.NewNotifier(emailSender, cfg.NotifyEmail, cfg.NotifyTimeout, quoteMetrics, logger)

	quotesHandler := quotes.NewHandler(quotesRepo, notifier, quoteMetrics, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		QuotesHandler:      quotesHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		QuoteRateLimit:     cfg.QuoteRateLimit,
		QuoteRateBurst:     cfg.QuoteRateBurst,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the transport from config. A misconfigured or absent
// provider degrades to the stub sender so submissions keep working.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	provider := cfg.EmailProvider
	if provider == "auto" {
		switch {
		case cfg.SendGridAPIKey != "":
			provider = "sendgrid"
		case cfg.SESFromEmail != "":
			provider = "ses"
		default:
			provider = "stub"
		}
	}

	switch provider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("email notifications via sendgrid", "from", cfg.SendGridFromEmail)
			return sender
		}
		logger.Warn("sendgrid selected but SENDGRID_API_KEY missing, using stub sender")
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config, using stub sender", "error", err)
			break
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if sender != nil {
			logger.Info("email notifications via SES", "from", cfg.SESFromEmail)
			return sender
		}
	}

	return notify.NewStubEmailSender(logger)
}
