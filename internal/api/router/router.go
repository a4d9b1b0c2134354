package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/kaiwebdesign/quote-service/internal/http/middleware"
	"github.com/kaiwebdesign/quote-service/internal/quotes"
	"github.com/kaiwebdesign/quote-service/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger        *logging.Logger
	QuotesHandler *quotes.Handler

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Rate limit applied to the public quote POST routes. Zero disables it.
	QuoteRateLimit float64
	QuoteRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
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

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/quotes", func(api chi.Router) {
		api.Get("/", cfg.QuotesHandler.ListQuotes)

		api.Group(func(public chi.Router) {
			if cfg.QuoteRateLimit > 0 {
				public.Use(httpmiddleware.RateLimit(cfg.QuoteRateLimit, cfg.QuoteRateBurst))
			}
			public.Post("/seo", cfg.QuotesHandler.CreateSEOQuote)
			public.Post("/custom", cfg.QuotesHandler.CreateCustomQuote)
			public.Post("/business", cfg.QuotesHandler.CreateBusinessQuote)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
