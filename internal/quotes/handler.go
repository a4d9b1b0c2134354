package quotes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kaiwebdesign/quote-service/internal/observability/metrics"
	"github.com/kaiwebdesign/quote-service/pkg/logging"
)

var tracer = otel.Tracer("kaiweb.internal.quotes")

// SubmissionNotifier receives stored submissions for best-effort delivery to
// the business. Implementations must not block the caller.
type SubmissionNotifier interface {
	Dispatch(sub *QuoteSubmission)
}

// Handler handles the quote intake HTTP surface.
type Handler struct {
	repo     Repository
	notifier SubmissionNotifier
	metrics  *metrics.QuoteMetrics
	logger   *logging.Logger
}

// NewHandler creates a quotes handler. notifier and metrics may be nil.
func NewHandler(repo Repository, notifier SubmissionNotifier, m *metrics.QuoteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// CreateSEOQuote handles POST /api/quotes/seo.
func (h *Handler) CreateSEOQuote(w http.ResponseWriter, r *http.Request) {
	h.createQuote(w, r, ServiceTypeSEO, &SeoQuoteRequest{})
}

// CreateCustomQuote handles POST /api/quotes/custom.
func (h *Handler) CreateCustomQuote(w http.ResponseWriter, r *http.Request) {
	h.createQuote(w, r, ServiceTypeCustom, &CustomQuoteRequest{})
}

// CreateBusinessQuote handles POST /api/quotes/business.
func (h *Handler) CreateBusinessQuote(w http.ResponseWriter, r *http.Request) {
	h.createQuote(w, r, ServiceTypeBusiness, &BusinessQuoteRequest{})
}

func (h *Handler) createQuote(w http.ResponseWriter, r *http.Request, serviceType string, req QuoteRequest) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "quotes.create",
		trace.WithAttributes(attribute.String("kaiweb.service_type", serviceType)))
	defer span.End()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		span.RecordError(err)
		h.logger.Warn("failed to decode quote payload", "service_type", serviceType, "error", err)
		h.metrics.ObserveSubmission(serviceType, "invalid")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid submission data"})
		return
	}

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		var ve *ValidationError
		if errors.As(err, &ve) {
			h.logger.Warn("quote validation failed", "service_type", serviceType, "fields", ve.Fields)
		} else {
			h.logger.Warn("quote validation failed", "service_type", serviceType, "error", err)
		}
		h.metrics.ObserveSubmission(serviceType, "invalid")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid submission data"})
		return
	}

	stored, err := h.repo.Create(ctx, req.Submission())
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to store quote submission", "service_type", serviceType, "error", err)
		h.metrics.ObserveSubmission(serviceType, "storage_error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save submission"})
		return
	}

	if h.notifier != nil {
		h.notifier.Dispatch(stored)
	}

	h.logger.Info("quote submission created",
		"id", stored.ID,
		"service_type", stored.ServiceType,
		"name", stored.Name,
	)
	h.metrics.ObserveSubmission(serviceType, "created")
	h.metrics.ObserveSubmissionDuration(serviceType, time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("kaiweb.submission_id", stored.ID))

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": stored.ID})
}

// ListQuotes handles GET /api/quotes. Intended for administrative use.
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "quotes.list")
	defer span.End()

	subs, err := h.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to list quote submissions", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch submissions"})
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
