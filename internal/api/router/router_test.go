package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kaiwebdesign/quote-service/internal/api/router"
	"github.com/kaiwebdesign/quote-service/internal/notify"
	"github.com/kaiwebdesign/quote-service/internal/quotes"
	"github.com/kaiwebdesign/quote-service/pkg/logging"
)

type failingSender struct {
	calls chan struct{}
}

func (f *failingSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	if f.calls != nil {
		f.calls <- struct{}{}
	}
	return errors.New("transport down")
}

func newTestServer(t *testing.T, sender notify.EmailSender) (http.Handler, *quotes.InMemoryRepository) {
	t.Helper()
	repo := quotes.NewInMemoryRepository()
	logger := logging.Default()
	notifier := notify.NewNotifier(sender, "info@kaiwebdesign.com", time.Second, nil, logger)
	handler := quotes.NewHandler(repo, notifier, nil, logger)
	r := router.New(&router.Config{
		Logger:        logger,
		QuotesHandler: handler,
	})
	return r, repo
}

func TestSubmitSeoQuoteEndToEnd(t *testing.T) {
	r, repo := newTestServer(t, notify.NewStubEmailSender(nil))

	body := `{
		"serviceType": "seo",
		"name": "Jane Doe",
		"phone": "555-0100",
		"businessLocation": "Austin, TX",
		"websiteUrl": "https://example.com",
		"seoNeeds": "rank for plumbing"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/seo", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		ID      int  `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.ID != 1 {
		t.Fatalf("expected {success:true, id:1}, got %+v", resp)
	}

	subs, _ := repo.List(context.Background())
	if len(subs) != 1 || subs[0].SubmittedAt.IsZero() {
		t.Fatalf("expected stored record with timestamp, got %+v", subs)
	}
}

func TestNotificationFailureDoesNotAffectResponse(t *testing.T) {
	sender := &failingSender{calls: make(chan struct{}, 1)}
	r, repo := newTestServer(t, sender)

	body := `{
		"serviceType": "custom",
		"name": "John Smith",
		"email": "john@example.com",
		"phone": "555-0101",
		"businessLocation": "Dayton, OH",
		"businessInfo": "Family bakery",
		"servicesProducts": "Bread and cakes"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/custom", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("notification failure leaked into response: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		ID      int  `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.ID != 1 {
		t.Fatalf("expected success despite dispatch failure, got %+v", resp)
	}

	// The dispatch goroutine still ran (and failed silently).
	select {
	case <-sender.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("notification dispatch never attempted")
	}

	subs, _ := repo.List(context.Background())
	if len(subs) != 1 {
		t.Fatalf("expected record persisted, got %d", len(subs))
	}
}

func TestSubmitBusinessQuoteValidationFailure(t *testing.T) {
	r, repo := newTestServer(t, notify.NewStubEmailSender(nil))

	body := `{"serviceType": "business", "paymentMethods": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/business", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "Invalid submission data" {
		t.Fatalf("unexpected error body: %v", resp)
	}
	subs, _ := repo.List(context.Background())
	if len(subs) != 0 {
		t.Fatal("invalid submission must not be persisted")
	}
}

func TestListQuotesRoute(t *testing.T) {
	r, repo := newTestServer(t, notify.NewStubEmailSender(nil))

	seo := &quotes.SeoQuoteRequest{
		ServiceType:      quotes.ServiceTypeSEO,
		Name:             "Jane Doe",
		Phone:            "555-0100",
		BusinessLocation: "Austin, TX",
		WebsiteURL:       "https://example.com",
		SeoNeeds:         "rank for plumbing",
	}
	if _, err := repo.Create(context.Background(), seo.Submission()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var subs []quotes.QuoteSubmission
	if err := json.NewDecoder(w.Body).Decode(&subs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(subs) != 1 || subs[0].Name != "Jane Doe" {
		t.Fatalf("unexpected listing: %+v", subs)
	}
}

func TestHealthRoute(t *testing.T) {
	r, _ := newTestServer(t, notify.NewStubEmailSender(nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("unexpected health body: %s", w.Body.String())
	}
}

func TestRateLimitOnQuotePosts(t *testing.T) {
	repo := quotes.NewInMemoryRepository()
	logger := logging.Default()
	handler := quotes.NewHandler(repo, nil, nil, logger)
	r := router.New(&router.Config{
		Logger:         logger,
		QuotesHandler:  handler,
		QuoteRateLimit: 0.001,
		QuoteRateBurst: 1,
	})

	body := `{
		"serviceType": "seo",
		"name": "Jane Doe",
		"phone": "555-0100",
		"businessLocation": "Austin, TX",
		"websiteUrl": "https://example.com",
		"seoNeeds": "rank for plumbing"
	}`

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/quotes/seo", strings.NewReader(body)))
	if first.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/quotes/seo", strings.NewReader(body)))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", second.Code)
	}

	// The GET listing is not rate limited.
	list := httptest.NewRecorder()
	r.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/quotes", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("listing should not be limited, got %d", list.Code)
	}
}
