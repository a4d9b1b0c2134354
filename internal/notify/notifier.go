package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kaiwebdesign/quote-service/internal/observability/metrics"
	"github.com/kaiwebdesign/quote-service/internal/quotes"
	"github.com/kaiwebdesign/quote-service/pkg/logging"
)

// DefaultDispatchTimeout bounds how long a single notification send may take.
const DefaultDispatchTimeout = 10 * time.Second

// Notifier formats stored quote submissions and emails them to the business
// address. Delivery is best-effort: failures are logged and swallowed, never
// surfaced to the submitting client.
type Notifier struct {
	sender  EmailSender
	to      string
	timeout time.Duration
	metrics *metrics.QuoteMetrics
	logger  *logging.Logger
}

// NewNotifier creates a quote notifier. metrics may be nil.
func NewNotifier(sender EmailSender, to string, timeout time.Duration, m *metrics.QuoteMetrics, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}
	return &Notifier{
		sender:  sender,
		to:      to,
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// Dispatch sends the notification in a detached goroutine so a slow or
// hanging transport can never delay the HTTP response. The outcome is
// observed only for logging and metrics.
func (n *Notifier) Dispatch(sub *quotes.QuoteSubmission) {
	if n == nil || n.sender == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.Send(ctx, sub); err != nil {
			n.logger.Error("quote notification failed",
				"submission_id", sub.ID,
				"service_type", sub.ServiceType,
				"error", err,
			)
			n.metrics.ObserveNotification("failed")
			return
		}
		n.metrics.ObserveNotification("sent")
	}()
}

// Send builds and delivers the notification synchronously. Exposed for tests
// and for callers that want to await delivery.
func (n *Notifier) Send(ctx context.Context, sub *quotes.QuoteSubmission) error {
	if n.sender == nil {
		return fmt.Errorf("notify: no email sender configured")
	}
	msg := n.buildMessage(sub)
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: quote %d: %w", sub.ID, err)
	}
	return nil
}

func (n *Notifier) buildMessage(sub *quotes.QuoteSubmission) EmailMessage {
	var subject string
	var b htmlBuilder

	switch sub.ServiceType {
	case quotes.ServiceTypeSEO:
		subject = fmt.Sprintf("New SEO Quote Request from %s", sub.Name)
		b.heading("New SEO Quote Request")
		b.field("Name", sub.Name)
		b.field("Phone", sub.Phone)
		b.field("Business Location", sub.BusinessLocation)
		b.field("Website URL", sub.WebsiteURL)
		b.field("SEO Needs", sub.SeoNeeds)

	case quotes.ServiceTypeCustom:
		subject = fmt.Sprintf("New Custom Design Quote Request from %s", sub.Name)
		b.heading("New Custom Design Quote Request")
		n.writeCommonFields(&b, sub)
		b.field("Special Requirements", orDefault(sub.SpecialRequirements, "None"))

	case quotes.ServiceTypeBusiness:
		subject = fmt.Sprintf("New Business Website Quote Request from %s", sub.Name)
		b.heading("New Business Website Quote Request")
		n.writeCommonFields(&b, sub)
		b.field("Payment Methods", orDefault(strings.Join(sub.PaymentMethods, ", "), "None selected"))
		if sub.HasPaymentMethod(quotes.PaymentMethodPayPal) {
			b.field("PayPal Business Email", sub.PaypalBusinessEmail)
		}
		if sub.HasPaymentMethod(quotes.PaymentMethodStripe) {
			b.field("Stripe Publishable Key", sub.StripePublishableKey)
			// The secret key never goes over email; only whether it was supplied.
			b.field("Stripe Secret Key", providedFlag(sub.StripeSecretKey))
		}
		b.field("Special Requirements", orDefault(sub.SpecialRequirements, "None"))
	}

	return EmailMessage{
		To:      n.to,
		Subject: subject,
		Body:    b.text.String(),
		HTML:    b.html.String(),
	}
}

func (n *Notifier) writeCommonFields(b *htmlBuilder, sub *quotes.QuoteSubmission) {
	b.field("Name", sub.Name)
	b.field("Email", sub.Email)
	b.field("Phone", sub.Phone)
	b.field("Business Location", sub.BusinessLocation)
	b.field("Business Info", sub.BusinessInfo)
	b.field("Business Schedule", orDefault(sub.BusinessSchedule, "Not provided"))
	b.field("Services/Products", sub.ServicesProducts)
	b.field("Desired Features", orDefault(strings.Join(sub.DesiredFeatures, ", "), "None specified"))
	if sub.OtherFeatures != "" {
		b.field("Other Features", sub.OtherFeatures)
	}
}

// htmlBuilder accumulates parallel plain-text and HTML renderings.
type htmlBuilder struct {
	text strings.Builder
	html strings.Builder
}

func (b *htmlBuilder) heading(title string) {
	fmt.Fprintf(&b.text, "%s\n\n", title)
	fmt.Fprintf(&b.html, "<h2>%s</h2>\n", html.EscapeString(title))
}

func (b *htmlBuilder) field(label, value string) {
	fmt.Fprintf(&b.text, "%s: %s\n", label, value)
	fmt.Fprintf(&b.html, "<p><strong>%s:</strong> %s</p>\n", html.EscapeString(label), html.EscapeString(value))
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func providedFlag(secret string) string {
	if secret != "" {
		return "[PROVIDED]"
	}
	return "[NOT PROVIDED]"
}
