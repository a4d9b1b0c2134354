package quotes

import "time"

// Service types discriminate which quote variant a submission belongs to.
const (
	ServiceTypeSEO      = "seo"
	ServiceTypeCustom   = "custom"
	ServiceTypeBusiness = "business"
)

// FeatureOther is the sentinel feature option that requires the
// otherFeatures free-text field to be filled in.
const FeatureOther = "Other"

// CustomFeatureOptions is the feature vocabulary offered on the
// custom-design quote form.
var CustomFeatureOptions = []string{
	"Portfolio Gallery",
	"Booking System",
	"Advanced Animations",
	"Contact Forms",
	"Blog/News Section",
	"Member Portal",
	FeatureOther,
}

// BusinessFeatureOptions is the e-commerce feature vocabulary offered on the
// business quote form.
var BusinessFeatureOptions = []string{
	"Product Catalog",
	"Shopping Cart",
	"Payment Processing",
	"Inventory Management",
	"Order Tracking",
	"Customer Accounts",
	FeatureOther,
}

// Payment methods a business quote may select.
const (
	PaymentMethodPayPal = "paypal"
	PaymentMethodStripe = "stripe"
)

// QuoteSubmission is one persisted customer inquiry. Records are created once
// by the submission endpoint after validation and are never updated.
type QuoteSubmission struct {
	ID                   int       `json:"id"`
	ServiceType          string    `json:"serviceType"`
	Name                 string    `json:"name"`
	Email                string    `json:"email,omitempty"`
	Phone                string    `json:"phone"`
	BusinessLocation     string    `json:"businessLocation"`
	BusinessInfo         string    `json:"businessInfo,omitempty"`
	BusinessSchedule     string    `json:"businessSchedule,omitempty"`
	ServicesProducts     string    `json:"servicesProducts,omitempty"`
	WebsiteURL           string    `json:"websiteUrl,omitempty"`
	SeoNeeds             string    `json:"seoNeeds,omitempty"`
	DesiredFeatures      []string  `json:"desiredFeatures,omitempty"`
	SpecialRequirements  string    `json:"specialRequirements,omitempty"`
	PaymentMethods       []string  `json:"paymentMethods,omitempty"`
	PaypalBusinessEmail  string    `json:"paypalBusinessEmail,omitempty"`
	StripePublishableKey string    `json:"stripePublishableKey,omitempty"`
	StripeSecretKey      string    `json:"stripeSecretKey,omitempty"`
	OtherFeatures        string    `json:"otherFeatures,omitempty"`
	SubmittedAt          time.Time `json:"submittedAt"`
}

// HasPaymentMethod reports whether the submission selected the given method.
func (q *QuoteSubmission) HasPaymentMethod(method string) bool {
	for _, m := range q.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// clone returns a deep copy so repository callers never share slices with the
// stored record.
func (q *QuoteSubmission) clone() *QuoteSubmission {
	out := *q
	if q.DesiredFeatures != nil {
		out.DesiredFeatures = append([]string(nil), q.DesiredFeatures...)
	}
	if q.PaymentMethods != nil {
		out.PaymentMethods = append([]string(nil), q.PaymentMethods...)
	}
	return &out
}
