package quotes

import (
	"net/mail"
	"strings"
)

// QuoteRequest is implemented by the three variant request types. Validate is
// pure: it performs no I/O and returns either nil or a *ValidationError.
// Submission builds the normalized candidate record (no id, no timestamp).
type QuoteRequest interface {
	Validate() error
	Submission() *QuoteSubmission
}

// SeoQuoteRequest is the payload for POST /api/quotes/seo.
type SeoQuoteRequest struct {
	ServiceType      string `json:"serviceType"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	BusinessLocation string `json:"businessLocation"`
	WebsiteURL       string `json:"websiteUrl"`
	SeoNeeds         string `json:"seoNeeds"`
}

// Validate checks the SEO variant contract.
func (r *SeoQuoteRequest) Validate() error {
	ve := newValidationError()
	if r.ServiceType != ServiceTypeSEO {
		ve.add("serviceType", `must be "seo"`)
	}
	requireNonEmpty(ve, "name", r.Name)
	requireNonEmpty(ve, "phone", r.Phone)
	requireNonEmpty(ve, "businessLocation", r.BusinessLocation)
	requireNonEmpty(ve, "websiteUrl", r.WebsiteURL)
	requireNonEmpty(ve, "seoNeeds", r.SeoNeeds)
	if ve.ok() {
		return nil
	}
	return ve
}

// Submission builds the candidate record for storage.
func (r *SeoQuoteRequest) Submission() *QuoteSubmission {
	return &QuoteSubmission{
		ServiceType:      ServiceTypeSEO,
		Name:             r.Name,
		Phone:            r.Phone,
		BusinessLocation: r.BusinessLocation,
		WebsiteURL:       r.WebsiteURL,
		SeoNeeds:         r.SeoNeeds,
	}
}

// CustomQuoteRequest is the payload for POST /api/quotes/custom.
type CustomQuoteRequest struct {
	ServiceType         string   `json:"serviceType"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	BusinessLocation    string   `json:"businessLocation"`
	BusinessInfo        string   `json:"businessInfo"`
	BusinessSchedule    string   `json:"businessSchedule"`
	ServicesProducts    string   `json:"servicesProducts"`
	DesiredFeatures     []string `json:"desiredFeatures"`
	SpecialRequirements string   `json:"specialRequirements"`
	OtherFeatures       string   `json:"otherFeatures"`
}

// Validate checks the custom-design variant contract.
func (r *CustomQuoteRequest) Validate() error {
	ve := newValidationError()
	if r.ServiceType != ServiceTypeCustom {
		ve.add("serviceType", `must be "custom"`)
	}
	validateCommon(ve, r.Name, r.Email, r.Phone, r.BusinessLocation, r.BusinessInfo, r.ServicesProducts)
	validateFeatures(ve, r.DesiredFeatures, CustomFeatureOptions, r.OtherFeatures)
	if ve.ok() {
		return nil
	}
	return ve
}

// Submission builds the candidate record for storage.
func (r *CustomQuoteRequest) Submission() *QuoteSubmission {
	return &QuoteSubmission{
		ServiceType:         ServiceTypeCustom,
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		BusinessLocation:    r.BusinessLocation,
		BusinessInfo:        r.BusinessInfo,
		BusinessSchedule:    r.BusinessSchedule,
		ServicesProducts:    r.ServicesProducts,
		DesiredFeatures:     r.DesiredFeatures,
		SpecialRequirements: r.SpecialRequirements,
		OtherFeatures:       r.OtherFeatures,
	}
}

// BusinessQuoteRequest is the payload for POST /api/quotes/business.
type BusinessQuoteRequest struct {
	ServiceType          string   `json:"serviceType"`
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Phone                string   `json:"phone"`
	BusinessLocation     string   `json:"businessLocation"`
	BusinessInfo         string   `json:"businessInfo"`
	BusinessSchedule     string   `json:"businessSchedule"`
	ServicesProducts     string   `json:"servicesProducts"`
	DesiredFeatures      []string `json:"desiredFeatures"`
	SpecialRequirements  string   `json:"specialRequirements"`
	PaymentMethods       []string `json:"paymentMethods"`
	PaypalBusinessEmail  string   `json:"paypalBusinessEmail"`
	StripePublishableKey string   `json:"stripePublishableKey"`
	StripeSecretKey      string   `json:"stripeSecretKey"`
	OtherFeatures        string   `json:"otherFeatures"`
}

// Validate checks the business/e-commerce variant contract, including the
// cross-field payment rules. Unlike the original site, each cross-field
// violation is attributed to the field that is actually missing or malformed
// rather than being lumped under desiredFeatures.
func (r *BusinessQuoteRequest) Validate() error {
	ve := newValidationError()
	if r.ServiceType != ServiceTypeBusiness {
		ve.add("serviceType", `must be "business"`)
	}
	validateCommon(ve, r.Name, r.Email, r.Phone, r.BusinessLocation, r.BusinessInfo, r.ServicesProducts)
	validateFeatures(ve, r.DesiredFeatures, BusinessFeatureOptions, r.OtherFeatures)

	if len(r.PaymentMethods) == 0 {
		ve.add("paymentMethods", "select at least one payment method")
	}
	hasPaypal := false
	hasStripe := false
	for _, m := range r.PaymentMethods {
		switch m {
		case PaymentMethodPayPal:
			hasPaypal = true
		case PaymentMethodStripe:
			hasStripe = true
		default:
			ve.add("paymentMethods", "unknown payment method: "+m)
		}
	}
	if hasPaypal && !validEmail(r.PaypalBusinessEmail) {
		ve.add("paypalBusinessEmail", "a valid PayPal business email is required")
	}
	if hasStripe {
		if strings.TrimSpace(r.StripePublishableKey) == "" {
			ve.add("stripePublishableKey", "required when stripe is selected")
		}
		if strings.TrimSpace(r.StripeSecretKey) == "" {
			ve.add("stripeSecretKey", "required when stripe is selected")
		}
	}

	if ve.ok() {
		return nil
	}
	return ve
}

// Submission builds the candidate record for storage.
func (r *BusinessQuoteRequest) Submission() *QuoteSubmission {
	return &QuoteSubmission{
		ServiceType:          ServiceTypeBusiness,
		Name:                 r.Name,
		Email:                r.Email,
		Phone:                r.Phone,
		BusinessLocation:     r.BusinessLocation,
		BusinessInfo:         r.BusinessInfo,
		BusinessSchedule:     r.BusinessSchedule,
		ServicesProducts:     r.ServicesProducts,
		DesiredFeatures:      r.DesiredFeatures,
		SpecialRequirements:  r.SpecialRequirements,
		PaymentMethods:       r.PaymentMethods,
		PaypalBusinessEmail:  r.PaypalBusinessEmail,
		StripePublishableKey: r.StripePublishableKey,
		StripeSecretKey:      r.StripeSecretKey,
		OtherFeatures:        r.OtherFeatures,
	}
}

// validateCommon covers the base shape shared by the custom and business
// variants: identity/contact fields plus the business description pair.
func validateCommon(ve *ValidationError, name, email, phone, location, info, servicesProducts string) {
	requireNonEmpty(ve, "name", name)
	if !validEmail(email) {
		ve.add("email", "a valid email is required")
	}
	requireNonEmpty(ve, "phone", phone)
	requireNonEmpty(ve, "businessLocation", location)
	requireNonEmpty(ve, "businessInfo", info)
	requireNonEmpty(ve, "servicesProducts", servicesProducts)
}

// validateFeatures restricts desiredFeatures to the variant vocabulary and
// enforces the "Other" sentinel rule.
func validateFeatures(ve *ValidationError, features, allowed []string, otherFeatures string) {
	for _, f := range features {
		if !containsString(allowed, f) {
			ve.add("desiredFeatures", "unknown feature: "+f)
		}
	}
	if containsString(features, FeatureOther) && strings.TrimSpace(otherFeatures) == "" {
		ve.add("otherFeatures", `required when desiredFeatures includes "Other"`)
	}
}

func requireNonEmpty(ve *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.add(field, "required")
	}
}

func validEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
