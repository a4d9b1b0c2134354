package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it
// in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores submissions in the quote_submissions table. Id
// assignment is delegated to the serial sequence; the submission timestamp is
// assigned here and persisted as an RFC 3339 text column.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("quotes: db required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row and returns the stored record.
func (r *PostgresRepository) Create(ctx context.Context, candidate *QuoteSubmission) (*QuoteSubmission, error) {
	submittedAt := time.Now().UTC()
	query := `
		INSERT INTO quote_submissions (
			service_type, name, email, phone, business_location,
			business_info, business_schedule, services_products,
			website_url, seo_needs, desired_features, special_requirements,
			payment_methods, paypal_business_email, stripe_publishable_key,
			stripe_secret_key, other_features, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	var id int
	if err := r.db.QueryRow(ctx, query,
		candidate.ServiceType,
		candidate.Name,
		candidate.Email,
		candidate.Phone,
		candidate.BusinessLocation,
		candidate.BusinessInfo,
		candidate.BusinessSchedule,
		candidate.ServicesProducts,
		candidate.WebsiteURL,
		candidate.SeoNeeds,
		candidate.DesiredFeatures,
		candidate.SpecialRequirements,
		candidate.PaymentMethods,
		candidate.PaypalBusinessEmail,
		candidate.StripePublishableKey,
		candidate.StripeSecretKey,
		candidate.OtherFeatures,
		submittedAt.Format(time.RFC3339),
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("quotes: insert failed: %w", err)
	}

	stored := candidate.clone()
	stored.ID = id
	stored.SubmittedAt = submittedAt
	return stored, nil
}

// List returns all stored submissions ordered by id. Order is an
// implementation detail, not part of the contract.
func (r *PostgresRepository) List(ctx context.Context) ([]*QuoteSubmission, error) {
	query := `
		SELECT id, service_type, name, email, phone, business_location,
		       business_info, business_schedule, services_products,
		       website_url, seo_needs, desired_features, special_requirements,
		       payment_methods, paypal_business_email, stripe_publishable_key,
		       stripe_secret_key, other_features, submitted_at
		FROM quote_submissions
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("quotes: select failed: %w", err)
	}
	defer rows.Close()

	out := []*QuoteSubmission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quotes: select failed: %w", err)
	}
	return out, nil
}

func scanSubmission(row pgx.Row) (*QuoteSubmission, error) {
	var sub QuoteSubmission
	var submittedAt string
	if err := row.Scan(
		&sub.ID,
		&sub.ServiceType,
		&sub.Name,
		&sub.Email,
		&sub.Phone,
		&sub.BusinessLocation,
		&sub.BusinessInfo,
		&sub.BusinessSchedule,
		&sub.ServicesProducts,
		&sub.WebsiteURL,
		&sub.SeoNeeds,
		&sub.DesiredFeatures,
		&sub.SpecialRequirements,
		&sub.PaymentMethods,
		&sub.PaypalBusinessEmail,
		&sub.StripePublishableKey,
		&sub.StripeSecretKey,
		&sub.OtherFeatures,
		&submittedAt,
	); err != nil {
		return nil, fmt.Errorf("quotes: scan failed: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, submittedAt)
	if err != nil {
		return nil, fmt.Errorf("quotes: bad submitted_at %q: %w", submittedAt, err)
	}
	sub.SubmittedAt = ts
	return &sub, nil
}

var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
