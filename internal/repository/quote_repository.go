package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
)

// QuoteRepository encapsulates quote persistence. Listings join the
// counterpart account's display fields; UpdateStatus is scoped to the owning
// institution and reports pgx.ErrNoRows when the quote is missing or owned
// by someone else.
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) error
	ListByVendor(ctx context.Context, vendorID string) ([]domain.QuoteWithCounterpart, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]domain.QuoteWithCounterpart, error)
	UpdateStatus(ctx context.Context, institutionID, quoteID string, status domain.QuoteStatus) (*domain.Quote, error)
}

type quoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository instantiates repository.
func NewQuoteRepository(pool *pgxpool.Pool) QuoteRepository {
	return &quoteRepository{pool: pool}
}

func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	const query = `
        INSERT INTO quotes (vendor_id, institution_id, tier_phase, vendor_amount, institution_expectation, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		quote.VendorID,
		quote.InstitutionID,
		quote.TierPhase,
		quote.VendorAmount,
		quote.InstitutionExpectation,
		quote.Status,
		quote.Notes,
	).Scan(&quote.ID, &quote.CreatedAt, &quote.UpdatedAt)
}

func (r *quoteRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.QuoteWithCounterpart, error) {
	const query = `
        SELECT q.id, q.vendor_id, q.institution_id, q.tier_phase, q.vendor_amount, q.institution_expectation,
               q.status, q.notes, q.created_at, q.updated_at,
               a.id, a.display_name, a.contact_name, a.email
        FROM quotes q
        JOIN accounts a ON a.id = q.institution_id
        WHERE q.vendor_id=$1
        ORDER BY q.created_at DESC`
	return r.list(ctx, query, vendorID)
}

func (r *quoteRepository) ListByInstitution(ctx context.Context, institutionID string) ([]domain.QuoteWithCounterpart, error) {
	const query = `
        SELECT q.id, q.vendor_id, q.institution_id, q.tier_phase, q.vendor_amount, q.institution_expectation,
               q.status, q.notes, q.created_at, q.updated_at,
               a.id, a.display_name, a.contact_name, a.email
        FROM quotes q
        JOIN accounts a ON a.id = q.vendor_id
        WHERE q.institution_id=$1
        ORDER BY q.created_at DESC`
	return r.list(ctx, query, institutionID)
}

func (r *quoteRepository) list(ctx context.Context, query string, arg any) ([]domain.QuoteWithCounterpart, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotesWithCounterpart(rows)
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, institutionID, quoteID string, status domain.QuoteStatus) (*domain.Quote, error) {
	const query = `
        UPDATE quotes SET status=$1, updated_at=NOW()
        WHERE id=$2 AND institution_id=$3
        RETURNING id, vendor_id, institution_id, tier_phase, vendor_amount, institution_expectation, status, notes, created_at, updated_at`

	var quote domain.Quote
	if err := r.pool.QueryRow(ctx, query, status, quoteID, institutionID).Scan(
		&quote.ID,
		&quote.VendorID,
		&quote.InstitutionID,
		&quote.TierPhase,
		&quote.VendorAmount,
		&quote.InstitutionExpectation,
		&quote.Status,
		&quote.Notes,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &quote, nil
}

func scanQuotesWithCounterpart(rows pgx.Rows) ([]domain.QuoteWithCounterpart, error) {
	var result []domain.QuoteWithCounterpart
	for rows.Next() {
		var item domain.QuoteWithCounterpart
		if err := rows.Scan(
			&item.ID,
			&item.VendorID,
			&item.InstitutionID,
			&item.TierPhase,
			&item.VendorAmount,
			&item.InstitutionExpectation,
			&item.Status,
			&item.Notes,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Counterpart.ID,
			&item.Counterpart.DisplayName,
			&item.Counterpart.ContactName,
			&item.Counterpart.Email,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
