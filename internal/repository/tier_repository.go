package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
)

// TierRepository encapsulates tier persistence. An institution holds at most
// one tier per phase; Upsert replaces the existing row on conflict.
type TierRepository interface {
	Upsert(ctx context.Context, tier *domain.Tier) error
	GetByPhase(ctx context.Context, institutionID string, phase domain.TierPhase) (*domain.Tier, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]domain.Tier, error)
	ListPublished(ctx context.Context) ([]domain.InstitutionTiers, error)
}

type tierRepository struct {
	pool *pgxpool.Pool
}

// NewTierRepository instantiates repository.
func NewTierRepository(pool *pgxpool.Pool) TierRepository {
	return &tierRepository{pool: pool}
}

func (r *tierRepository) Upsert(ctx context.Context, tier *domain.Tier) error {
	const query = `
        INSERT INTO tiers (institution_id, phase, asking_price, capacity, perks, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (institution_id, phase) DO UPDATE SET
            asking_price=EXCLUDED.asking_price,
            capacity=EXCLUDED.capacity,
            perks=EXCLUDED.perks,
            expires_at=EXCLUDED.expires_at,
            updated_at=NOW()
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		tier.InstitutionID,
		tier.Phase,
		tier.AskingPrice,
		tier.Capacity,
		tier.Perks,
		tier.ExpiresAt,
	).Scan(&tier.CreatedAt, &tier.UpdatedAt)
}

func (r *tierRepository) GetByPhase(ctx context.Context, institutionID string, phase domain.TierPhase) (*domain.Tier, error) {
	const query = `
        SELECT institution_id, phase, asking_price, capacity, perks, expires_at, created_at, updated_at
        FROM tiers WHERE institution_id=$1 AND phase=$2`

	var tier domain.Tier
	if err := r.pool.QueryRow(ctx, query, institutionID, phase).Scan(
		&tier.InstitutionID,
		&tier.Phase,
		&tier.AskingPrice,
		&tier.Capacity,
		&tier.Perks,
		&tier.ExpiresAt,
		&tier.CreatedAt,
		&tier.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *tierRepository) ListByInstitution(ctx context.Context, institutionID string) ([]domain.Tier, error) {
	const query = `
        SELECT institution_id, phase, asking_price, capacity, perks, expires_at, created_at, updated_at
        FROM tiers WHERE institution_id=$1
        ORDER BY phase`

	rows, err := r.pool.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTiers(rows)
}

func (r *tierRepository) ListPublished(ctx context.Context) ([]domain.InstitutionTiers, error) {
	const query = `
        SELECT a.id, a.display_name, a.contact_name,
               t.institution_id, t.phase, t.asking_price, t.capacity, t.perks, t.expires_at, t.created_at, t.updated_at
        FROM accounts a
        JOIN tiers t ON t.institution_id = a.id
        WHERE a.role='institution'
        ORDER BY a.display_name, t.phase`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InstitutionTiers
	index := map[string]int{}
	for rows.Next() {
		var (
			id, name, contact string
			tier              domain.Tier
		)
		if err := rows.Scan(
			&id,
			&name,
			&contact,
			&tier.InstitutionID,
			&tier.Phase,
			&tier.AskingPrice,
			&tier.Capacity,
			&tier.Perks,
			&tier.ExpiresAt,
			&tier.CreatedAt,
			&tier.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pos, ok := index[id]
		if !ok {
			pos = len(result)
			index[id] = pos
			result = append(result, domain.InstitutionTiers{
				InstitutionID:   id,
				InstitutionName: name,
				ContactName:     contact,
			})
		}
		result[pos].Tiers = append(result[pos].Tiers, tier)
	}
	return result, rows.Err()
}

func scanTiers(rows pgx.Rows) ([]domain.Tier, error) {
	var result []domain.Tier
	for rows.Next() {
		var tier domain.Tier
		if err := rows.Scan(
			&tier.InstitutionID,
			&tier.Phase,
			&tier.AskingPrice,
			&tier.Capacity,
			&tier.Perks,
			&tier.ExpiresAt,
			&tier.CreatedAt,
			&tier.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tier)
	}
	return result, rows.Err()
}
