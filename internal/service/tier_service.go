package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/repository"
	apperrors "github.com/spec-kit/sponsorship-portal/pkg/util"
)

// ListingCache caches the serialized published-tier listing. Implementations
// treat misses and backend failures the same way: read through.
type ListingCache interface {
	Get(ctx context.Context) ([]byte, bool)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// PublishTierInput carries a tier publication request. Pointer fields
// distinguish "absent" from zero values.
type PublishTierInput struct {
	Phase       string
	AskingPrice *float64
	Capacity    *int
	Perks       string
	ExpiresAt   *time.Time
}

// TierService manages each institution's tier catalog and the public listing.
type TierService struct {
	tiers    repository.TierRepository
	accounts repository.AccountRepository
	cache    ListingCache
}

// NewTierService builds the service. cache may be nil.
func NewTierService(tiers repository.TierRepository, accounts repository.AccountRepository, cache ListingCache) *TierService {
	return &TierService{tiers: tiers, accounts: accounts, cache: cache}
}

// Publish validates and upserts a tier keyed on (institution, phase), then
// returns the institution's full tier set. Publishing a phase twice replaces
// the earlier tier.
func (s *TierService) Publish(ctx context.Context, institutionID string, input PublishTierInput) ([]domain.Tier, error) {
	phase := domain.TierPhase(strings.ToLower(strings.TrimSpace(input.Phase)))
	if phase == "" || input.AskingPrice == nil {
		return nil, apperrors.NewValidationError("Phase and asking price required", nil)
	}
	if !phase.Valid() {
		return nil, apperrors.NewValidationError("Invalid phase. Must be gold, silver, or platinum", nil)
	}
	if *input.AskingPrice < 0 {
		return nil, apperrors.NewValidationError("Price must be positive", nil)
	}
	capacity := 1
	if input.Capacity != nil {
		if *input.Capacity < 1 || *input.Capacity > 1000 {
			return nil, apperrors.NewValidationError("Capacity must be between 1 and 1000", nil)
		}
		capacity = *input.Capacity
	}

	if _, err := s.accounts.GetByID(ctx, institutionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Institution", nil)
		}
		return nil, err
	}

	tier := &domain.Tier{
		InstitutionID: institutionID,
		Phase:         phase,
		AskingPrice:   *input.AskingPrice,
		Capacity:      capacity,
		Perks:         trimmedOrNil(input.Perks),
		ExpiresAt:     input.ExpiresAt,
	}
	if err := s.tiers.Upsert(ctx, tier); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	return s.tiers.ListByInstitution(ctx, institutionID)
}

// ListOwn returns the institution's own tiers with its display name.
func (s *TierService) ListOwn(ctx context.Context, institutionID string) (string, []domain.Tier, error) {
	account, err := s.accounts.GetByID(ctx, institutionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.NewNotFound("Institution", nil)
		}
		return "", nil, err
	}
	tiers, err := s.tiers.ListByInstitution(ctx, institutionID)
	if err != nil {
		return "", nil, err
	}
	return account.DisplayName, tiers, nil
}

// ListPublished returns every institution with at least one tier, serving
// from the cache when warm.
func (s *TierService) ListPublished(ctx context.Context) ([]domain.InstitutionTiers, error) {
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx); ok {
			var cached []domain.InstitutionTiers
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	listing, err := s.tiers.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(listing); err == nil {
			_ = s.cache.Set(ctx, payload)
		}
	}
	return listing, nil
}
