package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/events"
	"github.com/spec-kit/sponsorship-portal/internal/repository"
	apperrors "github.com/spec-kit/sponsorship-portal/pkg/util"
)

// SubmitQuoteInput carries a vendor's quote submission.
type SubmitQuoteInput struct {
	InstitutionID string
	TierPhase     string
	VendorAmount  *float64
	Notes         string
}

// QuoteService records quote proposals and drives their status lifecycle.
type QuoteService struct {
	quotes     repository.QuoteRepository
	tiers      repository.TierRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
}

// NewQuoteService builds the service. dispatcher may be nil.
func NewQuoteService(quotes repository.QuoteRepository, tiers repository.TierRepository, accounts repository.AccountRepository, dispatcher events.Dispatcher) *QuoteService {
	return &QuoteService{quotes: quotes, tiers: tiers, accounts: accounts, dispatcher: dispatcher}
}

// Submit creates a pending quote against an institution's active tier. The
// institution's asking price is snapshotted at submission time; later tier
// edits do not touch existing quotes.
func (s *QuoteService) Submit(ctx context.Context, vendorID string, input SubmitQuoteInput) (*domain.Quote, error) {
	if input.InstitutionID == "" || strings.TrimSpace(input.TierPhase) == "" || input.VendorAmount == nil {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}
	if *input.VendorAmount < 0 {
		return nil, apperrors.NewValidationError("Amount must be positive", nil)
	}

	institution, err := s.accounts.GetByID(ctx, input.InstitutionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Institution", nil)
		}
		return nil, err
	}
	if institution.Role != domain.RoleInstitution {
		return nil, apperrors.NewNotFound("Institution", nil)
	}

	phase := domain.TierPhase(strings.ToLower(strings.TrimSpace(input.TierPhase)))
	tier, err := s.tiers.GetByPhase(ctx, institution.ID, phase)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Tier unavailable", nil)
		}
		return nil, err
	}

	quote := &domain.Quote{
		VendorID:               vendorID,
		InstitutionID:          institution.ID,
		TierPhase:              tier.Phase,
		VendorAmount:           *input.VendorAmount,
		InstitutionExpectation: tier.AskingPrice,
		Status:                 domain.QuoteStatusPending,
		Notes:                  trimmedOrNil(input.Notes),
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventQuoteSubmitted,
		QuoteID:   quote.ID,
		Actor:     events.Actor{Role: domain.RoleVendor, AccountID: vendorID},
		Timestamp: time.Now(),
		Payload: events.QuoteSubmittedPayload{
			InstitutionID:          institution.ID,
			TierPhase:              quote.TierPhase,
			VendorAmount:           quote.VendorAmount,
			InstitutionExpectation: quote.InstitutionExpectation,
		},
	})
	return quote, nil
}

// ListForVendor returns the vendor's quotes, newest first, with institution
// display fields joined in.
func (s *QuoteService) ListForVendor(ctx context.Context, vendorID string) ([]domain.QuoteWithCounterpart, error) {
	return s.quotes.ListByVendor(ctx, vendorID)
}

// ListForInstitution returns the institution's quotes, newest first, with
// vendor display fields joined in.
func (s *QuoteService) ListForInstitution(ctx context.Context, institutionID string) ([]domain.QuoteWithCounterpart, error) {
	return s.quotes.ListByInstitution(ctx, institutionID)
}

// SetStatus overwrites a quote's status. Any state may follow any other; the
// quote must belong to the calling institution.
func (s *QuoteService) SetStatus(ctx context.Context, institutionID, quoteID string, status string) (*domain.Quote, error) {
	next := domain.QuoteStatus(status)
	if !next.Valid() {
		return nil, apperrors.NewValidationError("Invalid status. Must be pending, accepted, or rejected", nil)
	}

	quote, err := s.quotes.UpdateStatus(ctx, institutionID, quoteID, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Quote", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventQuoteStatusChanged,
		QuoteID:   quote.ID,
		Actor:     events.Actor{Role: domain.RoleInstitution, AccountID: institutionID},
		Timestamp: time.Now(),
		Payload: events.QuoteStatusChangedPayload{
			VendorID:  quote.VendorID,
			NewStatus: quote.Status,
		},
	})
	return quote, nil
}

func (s *QuoteService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
