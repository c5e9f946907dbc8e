// Package memory provides in-memory repository implementations used by
// tests. Behavior mirrors the Postgres layer, including pgx.ErrNoRows as the
// row-miss sentinel.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
)

// AccountRepository stores accounts in a map keyed by id.
type AccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates an empty store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, role domain.Role, email string) (*domain.Account, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Role == role && account.Email == normalized {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// TierRepository stores tiers keyed by (institution, phase). It holds a
// reference to the account store so the published listing can join display
// fields the way the SQL layer does.
type TierRepository struct {
	mu       sync.Mutex
	tiers    map[string]map[domain.TierPhase]*domain.Tier
	accounts *AccountRepository
}

// NewTierRepository creates an empty store.
func NewTierRepository(accounts *AccountRepository) *TierRepository {
	return &TierRepository{
		tiers:    make(map[string]map[domain.TierPhase]*domain.Tier),
		accounts: accounts,
	}
}

func (r *TierRepository) Upsert(_ context.Context, tier *domain.Tier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byPhase, ok := r.tiers[tier.InstitutionID]
	if !ok {
		byPhase = make(map[domain.TierPhase]*domain.Tier)
		r.tiers[tier.InstitutionID] = byPhase
	}
	now := time.Now()
	if existing, ok := byPhase[tier.Phase]; ok {
		tier.CreatedAt = existing.CreatedAt
	} else {
		tier.CreatedAt = now
	}
	tier.UpdatedAt = now
	copied := *tier
	byPhase[tier.Phase] = &copied
	return nil
}

func (r *TierRepository) GetByPhase(_ context.Context, institutionID string, phase domain.TierPhase) (*domain.Tier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tier, ok := r.tiers[institutionID][phase]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *tier
	return &copied, nil
}

func (r *TierRepository) ListByInstitution(_ context.Context, institutionID string) ([]domain.Tier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedTiers(r.tiers[institutionID]), nil
}

func (r *TierRepository) ListPublished(ctx context.Context) ([]domain.InstitutionTiers, error) {
	r.mu.Lock()
	tiersByInstitution := make(map[string][]domain.Tier, len(r.tiers))
	for id, byPhase := range r.tiers {
		if len(byPhase) == 0 {
			continue
		}
		tiersByInstitution[id] = sortedTiers(byPhase)
	}
	r.mu.Unlock()

	var result []domain.InstitutionTiers
	for id, tiers := range tiersByInstitution {
		account, err := r.accounts.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if account.Role != domain.RoleInstitution {
			continue
		}
		result = append(result, domain.InstitutionTiers{
			InstitutionID:   id,
			InstitutionName: account.DisplayName,
			ContactName:     account.ContactName,
			Tiers:           tiers,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].InstitutionName < result[j].InstitutionName
	})
	return result, nil
}

func sortedTiers(byPhase map[domain.TierPhase]*domain.Tier) []domain.Tier {
	tiers := make([]domain.Tier, 0, len(byPhase))
	for _, tier := range byPhase {
		tiers = append(tiers, *tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Phase < tiers[j].Phase })
	return tiers
}

// QuoteRepository stores quotes in submission order.
type QuoteRepository struct {
	mu       sync.Mutex
	quotes   []*domain.Quote
	accounts *AccountRepository
}

// NewQuoteRepository creates an empty store.
func NewQuoteRepository(accounts *AccountRepository) *QuoteRepository {
	return &QuoteRepository{accounts: accounts}
}

func (r *QuoteRepository) Create(_ context.Context, quote *domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	quote.ID = uuid.NewString()
	quote.CreatedAt = time.Now()
	quote.UpdatedAt = quote.CreatedAt
	copied := *quote
	r.quotes = append(r.quotes, &copied)
	return nil
}

func (r *QuoteRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.QuoteWithCounterpart, error) {
	return r.list(ctx, func(q *domain.Quote) (bool, string) {
		return q.VendorID == vendorID, q.InstitutionID
	})
}

func (r *QuoteRepository) ListByInstitution(ctx context.Context, institutionID string) ([]domain.QuoteWithCounterpart, error) {
	return r.list(ctx, func(q *domain.Quote) (bool, string) {
		return q.InstitutionID == institutionID, q.VendorID
	})
}

func (r *QuoteRepository) list(ctx context.Context, match func(*domain.Quote) (bool, string)) ([]domain.QuoteWithCounterpart, error) {
	r.mu.Lock()
	selected := make([]*domain.Quote, 0, len(r.quotes))
	for _, quote := range r.quotes {
		if ok, _ := match(quote); ok {
			selected = append(selected, quote)
		}
	}
	r.mu.Unlock()

	var result []domain.QuoteWithCounterpart
	// newest first
	for i := len(selected) - 1; i >= 0; i-- {
		quote := selected[i]
		_, counterpartID := match(quote)
		account, err := r.accounts.GetByID(ctx, counterpartID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.QuoteWithCounterpart{
			Quote: *quote,
			Counterpart: domain.Counterpart{
				ID:          account.ID,
				DisplayName: account.DisplayName,
				ContactName: account.ContactName,
				Email:       account.Email,
			},
		})
	}
	return result, nil
}

func (r *QuoteRepository) UpdateStatus(_ context.Context, institutionID, quoteID string, status domain.QuoteStatus) (*domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, quote := range r.quotes {
		if quote.ID == quoteID && quote.InstitutionID == institutionID {
			quote.Status = status
			quote.UpdatedAt = time.Now()
			copied := *quote
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Get returns a stored quote by id, for test assertions.
func (r *QuoteRepository) Get(id string) (*domain.Quote, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, quote := range r.quotes {
		if quote.ID == id {
			copied := *quote
			return &copied, true
		}
	}
	return nil, false
}

// Len reports how many quotes are stored, for test assertions.
func (r *QuoteRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.quotes)
}
