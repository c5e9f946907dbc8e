package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/repository/memory"
	"github.com/spec-kit/sponsorship-portal/internal/service"
)

type fakeListingCache struct {
	mu          sync.Mutex
	payload     []byte
	sets        int
	invalidates int
}

func (c *fakeListingCache) Get(context.Context) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payload == nil {
		return nil, false
	}
	return c.payload, true
}

func (c *fakeListingCache) Set(_ context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = payload
	c.sets++
	return nil
}

func (c *fakeListingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
	c.invalidates++
	return nil
}

func newTierFixture(t *testing.T) (*service.TierService, *memory.AccountRepository, *domain.Account, *fakeListingCache) {
	t.Helper()
	accounts := memory.NewAccountRepository()
	tiers := memory.NewTierRepository(accounts)
	cache := &fakeListingCache{}
	svc := service.NewTierService(tiers, accounts, cache)

	institution := &domain.Account{
		Role:         domain.RoleInstitution,
		DisplayName:  "Acme U",
		ContactName:  "Jo",
		Email:        "jo@acme.edu",
		PasswordHash: "hash",
	}
	require.NoError(t, accounts.Create(context.Background(), institution))
	return svc, accounts, institution, cache
}

func price(v float64) *float64 { return &v }
func capacity(v int) *int      { return &v }

func TestPublishDefaultsCapacity(t *testing.T) {
	svc, _, institution, _ := newTierFixture(t)

	tiers, err := svc.Publish(context.Background(), institution.ID, service.PublishTierInput{
		Phase:       "gold",
		AskingPrice: price(500),
	})
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, domain.PhaseGold, tiers[0].Phase)
	assert.Equal(t, 500.0, tiers[0].AskingPrice)
	assert.Equal(t, 1, tiers[0].Capacity)
}

func TestPublishSamePhaseReplaces(t *testing.T) {
	svc, _, institution, _ := newTierFixture(t)
	ctx := context.Background()

	_, err := svc.Publish(ctx, institution.ID, service.PublishTierInput{
		Phase:       "gold",
		AskingPrice: price(500),
		Perks:       "banner placement",
	})
	require.NoError(t, err)

	tiers, err := svc.Publish(ctx, institution.ID, service.PublishTierInput{
		Phase:       "GOLD ",
		AskingPrice: price(750),
		Capacity:    capacity(5),
	})
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, domain.PhaseGold, tiers[0].Phase)
	assert.Equal(t, 750.0, tiers[0].AskingPrice)
	assert.Equal(t, 5, tiers[0].Capacity)
	assert.Nil(t, tiers[0].Perks)
}

func TestPublishValidation(t *testing.T) {
	svc, _, institution, _ := newTierFixture(t)
	ctx := context.Background()

	_, err := svc.Publish(ctx, institution.ID, service.PublishTierInput{Phase: "gold"})
	require.Error(t, err)
	assert.Equal(t, "Phase and asking price required", err.Error())

	_, err = svc.Publish(ctx, institution.ID, service.PublishTierInput{Phase: "bronze", AskingPrice: price(100)})
	require.Error(t, err)
	assert.Equal(t, "Invalid phase. Must be gold, silver, or platinum", err.Error())

	_, err = svc.Publish(ctx, institution.ID, service.PublishTierInput{Phase: "gold", AskingPrice: price(-1)})
	require.Error(t, err)
	assert.Equal(t, "Price must be positive", err.Error())

	_, err = svc.Publish(ctx, institution.ID, service.PublishTierInput{Phase: "gold", AskingPrice: price(100), Capacity: capacity(0)})
	require.Error(t, err)
	assert.Equal(t, "Capacity must be between 1 and 1000", err.Error())

	_, err = svc.Publish(ctx, institution.ID, service.PublishTierInput{Phase: "gold", AskingPrice: price(100), Capacity: capacity(1001)})
	require.Error(t, err)
	assert.Equal(t, "Capacity must be between 1 and 1000", err.Error())
}

func TestPublishUnknownInstitution(t *testing.T) {
	svc, _, _, _ := newTierFixture(t)

	_, err := svc.Publish(context.Background(), "missing-id", service.PublishTierInput{
		Phase:       "gold",
		AskingPrice: price(100),
	})
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(err))
}

func TestListPublishedSkipsEmptyInstitutions(t *testing.T) {
	svc, accounts, institution, _ := newTierFixture(t)
	ctx := context.Background()

	quiet := &domain.Account{
		Role:         domain.RoleInstitution,
		DisplayName:  "Quiet College",
		ContactName:  "Pat",
		Email:        "pat@quiet.edu",
		PasswordHash: "hash",
	}
	require.NoError(t, accounts.Create(ctx, quiet))

	_, err := svc.Publish(ctx, institution.ID, service.PublishTierInput{Phase: "silver", AskingPrice: price(250)})
	require.NoError(t, err)

	listing, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "Acme U", listing[0].InstitutionName)
	assert.Equal(t, "Jo", listing[0].ContactName)
	require.Len(t, listing[0].Tiers, 1)
	assert.Equal(t, domain.PhaseSilver, listing[0].Tiers[0].Phase)
}

func TestListPublishedUsesCache(t *testing.T) {
	svc, _, institution, cache := newTierFixture(t)
	ctx := context.Background()

	_, err := svc.Publish(ctx, institution.ID, service.PublishTierInput{Phase: "gold", AskingPrice: price(500)})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidates)

	_, err = svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// warm read does not rewrite the cache
	_, err = svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}
