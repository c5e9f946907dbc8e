package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/sponsorship-portal/internal/api/http"
	"github.com/spec-kit/sponsorship-portal/internal/api/http/handlers"
	"github.com/spec-kit/sponsorship-portal/internal/auth"
	"github.com/spec-kit/sponsorship-portal/internal/config"
	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/events"
	"github.com/spec-kit/sponsorship-portal/internal/observability"
	"github.com/spec-kit/sponsorship-portal/internal/persistence"
	"github.com/spec-kit/sponsorship-portal/internal/repository/memory"
	"github.com/spec-kit/sponsorship-portal/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()

	accounts := memory.NewAccountRepository()
	tiers := memory.NewTierRepository(accounts)
	quotes := memory.NewQuoteRepository(accounts)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	accountService := service.NewAccountService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	}, accounts)
	tierService := service.NewTierService(tiers, accounts, nil)
	quoteService := service.NewQuoteService(quotes, tiers, accounts, dispatcher)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		VendorAccounts: handlers.NewAccountsHandler(accountService, domain.RoleVendor),
		InstAccounts:   handlers.NewAccountsHandler(accountService, domain.RoleInstitution),
		Tiers:          handlers.NewTiersHandler(tierService),
		Quotes:         handlers.NewQuotesHandler(quoteService),
		Catalog:        handlers.NewCatalogHandler(tierService),
		AuthMiddleware: auth.NewMiddleware(accountService.TokenManager()),
	})
	return app, metrics
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestNegotiationScenario(t *testing.T) {
	app, _ := newTestApp(t)

	// institution signs up
	status, body := doJSON(t, app, http.MethodPost, "/api/institutions/signup", "", map[string]any{
		"institutionName": "Acme U",
		"contactName":     "Jo",
		"email":           "jo@acme.edu",
		"password":        "secret1",
	})
	require.Equal(t, http.StatusCreated, status)
	instToken := body["token"].(string)
	require.NotEmpty(t, instToken)
	institution := body["institution"].(map[string]any)
	institutionID := institution["id"].(string)
	assert.Equal(t, "Acme U", institution["institutionName"])
	_, leaked := institution["email"]
	assert.False(t, leaked, "institution signup response must not echo the email")

	// institution publishes a gold tier
	status, body = doJSON(t, app, http.MethodPost, "/api/institutions/tiers", instToken, map[string]any{
		"phase":       "gold",
		"askingPrice": 500,
	})
	require.Equal(t, http.StatusCreated, status)
	tiers := body["tiers"].([]any)
	require.Len(t, tiers, 1)
	gold := tiers[0].(map[string]any)
	assert.Equal(t, "gold", gold["phase"])
	assert.Equal(t, 500.0, gold["askingPrice"])

	// vendor signs up and browses
	status, body = doJSON(t, app, http.MethodPost, "/api/vendors/signup", "", map[string]any{
		"businessName": "Campus Snacks",
		"contactName":  "Sam",
		"email":        "sam@snacks.io",
		"password":     "secret1",
	})
	require.Equal(t, http.StatusCreated, status)
	vendorToken := body["token"].(string)
	assert.Equal(t, "sam@snacks.io", body["vendor"].(map[string]any)["email"])

	status, body = doJSON(t, app, http.MethodGet, "/api/vendors/tiers", vendorToken, nil)
	require.Equal(t, http.StatusOK, status)
	institutions := body["institutions"].([]any)
	require.Len(t, institutions, 1)
	assert.Equal(t, "Acme U", institutions[0].(map[string]any)["institutionName"])

	// vendor submits a quote
	status, body = doJSON(t, app, http.MethodPost, "/api/vendors/quotes", vendorToken, map[string]any{
		"institutionId": institutionID,
		"tierPhase":     "gold",
		"vendorAmount":  450,
	})
	require.Equal(t, http.StatusCreated, status)
	quote := body["quote"].(map[string]any)
	quoteID := quote["id"].(string)
	assert.Equal(t, "pending", quote["status"])
	assert.Equal(t, 500.0, quote["institutionExpectation"])

	// institution reviews and accepts
	status, body = doJSON(t, app, http.MethodGet, "/api/institutions/quotes", instToken, nil)
	require.Equal(t, http.StatusOK, status)
	quotes := body["quotes"].([]any)
	require.Len(t, quotes, 1)
	vendorSide := quotes[0].(map[string]any)["vendor"].(map[string]any)
	assert.Equal(t, "Campus Snacks", vendorSide["businessName"])

	status, body = doJSON(t, app, http.MethodPatch, "/api/institutions/quotes/"+quoteID+"/status", instToken, map[string]any{
		"status": "accepted",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "accepted", body["quote"].(map[string]any)["status"])

	// vendor sees the accepted quote with institution display fields
	status, body = doJSON(t, app, http.MethodGet, "/api/vendors/quotes", vendorToken, nil)
	require.Equal(t, http.StatusOK, status)
	quotes = body["quotes"].([]any)
	require.Len(t, quotes, 1)
	assert.Equal(t, "accepted", quotes[0].(map[string]any)["status"])
	instSide := quotes[0].(map[string]any)["institution"].(map[string]any)
	assert.Equal(t, "Acme U", instSide["institutionName"])
}

func TestAuthorizationGate(t *testing.T) {
	app, _ := newTestApp(t)

	// no token
	status, body := doJSON(t, app, http.MethodGet, "/api/vendors/quotes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication required", body["error"])

	// garbage token
	status, body = doJSON(t, app, http.MethodGet, "/api/vendors/quotes", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["error"])

	// vendor token on an institution endpoint
	status, signupBody := doJSON(t, app, http.MethodPost, "/api/vendors/signup", "", map[string]any{
		"businessName": "Campus Snacks",
		"contactName":  "Sam",
		"email":        "sam@snacks.io",
		"password":     "secret1",
	})
	require.Equal(t, http.StatusCreated, status)
	vendorToken := signupBody["token"].(string)

	status, body = doJSON(t, app, http.MethodGet, "/api/institutions/tiers", vendorToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden", body["error"])
}

func TestRequestMetricsRecordFinalStatus(t *testing.T) {
	app, metrics := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/vendors/quotes", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	assert.Equal(t, int64(1), metrics.RequestCount("/api/vendors/quotes", http.MethodGet, http.StatusUnauthorized))
	assert.Zero(t, metrics.RequestCount("/api/vendors/quotes", http.MethodGet, http.StatusOK))
}

func TestCookieFallbackAuth(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/vendors/signup", "", map[string]any{
		"businessName": "Campus Snacks",
		"contactName":  "Sam",
		"email":        "sam@snacks.io",
		"password":     "secret1",
	})
	require.Equal(t, http.StatusCreated, status)
	token := body["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/vendors/quotes", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/quotes/phases", "", nil)
	require.Equal(t, http.StatusOK, status)
	phases := body["phases"].([]any)
	require.Len(t, phases, 3)
	assert.Equal(t, "gold", phases[0].(map[string]any)["phase"])

	status, body = doJSON(t, app, http.MethodGet, "/api/quotes/tiers", "", nil)
	require.Equal(t, http.StatusOK, status)
	_, hasTiers := body["tiers"]
	assert.True(t, hasTiers)
}

func TestSignupValidationAndConflictOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/vendors/signup", "", map[string]any{
		"businessName": "Campus Snacks",
		"contactName":  "Sam",
		"email":        "sam@snacks.io",
		"password":     "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Password must be at least 6 characters", body["error"])

	payload := map[string]any{
		"businessName": "Campus Snacks",
		"contactName":  "Sam",
		"email":        "sam@snacks.io",
		"password":     "secret1",
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/vendors/signup", "", payload)
	require.Equal(t, http.StatusCreated, status)

	payload["email"] = "SAM@snacks.io"
	status, body = doJSON(t, app, http.MethodPost, "/api/vendors/signup", "", payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Vendor already exists", body["error"])
}
