package http

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sponsorship-portal/internal/api/http/handlers"
	"github.com/spec-kit/sponsorship-portal/internal/auth"
	"github.com/spec-kit/sponsorship-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	VendorAccounts *handlers.AccountsHandler
	InstAccounts   *handlers.AccountsHandler
	Tiers          *handlers.TiersHandler
	Quotes         *handlers.QuotesHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.Middleware
	PublicDir      string
}

// RegisterRoutes wires HTTP routes. The /api paths mirror the portal's
// published surface and must not drift.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	requireVendor := cfg.AuthMiddleware.Require(domain.RoleVendor)
	requireInstitution := cfg.AuthMiddleware.Require(domain.RoleInstitution)

	vendors := app.Group("/api/vendors")
	vendors.Post("/signup", cfg.VendorAccounts.Signup)
	vendors.Post("/signin", cfg.VendorAccounts.Signin)
	vendors.Get("/tiers", requireVendor, cfg.Tiers.Browse)
	vendors.Post("/quotes", requireVendor, cfg.Quotes.Submit)
	vendors.Get("/quotes", requireVendor, cfg.Quotes.ListForVendor)

	institutions := app.Group("/api/institutions")
	institutions.Post("/signup", cfg.InstAccounts.Signup)
	institutions.Post("/signin", cfg.InstAccounts.Signin)
	institutions.Post("/tiers", requireInstitution, cfg.Tiers.Publish)
	institutions.Get("/tiers", requireInstitution, cfg.Tiers.ListOwn)
	institutions.Get("/quotes", requireInstitution, cfg.Quotes.ListForInstitution)
	institutions.Patch("/quotes/:id/status", requireInstitution, cfg.Quotes.SetStatus)

	quotes := app.Group("/api/quotes")
	quotes.Get("/phases", cfg.Catalog.Phases)
	quotes.Get("/tiers", cfg.Catalog.Tiers)

	registerStatic(app, cfg.PublicDir)
}

// registerStatic serves the portal frontend when a public directory exists:
// assets directly, and index.html for any non-API GET (client-side routing).
func registerStatic(app *fiber.App, publicDir string) {
	if publicDir == "" {
		return
	}
	if _, err := os.Stat(publicDir); err != nil {
		return
	}

	app.Static("/", publicDir)
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return fiber.ErrNotFound
		}
		return c.SendFile(publicDir + "/index.html")
	})
}
