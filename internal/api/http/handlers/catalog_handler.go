package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sponsorship-portal/internal/api/dto"
	"github.com/spec-kit/sponsorship-portal/internal/service"
)

// phaseCatalog is the static marketing copy for the public phase listing.
var phaseCatalog = []dto.PhaseDescription{
	{Phase: "gold", Description: "Premium visibility and co-branding"},
	{Phase: "silver", Description: "Enhanced placement and campus activations"},
	{Phase: "platinum", Description: "Exclusive coverage with headline status"},
}

// CatalogHandler serves the unauthenticated quote catalog endpoints.
type CatalogHandler struct {
	tiers *service.TierService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(tierService *service.TierService) *CatalogHandler {
	return &CatalogHandler{tiers: tierService}
}

// Phases handles GET /api/quotes/phases.
func (h *CatalogHandler) Phases(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"phases": phaseCatalog})
}

// Tiers handles GET /api/quotes/tiers.
func (h *CatalogHandler) Tiers(c *fiber.Ctx) error {
	listing, err := h.tiers.ListPublished(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tiers": listingResponses(listing)})
}
