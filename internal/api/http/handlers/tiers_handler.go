package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sponsorship-portal/internal/api/dto"
	"github.com/spec-kit/sponsorship-portal/internal/auth"
	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/service"
	apperrors "github.com/spec-kit/sponsorship-portal/pkg/util"
)

// TiersHandler manages tier publication and browsing.
type TiersHandler struct {
	tiers *service.TierService
}

// NewTiersHandler constructs handler.
func NewTiersHandler(tierService *service.TierService) *TiersHandler {
	return &TiersHandler{tiers: tierService}
}

// Publish handles POST /api/institutions/tiers.
func (h *TiersHandler) Publish(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	var req dto.PublishTierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	tiers, err := h.tiers.Publish(c.Context(), principal.SubjectID, service.PublishTierInput{
		Phase:       req.Phase,
		AskingPrice: req.AskingPrice,
		Capacity:    req.Capacity,
		Perks:       req.Perks,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"tiers": tierResponses(tiers)})
}

// ListOwn handles GET /api/institutions/tiers.
func (h *TiersHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	name, tiers, err := h.tiers.ListOwn(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"institution": dto.OwnTiersResponse{
		InstitutionName: name,
		Tiers:           tierResponses(tiers),
	}})
}

// Browse handles GET /api/vendors/tiers.
func (h *TiersHandler) Browse(c *fiber.Ctx) error {
	listing, err := h.tiers.ListPublished(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"institutions": listingResponses(listing)})
}

func tierResponses(tiers []domain.Tier) []dto.TierResponse {
	result := make([]dto.TierResponse, 0, len(tiers))
	for _, tier := range tiers {
		result = append(result, dto.TierResponse{
			Phase:       string(tier.Phase),
			AskingPrice: tier.AskingPrice,
			Capacity:    tier.Capacity,
			Perks:       tier.Perks,
			ExpiresAt:   tier.ExpiresAt,
		})
	}
	return result
}

func listingResponses(listing []domain.InstitutionTiers) []dto.InstitutionTiersResponse {
	result := make([]dto.InstitutionTiersResponse, 0, len(listing))
	for _, entry := range listing {
		result = append(result, dto.InstitutionTiersResponse{
			ID:              entry.InstitutionID,
			InstitutionName: entry.InstitutionName,
			ContactName:     entry.ContactName,
			Tiers:           tierResponses(entry.Tiers),
		})
	}
	return result
}
