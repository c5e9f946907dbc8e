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

// QuotesHandler manages quote submission, listing and status updates.
type QuotesHandler struct {
	quotes *service.QuoteService
}

// NewQuotesHandler constructs handler.
func NewQuotesHandler(quoteService *service.QuoteService) *QuotesHandler {
	return &QuotesHandler{quotes: quoteService}
}

// Submit handles POST /api/vendors/quotes.
func (h *QuotesHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	var req dto.SubmitQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	quote, err := h.quotes.Submit(c.Context(), principal.SubjectID, service.SubmitQuoteInput{
		InstitutionID: req.InstitutionID,
		TierPhase:     req.TierPhase,
		VendorAmount:  req.VendorAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"quote": quoteResponse(quote)})
}

// ListForVendor handles GET /api/vendors/quotes.
func (h *QuotesHandler) ListForVendor(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	quotes, err := h.quotes.ListForVendor(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"quotes": quoteListResponses(quotes, domain.RoleInstitution)})
}

// ListForInstitution handles GET /api/institutions/quotes.
func (h *QuotesHandler) ListForInstitution(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	quotes, err := h.quotes.ListForInstitution(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"quotes": quoteListResponses(quotes, domain.RoleVendor)})
}

// SetStatus handles PATCH /api/institutions/quotes/:id/status.
func (h *QuotesHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	var req dto.SetQuoteStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	quote, err := h.quotes.SetStatus(c.Context(), principal.SubjectID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"quote": quoteResponse(quote)})
}

func quoteResponse(quote *domain.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:                     quote.ID,
		TierPhase:              string(quote.TierPhase),
		VendorAmount:           quote.VendorAmount,
		InstitutionExpectation: quote.InstitutionExpectation,
		Status:                 string(quote.Status),
		Notes:                  quote.Notes,
		CreatedAt:              quote.CreatedAt,
		UpdatedAt:              quote.UpdatedAt,
	}
}

// quoteListResponses attaches the counterpart profile under the key matching
// its role: institutions for vendor listings, vendors for institution ones.
func quoteListResponses(quotes []domain.QuoteWithCounterpart, counterpartRole domain.Role) []dto.QuoteResponse {
	result := make([]dto.QuoteResponse, 0, len(quotes))
	for _, item := range quotes {
		resp := quoteResponse(&item.Quote)
		if counterpartRole == domain.RoleInstitution {
			resp.Institution = &dto.InstitutionProfile{
				ID:              item.Counterpart.ID,
				InstitutionName: item.Counterpart.DisplayName,
				ContactName:     item.Counterpart.ContactName,
				Email:           item.Counterpart.Email,
			}
		} else {
			resp.Vendor = &dto.VendorProfile{
				ID:           item.Counterpart.ID,
				BusinessName: item.Counterpart.DisplayName,
				ContactName:  item.Counterpart.ContactName,
				Email:        item.Counterpart.Email,
			}
		}
		result = append(result, resp)
	}
	return result
}
