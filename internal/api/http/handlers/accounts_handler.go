package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sponsorship-portal/internal/api/dto"
	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/service"
	apperrors "github.com/spec-kit/sponsorship-portal/pkg/util"
)

// AccountsHandler exposes signup/signin for one account kind. The same
// handler serves both /api/vendors and /api/institutions, parameterized by
// role; only the display field names differ between the two.
type AccountsHandler struct {
	accounts *service.AccountService
	role     domain.Role
}

// NewAccountsHandler constructs a handler bound to a role.
func NewAccountsHandler(accountService *service.AccountService, role domain.Role) *AccountsHandler {
	return &AccountsHandler{accounts: accountService, role: role}
}

// Signup handles POST /api/{vendors|institutions}/signup.
func (h *AccountsHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	displayName := req.BusinessName
	if h.role == domain.RoleInstitution {
		displayName = req.InstitutionName
	}

	account, token, _, err := h.accounts.Register(c.Context(), h.role, service.RegisterInput{
		DisplayName: displayName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		CompanyURL:  req.CompanyURL,
	})
	if err != nil {
		return err
	}

	// only the vendor signup response carries the email back
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"token":        token,
		string(h.role): accountProfile(account, h.role == domain.RoleVendor),
	})
}

// Signin handles POST /api/{vendors|institutions}/signin.
func (h *AccountsHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	account, token, _, err := h.accounts.Login(c.Context(), h.role, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":        token,
		string(h.role): accountProfile(account, false),
	})
}

// accountProfile renders the role-appropriate display fields.
func accountProfile(account *domain.Account, includeEmail bool) any {
	email := ""
	if includeEmail {
		email = account.Email
	}
	if account.Role == domain.RoleInstitution {
		return dto.InstitutionProfile{
			ID:              account.ID,
			InstitutionName: account.DisplayName,
			ContactName:     account.ContactName,
			Email:           email,
		}
	}
	return dto.VendorProfile{
		ID:           account.ID,
		BusinessName: account.DisplayName,
		ContactName:  account.ContactName,
		Email:        email,
	}
}
