package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
	apperrors "github.com/spec-kit/sponsorship-portal/pkg/util"
)

const principalKey = "auth_principal"

// TokenCookieName is the cookie checked when no Authorization header is sent.
const TokenCookieName = "token"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectID string
	Role      domain.Role
}

// Middleware validates session tokens and attaches the caller identity.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around a token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Require enforces authentication, and when a role is given, that the token
// carries exactly that role. The token is read from the Authorization bearer
// header, falling back to the session cookie.
func (m *Middleware) Require(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return apperrors.NewUnauthorized("Authentication required")
		}

		claims, err := m.tokens.ParseToken(token)
		if err != nil {
			return apperrors.NewUnauthorized("Invalid token")
		}

		if role != "" && claims.Role != role {
			return apperrors.NewForbidden("Forbidden")
		}

		c.Locals(principalKey, &Principal{SubjectID: claims.SubjectID, Role: claims.Role})
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
		return parts[1]
	}
	return c.Cookies(TokenCookieName)
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
