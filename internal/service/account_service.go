package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sponsorship-portal/internal/auth"
	"github.com/spec-kit/sponsorship-portal/internal/config"
	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/repository"
	apperrors "github.com/spec-kit/sponsorship-portal/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// RegisterInput carries the signup fields shared by both account kinds.
// DisplayName is the vendor's businessName or the institution's
// institutionName; CompanyURL is only meaningful for vendors.
type RegisterInput struct {
	DisplayName string
	ContactName string
	Email       string
	Password    string
	Phone       string
	CompanyURL  string
}

// AccountService coordinates signup and signin for both account kinds.
type AccountService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(cfg config.AuthConfig, accounts repository.AccountRepository) *AccountService {
	return &AccountService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates an account of the given kind and issues a session token.
// The stored password is always the bcrypt hash, never the plaintext.
func (s *AccountService) Register(ctx context.Context, role domain.Role, input RegisterInput) (*domain.Account, string, time.Time, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	contactName := strings.TrimSpace(input.ContactName)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if displayName == "" || contactName == "" || email == "" || input.Password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Missing required fields", nil)
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", time.Time{}, apperrors.NewValidationError("Password must be at least 6 characters", nil)
	}
	if !emailPattern.MatchString(email) {
		return nil, "", time.Time{}, apperrors.NewValidationError("Invalid email format", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, role, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict(roleLabel(role)+" already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Role:         role,
		DisplayName:  displayName,
		ContactName:  contactName,
		Email:        email,
		PasswordHash: hash,
		Phone:        trimmedOrNil(input.Phone),
	}
	if role == domain.RoleVendor {
		account.CompanyURL = trimmedOrNil(input.CompanyURL)
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// Login authenticates an account of the given kind. A missing account and a
// wrong password produce the same error.
func (s *AccountService) Login(ctx context.Context, role domain.Role, email, password string) (*domain.Account, string, time.Time, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Email and password required", nil)
	}

	account, err := s.accounts.GetByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func roleLabel(role domain.Role) string {
	if role == domain.RoleInstitution {
		return "Institution"
	}
	return "Vendor"
}

func trimmedOrNil(val string) *string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
