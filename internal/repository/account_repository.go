package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
)

// AccountRepository defines persistence access for vendor and institution accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, role domain.Role, email string) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (role, display_name, contact_name, email, password_hash, phone, company_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Role,
		account.DisplayName,
		account.ContactName,
		account.Email,
		account.PasswordHash,
		account.Phone,
		account.CompanyURL,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, role, display_name, contact_name, email, password_hash, phone, company_url, created_at, updated_at
        FROM accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, role domain.Role, email string) (*domain.Account, error) {
	const query = `
        SELECT id, role, display_name, contact_name, email, password_hash, phone, company_url, created_at, updated_at
        FROM accounts WHERE role=$1 AND email=$2`
	return r.fetchSingle(ctx, query, role, strings.ToLower(strings.TrimSpace(email)))
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&account.ID,
		&account.Role,
		&account.DisplayName,
		&account.ContactName,
		&account.Email,
		&account.PasswordHash,
		&account.Phone,
		&account.CompanyURL,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
