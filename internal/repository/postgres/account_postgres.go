package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cinelog/auth-service/internal/domain"
	"github.com/cinelog/auth-service/internal/repository"
)

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

type accountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account. A unique violation on email or username is
// reported as domain.ErrConflict, so callers treat a lost check-then-insert
// race the same way as a failed pre-check.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (
			id, username, email, password_hash, provider, created_at
		) VALUES (
			:id, :username, :email, :password_hash, :provider, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, account)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, provider, created_at
		FROM accounts
		WHERE id = $1`

	var account domain.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return &account, nil
}

// GetByEmail retrieves an account by its email address
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, provider, created_at
		FROM accounts
		WHERE email = $1`

	var account domain.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &account, nil
}

// GetByEmailOrUsername retrieves an account matching either the email or the
// username. Used as the signup conflict pre-check.
func (r *accountRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, provider, created_at
		FROM accounts
		WHERE email = $1 OR username = $2
		LIMIT 1`

	var account domain.Account
	err := r.db.GetContext(ctx, &account, query, email, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email or username: %w", err)
	}

	return &account, nil
}
