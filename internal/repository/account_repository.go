package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cinelog/auth-service/internal/domain"
)

// AccountRepository is the credential store. Create must surface a unique
// constraint violation as domain.ErrConflict: signup pre-checks are advisory
// and the database constraint is the authoritative guard against concurrent
// identical signups.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.Account, error)
}
