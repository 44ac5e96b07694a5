package repository

import (
	"context"

	"github.com/cinelog/auth-service/internal/domain"
)

// SessionRepository stores sessions keyed by token hash. Get returns
// (nil, nil) when no live session exists for the hash; absence of a session
// is a normal state, not an error. Delete is idempotent but must report
// store failures so a caller never believes a revoke succeeded while the
// session remains live server-side.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, tokenHash string) (*domain.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}
