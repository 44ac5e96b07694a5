package service

import (
	"context"

	"github.com/cinelog/auth-service/internal/domain"
)

type AttemptKind string

const (
	AttemptLocal     AttemptKind = "local"
	AttemptFederated AttemptKind = "federated"
)

// Attempt carries one authentication attempt: either local credentials or a
// federated authorization code. It is transient and never persisted.
type Attempt struct {
	Kind        AttemptKind
	Credentials *LoginRequest
	Code        string
}

type localStrategy interface {
	Login(ctx context.Context, req LoginRequest) (*domain.Principal, error)
}

type federatedStrategy interface {
	Authenticate(ctx context.Context, code string) (*domain.Principal, error)
}

// Resolver dispatches an authentication attempt to the strategy matching its
// kind and returns the canonical principal. It holds no state and never
// touches storage itself; strategy errors pass through unchanged.
type Resolver struct {
	local     localStrategy
	federated federatedStrategy
}

func NewResolver(local localStrategy, federated federatedStrategy) *Resolver {
	return &Resolver{
		local:     local,
		federated: federated,
	}
}

func (r *Resolver) Authenticate(ctx context.Context, attempt Attempt) (*domain.Principal, error) {
	switch attempt.Kind {
	case AttemptLocal:
		if attempt.Credentials == nil {
			return nil, domain.NewValidationError("credentials are required")
		}
		return r.local.Login(ctx, *attempt.Credentials)
	case AttemptFederated:
		if attempt.Code == "" {
			return nil, domain.NewValidationError("authorization code is required")
		}
		return r.federated.Authenticate(ctx, attempt.Code)
	default:
		return nil, domain.NewValidationError("unsupported authentication kind")
	}
}
