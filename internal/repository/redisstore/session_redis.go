package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinelog/auth-service/internal/domain"
	"github.com/cinelog/auth-service/internal/repository"
)

type sessionRepository struct {
	redis *redis.Client
}

// NewSessionRepository creates a Redis-backed session repository. Sessions
// are stored under their token hash with a TTL matching the session horizon,
// so expiry needs no sweep. Redis serializes mutations on a single key, which
// gives validate-after-revoke its required ordering.
func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &sessionRepository{redis: client}
}

func sessionKey(tokenHash string) string {
	return fmt.Sprintf("session:%s", tokenHash)
}

// Create stores the session with a TTL equal to its remaining lifetime.
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refusing to store already-expired session")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.redis.Set(ctx, sessionKey(session.TokenHash), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Get returns the stored session, or (nil, nil) when none exists.
func (r *sessionRepository) Get(ctx context.Context, tokenHash string) (*domain.Session, error) {
	payload, err := r.redis.Get(ctx, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	session.TokenHash = tokenHash

	return &session, nil
}

// Delete removes the session. Deleting an absent session is not an error,
// but a store failure is returned to the caller.
func (r *sessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := r.redis.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
