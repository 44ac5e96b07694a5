package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cinelog/auth-service/internal/domain"
	"github.com/cinelog/auth-service/internal/repository"
)

// sessionTokenLength is the size of the raw token in bytes (256 bits).
const sessionTokenLength = 32

// SessionService manages the session lifecycle. It hands the caller an
// opaque, unguessable token and stores only the token's hash, bound to a
// principal and a fixed expiry horizon.
type SessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(sessions repository.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a fresh token for the principal and records the binding.
// Only the minimal principal enters the session payload, never the account
// row or its verifier.
func (s *SessionService) Create(ctx context.Context, principal *domain.Principal) (string, error) {
	token, err := generateToken(sessionTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now()
	session := &domain.Session{
		TokenHash: hashToken(token),
		Principal: *principal,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

// Validate resolves the token to its principal. A missing, expired or
// revoked session yields (nil, nil): absence of a session is a normal state.
// Only store failures are errors.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	// The store's TTL normally handles expiry; the check here keeps the
	// contract independent of the backing store.
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, session.TokenHash)
		return nil, nil
	}

	principal := session.Principal
	return &principal, nil
}

// Revoke removes the binding for the token. Revoking an absent session is a
// no-op, but a store failure is returned so the caller can refuse to clear
// the client-side credential on a half-completed logout.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, hashToken(token))
}

// generateToken returns a cryptographically random, URL-safe token.
func generateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// hashToken creates the SHA-256 hash under which a session is stored.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
