package domain

import (
	"time"
)

// Session binds an opaque client token to a principal for a fixed horizon.
// Only the SHA-256 hash of the token is ever stored; the raw token lives in
// the client cookie and nowhere else.
type Session struct {
	TokenHash string    `json:"-"`
	Principal Principal `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session horizon has elapsed at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
