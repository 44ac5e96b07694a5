package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies how an account's credentials are verified.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// Account is a registered user. PasswordHash is nil for accounts provisioned
// by a federated provider; such accounts can never be authenticated with the
// local password flow.
type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Provider     Provider  `db:"provider" json:"provider"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Principal is the identity attached to a session. It carries only what the
// API boundary exposes; credential material never enters the session store.
type Principal struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Principal returns the session-facing identity for the account.
func (a *Account) Principal() *Principal {
	return &Principal{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
	}
}
