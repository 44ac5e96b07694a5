package domain

import "errors"

// Authentication error taxonomy. Strategies produce these; the API boundary
// is the only layer that translates them into transport status codes, and it
// collapses ErrNotFound / ErrInvalidCredentials / ErrNoPassword into a single
// generic message so callers cannot enumerate accounts.
var (
	ErrConflict           = errors.New("username or email already taken")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoPassword         = errors.New("account has no local password")
	ErrProvider           = errors.New("identity provider exchange failed")
)

// ValidationError carries a specific, user-facing message about malformed
// input. Unlike store errors, its message is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
