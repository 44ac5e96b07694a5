package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cinelog/auth-service/internal/domain"
	"github.com/cinelog/auth-service/internal/repository"
	"github.com/cinelog/auth-service/pkg/email"
	"github.com/cinelog/auth-service/pkg/hash"
	"github.com/cinelog/auth-service/pkg/validator"
)

// AuthService is the local credential strategy: signup and email/password
// login against the account store.
type AuthService struct {
	accounts     repository.AccountRepository
	validate     *validator.Validator
	emailService email.EmailService // optional, may be nil
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthService(
	accounts repository.AccountRepository,
	validate *validator.Validator,
	emailService email.EmailService,
) *AuthService {
	return &AuthService{
		accounts:     accounts,
		validate:     validate,
		emailService: emailService,
	}
}

// Signup validates the request, checks for an email/username conflict, hashes
// the password and persists the account. Validation fails before any store
// access. The pre-check only exists for a friendlier message: Create can
// still return domain.ErrConflict when a concurrent signup wins the race, and
// that is surfaced identically.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*domain.Principal, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	existing, err := s.accounts.GetByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &passwordHash,
		Provider:     domain.ProviderLocal,
		CreatedAt:    time.Now(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(ctx, account.Email, account.Username); err != nil {
			log.Printf("[AUTH_SERVICE] Welcome email failed for %s: %v", account.Email, err)
		}
	}

	return account.Principal(), nil
}

// Login authenticates an email/password pair. The failure kinds stay
// distinct here (not-found, no local password, bad password) for logging and
// tests; the API boundary collapses them into one generic message.
//
// An account provisioned by a federated provider has no password hash, and
// is rejected before any comparison: comparing against an absent verifier
// has no guarantee of failing safely.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*domain.Principal, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if account.PasswordHash == nil {
		return nil, domain.ErrNoPassword
	}

	valid, err := hash.VerifyPassword(req.Password, *account.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	return account.Principal(), nil
}
