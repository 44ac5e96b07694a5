package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/cinelog/auth-service/internal/config"
	"github.com/cinelog/auth-service/internal/domain"
	"github.com/cinelog/auth-service/internal/repository"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

	// stateExpiry bounds the window between issuing the consent redirect and
	// receiving the provider callback.
	stateExpiry = 10 * time.Minute
)

// GoogleService is the federated identity strategy. It exchanges a Google
// authorization code for a verified email and resolves that email to an
// account, provisioning one on first sight.
type GoogleService struct {
	accounts    repository.AccountRepository
	oauth       *oauth2.Config
	stateSecret []byte
	userInfoURL string
}

func NewGoogleService(accounts repository.AccountRepository, cfg config.GoogleConfig) *GoogleService {
	return &GoogleService{
		accounts: accounts,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		stateSecret: []byte(cfg.StateSecret),
		userInfoURL: googleUserInfoURL,
	}
}

// Enabled reports whether Google login has been configured.
func (s *GoogleService) Enabled() bool {
	return s.oauth.ClientID != ""
}

// AuthCodeURL builds the provider consent URL carrying the signed state.
func (s *GoogleService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// IssueState signs a short-lived state parameter binding the callback to a
// redirect this service actually issued.
func (s *GoogleService) IssueState() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateExpiry)),
	}

	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.stateSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}
	return state, nil
}

// VerifyState checks the signature and expiry of a callback state parameter.
func (s *GoogleService) VerifyState(state string) error {
	_, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.stateSecret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalid state parameter", domain.ErrProvider)
	}
	return nil
}

type googleProfile struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Authenticate exchanges the authorization code, fetches the Google profile
// and resolves it to a principal. An unseen email provisions an account with
// the email as username and no password hash; a local account with the same
// email resolves to that account, never a duplicate.
func (s *GoogleService) Authenticate(ctx context.Context, code string) (*domain.Principal, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %v", domain.ErrProvider, err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	if profile.Email == "" || !profile.EmailVerified {
		return nil, fmt.Errorf("%w: no verified email in profile", domain.ErrProvider)
	}

	account, err := s.accounts.GetByEmail(ctx, profile.Email)
	if errors.Is(err, domain.ErrNotFound) {
		account, err = s.provision(ctx, profile.Email)
	}
	if err != nil {
		return nil, err
	}

	return account.Principal(), nil
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := s.oauth.Client(ctx, token)

	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo request failed: %v", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned status %d", domain.ErrProvider, resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode userinfo: %v", domain.ErrProvider, err)
	}

	return &profile, nil
}

// provision creates a federated-only account. Display names from the
// provider are not unique, so the email doubles as the username. Losing a
// provisioning race to a concurrent callback resolves by re-reading.
func (s *GoogleService) provision(ctx context.Context, emailAddr string) (*domain.Account, error) {
	account := &domain.Account{
		ID:        uuid.New(),
		Username:  emailAddr,
		Email:     emailAddr,
		Provider:  domain.ProviderGoogle,
		CreatedAt: time.Now(),
	}

	err := s.accounts.Create(ctx, account)
	if errors.Is(err, domain.ErrConflict) {
		return s.accounts.GetByEmail(ctx, emailAddr)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[GOOGLE_SERVICE] Provisioned account %s for federated login", account.ID)
	return account, nil
}
