package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/cinelog/auth-service/internal/config"
	"github.com/cinelog/auth-service/internal/domain"
)

// fakeProvider stands in for Google's token and userinfo endpoints.
func fakeProvider(t *testing.T, profile googleProfile) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "provider-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGoogleService(t *testing.T, repo *fakeAccountRepo, profile googleProfile) *GoogleService {
	t.Helper()
	srv := fakeProvider(t, profile)

	svc := NewGoogleService(repo, config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/auth/google/callback",
		StateSecret:  "state-secret",
	})
	svc.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  srv.URL + "/auth",
		TokenURL: srv.URL + "/token",
	}
	svc.userInfoURL = srv.URL + "/userinfo"
	return svc
}

func TestGoogleAuthenticate_ProvisionsOnFirstSight(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := newTestGoogleService(t, repo, googleProfile{
		Email:         "dana@example.com",
		EmailVerified: true,
		Name:          "Dana",
	})

	principal, err := svc.Authenticate(context.Background(), "auth-code")
	require.NoError(t, err)
	require.Equal(t, "dana@example.com", principal.Email)
	// Display names are not unique; the email doubles as the username
	require.Equal(t, "dana@example.com", principal.Username)

	stored, err := repo.GetByEmail(context.Background(), "dana@example.com")
	require.NoError(t, err)
	require.Nil(t, stored.PasswordHash, "federated account must have no local verifier")
	require.Equal(t, domain.ProviderGoogle, stored.Provider)
}

func TestGoogleAuthenticate_ResolvesExistingAccount(t *testing.T) {
	existingID := uuid.New()
	hash := "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"
	repo := &fakeAccountRepo{}
	require.NoError(t, repo.Create(context.Background(), &domain.Account{
		ID:           existingID,
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: &hash,
		Provider:     domain.ProviderLocal,
	}))

	svc := newTestGoogleService(t, repo, googleProfile{Email: "a@x.com", EmailVerified: true})

	principal, err := svc.Authenticate(context.Background(), "auth-code")
	require.NoError(t, err)
	require.Equal(t, existingID, principal.ID, "must resolve to the existing account, not a duplicate")
	require.Equal(t, 1, repo.count())
}

func TestGoogleAuthenticate_RejectsUnverifiedEmail(t *testing.T) {
	svc := newTestGoogleService(t, &fakeAccountRepo{}, googleProfile{
		Email:         "dana@example.com",
		EmailVerified: false,
	})

	_, err := svc.Authenticate(context.Background(), "auth-code")
	require.ErrorIs(t, err, domain.ErrProvider)
}

func TestGoogleAuthenticate_ExchangeFailure(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewGoogleService(repo, config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		StateSecret:  "state-secret",
	})
	// Token endpoint that always refuses
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	svc.oauth.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

	_, err := svc.Authenticate(context.Background(), "bad-code")
	require.ErrorIs(t, err, domain.ErrProvider)
	require.Zero(t, repo.count(), "no account is provisioned on a failed exchange")
}

// raceAccountRepo simulates losing a provisioning race: the first lookup
// misses, the insert conflicts, and the re-read finds the winner.
type raceAccountRepo struct {
	fakeAccountRepo
	winner  *domain.Account
	lookups int
}

func (r *raceAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, domain.ErrNotFound
	}
	copied := *r.winner
	return &copied, nil
}

func (r *raceAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return domain.ErrConflict
}

func TestGoogleAuthenticate_ProvisioningRace(t *testing.T) {
	winner := &domain.Account{ID: uuid.New(), Username: "dana@example.com", Email: "dana@example.com", Provider: domain.ProviderGoogle}
	repo := &raceAccountRepo{winner: winner}
	srv := fakeProvider(t, googleProfile{Email: "dana@example.com", EmailVerified: true})

	svc := NewGoogleService(repo, config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		StateSecret:  "state-secret",
	})
	svc.oauth.Endpoint = oauth2.Endpoint{TokenURL: srv.URL + "/token"}
	svc.userInfoURL = srv.URL + "/userinfo"

	principal, err := svc.Authenticate(context.Background(), "auth-code")
	require.NoError(t, err)
	require.Equal(t, winner.ID, principal.ID)
	require.Equal(t, 2, repo.lookups)
}

func TestOAuthState_RoundTrip(t *testing.T) {
	svc := NewGoogleService(&fakeAccountRepo{}, config.GoogleConfig{
		ClientID:    "client-id",
		StateSecret: "state-secret",
	})

	state, err := svc.IssueState()
	require.NoError(t, err)
	require.NoError(t, svc.VerifyState(state))
}

func TestOAuthState_RejectsForgery(t *testing.T) {
	issuer := NewGoogleService(&fakeAccountRepo{}, config.GoogleConfig{ClientID: "c", StateSecret: "secret-one"})
	verifier := NewGoogleService(&fakeAccountRepo{}, config.GoogleConfig{ClientID: "c", StateSecret: "secret-two"})

	state, err := issuer.IssueState()
	require.NoError(t, err)

	require.ErrorIs(t, verifier.VerifyState(state), domain.ErrProvider)
	require.ErrorIs(t, verifier.VerifyState(""), domain.ErrProvider)
	require.ErrorIs(t, verifier.VerifyState("not-a-jwt"), domain.ErrProvider)
}
