package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/auth-service/internal/config"
	"github.com/cinelog/auth-service/internal/service"
)

// OAuthHandler implements the two-step federated login handshake: a redirect
// to the provider consent screen and the callback that turns the returned
// authorization code into a session. Callback failures never surface error
// detail; the client is redirected back to the frontend login route.
type OAuthHandler struct {
	google   *service.GoogleService
	resolver *service.Resolver
	sessions *service.SessionService
	frontend config.FrontendConfig
	cookies  CookieSettings
}

func NewOAuthHandler(
	google *service.GoogleService,
	resolver *service.Resolver,
	sessions *service.SessionService,
	frontend config.FrontendConfig,
	cookies CookieSettings,
) *OAuthHandler {
	return &OAuthHandler{
		google:   google,
		resolver: resolver,
		sessions: sessions,
		frontend: frontend,
		cookies:  cookies,
	}
}

// Redirect sends the client to the Google consent screen
// GET /auth/google
func (h *OAuthHandler) Redirect(c *fiber.Ctx) error {
	if !h.google.Enabled() {
		log.Printf("[OAUTH_HANDLER] Google login requested but not configured")
		return c.Redirect(h.frontend.LoginURL, fiber.StatusFound)
	}

	state, err := h.google.IssueState()
	if err != nil {
		log.Printf("[OAUTH_HANDLER] Failed to issue state: %v", err)
		return c.Redirect(h.frontend.LoginURL, fiber.StatusFound)
	}

	return c.Redirect(h.google.AuthCodeURL(state), fiber.StatusFound)
}

// Callback handles the provider redirect after consent
// GET /auth/google/callback
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	if errParam := c.Query("error"); errParam != "" {
		log.Printf("[OAUTH_HANDLER] Provider returned error: %s", errParam)
		return c.Redirect(h.frontend.LoginURL, fiber.StatusFound)
	}

	if err := h.google.VerifyState(c.Query("state")); err != nil {
		log.Printf("[OAUTH_HANDLER] State verification failed: %v", err)
		return c.Redirect(h.frontend.LoginURL, fiber.StatusFound)
	}

	principal, err := h.resolver.Authenticate(c.Context(), service.Attempt{
		Kind: service.AttemptFederated,
		Code: c.Query("code"),
	})
	if err != nil {
		log.Printf("[OAUTH_HANDLER] Federated authentication failed: %v", err)
		return c.Redirect(h.frontend.LoginURL, fiber.StatusFound)
	}

	token, err := h.sessions.Create(c.Context(), principal)
	if err != nil {
		log.Printf("[OAUTH_HANDLER] Session creation failed: %v", err)
		return c.Redirect(h.frontend.LoginURL, fiber.StatusFound)
	}

	setSessionCookie(c, h.cookies, token)
	return c.Redirect(h.frontend.HomeURL, fiber.StatusFound)
}
