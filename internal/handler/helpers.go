package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/auth-service/internal/config"
)

// CookieSettings describes the transport-level session credential. The
// cookie is HTTP-only so the principal only ever travels server-side; Secure
// stays configurable because local frontend development runs over plain HTTP.
type CookieSettings struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

func NewCookieSettings(cfg config.SessionConfig) CookieSettings {
	return CookieSettings{
		Name:   cfg.CookieName,
		MaxAge: cfg.TTL,
		Secure: cfg.CookieSecure,
	}
}

func setSessionCookie(c *fiber.Ctx, cs CookieSettings, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cs.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cs.MaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cs.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, cs CookieSettings) {
	c.Cookie(&fiber.Cookie{
		Name:     cs.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cs.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
