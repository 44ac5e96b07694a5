package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/auth-service/internal/domain"
	"github.com/cinelog/auth-service/internal/handler/middleware"
	"github.com/cinelog/auth-service/internal/service"
)

type SessionHandler struct {
	sessions *service.SessionService
	cookies  CookieSettings
}

func NewSessionHandler(sessions *service.SessionService, cookies CookieSettings) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		cookies:  cookies,
	}
}

// CheckAuth reports the authenticated principal. The session middleware has
// already resolved the cookie; an unauthenticated request never reaches this
// handler.
// GET /check-auth
func (h *SessionHandler) CheckAuth(c *fiber.Ctx) error {
	principal, ok := c.Locals(middleware.PrincipalKey).(*domain.Principal)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": principal,
	})
}

// Logout revokes the session and clears the cookie. The two must not come
// apart: if the server-side revoke fails the cookie stays in place and the
// caller is told logout did not happen.
// POST /logout
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookies.Name)

	if err := h.sessions.Revoke(c.Context(), token); err != nil {
		log.Printf("[SESSION_HANDLER] Logout failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Logout failed",
		})
	}

	clearSessionCookie(c, h.cookies)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
