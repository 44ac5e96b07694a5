package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/auth-service/internal/service"
)

// PrincipalKey is the fiber.Locals key under which the authenticated
// principal is stored for downstream handlers.
const PrincipalKey = "principal"

// RequireSession resolves the session cookie to a principal and rejects the
// request with 401 when no live session exists. A session store failure is a
// 500: an unreachable store must not look like "not logged in".
func RequireSession(sessions *service.SessionService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)

		principal, err := sessions.Validate(c.Context(), token)
		if err != nil {
			log.Printf("[SESSION_MIDDLEWARE] Session validation failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error.",
			})
		}

		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authenticated",
			})
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}
