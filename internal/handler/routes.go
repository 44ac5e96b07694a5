package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	oauthHandler *OAuthHandler,
	sessionHandler *SessionHandler,
	healthHandler *HealthHandler,
	requireSession fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Local credential path
	app.Post("/signup", authHandler.Signup)
	app.Post("/login", authHandler.Login)

	// Federated login handshake
	app.Get("/auth/google", oauthHandler.Redirect)
	app.Get("/auth/google/callback", oauthHandler.Callback)

	// Session lifecycle
	app.Get("/check-auth", requireSession, sessionHandler.CheckAuth)
	app.Post("/logout", sessionHandler.Logout)
}
