package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/auth-service/internal/domain"
	"github.com/cinelog/auth-service/internal/service"
)

// genericLoginMessage is returned for every login failure regardless of
// cause, so responses cannot be used to enumerate accounts.
const genericLoginMessage = "Invalid email or password."

type AuthHandler struct {
	authService *service.AuthService
	resolver    *service.Resolver
	sessions    *service.SessionService
	cookies     CookieSettings
}

func NewAuthHandler(
	authService *service.AuthService,
	resolver *service.Resolver,
	sessions *service.SessionService,
	cookies CookieSettings,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		resolver:    resolver,
		sessions:    sessions,
		cookies:     cookies,
	}
}

// Signup handles local account registration
// POST /signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req service.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body.",
		})
	}

	principal, err := h.authService.Signup(c.Context(), req)
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Message,
			})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Username or email already taken.",
			})
		default:
			log.Printf("[AUTH_HANDLER] Signup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully.",
		"user": fiber.Map{
			"username": principal.Username,
			"email":    principal.Email,
		},
	})
}

// Login authenticates local credentials and establishes a session
// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": genericLoginMessage,
		})
	}

	principal, err := h.resolver.Authenticate(c.Context(), service.Attempt{
		Kind:        service.AttemptLocal,
		Credentials: &req,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr),
			errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrNoPassword),
			errors.Is(err, domain.ErrInvalidCredentials):
			// Distinct internally, uniform on the wire.
			log.Printf("[AUTH_HANDLER] Login rejected for %s: %v", req.Email, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": genericLoginMessage,
			})
		default:
			log.Printf("[AUTH_HANDLER] Login failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error.",
			})
		}
	}

	token, err := h.sessions.Create(c.Context(), principal)
	if err != nil {
		log.Printf("[AUTH_HANDLER] Session creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error.",
		})
	}

	setSessionCookie(c, h.cookies, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged in successfully",
		"returnUser": fiber.Map{
			"username": principal.Username,
			"email":    principal.Email,
		},
	})
}
