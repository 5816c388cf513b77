package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-api/internal/api/dto"
	"github.com/spec-kit/storefront-api/internal/auth"
	"github.com/spec-kit/storefront-api/internal/service"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and logout.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *auth.CookieTransport
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieTransport) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Please provide name, email and password", nil)
	}

	user, token, _, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Attach(c, token)
	return c.Status(http.StatusCreated).JSON(dto.SessionResponse{User: user.Claim()})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Please provide email and password", nil)
	}

	user, token, _, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Attach(c, token)
	return c.JSON(dto.SessionResponse{User: user.Claim()})
}

// Logout handles GET /auth/logout. The cookie is cleared even when the
// presented session was already invalid.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token, ok := h.cookies.Extract(c); ok {
		if err := h.auth.Logout(c.UserContext(), token); err != nil {
			return err
		}
	}
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"msg": "user logged out"})
}
