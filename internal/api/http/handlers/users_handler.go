package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-api/internal/api/dto"
	"github.com/spec-kit/storefront-api/internal/auth"
	"github.com/spec-kit/storefront-api/internal/service"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

// UsersHandler exposes account endpoints behind the authentication gate.
type UsersHandler struct {
	users   *service.UserService
	cookies *auth.CookieTransport
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, cookies *auth.CookieTransport) *UsersHandler {
	return &UsersHandler{users: users, cookies: cookies}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": out, "count": len(out)})
}

// ShowMe handles GET /users/showMe.
func (h *UsersHandler) ShowMe(c *fiber.Ctx) error {
	return c.JSON(dto.SessionResponse{User: auth.MustClaim(c.UserContext())})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, err := h.users.GetUser(ctx, auth.MustClaim(ctx), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Update handles PATCH /users/updateUser and replaces the session cookie.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" {
		return apperrors.NewValidationError("Please provide all values", nil)
	}

	ctx := c.UserContext()
	user, token, _, err := h.users.UpdateUser(ctx, auth.MustClaim(ctx), req.Name, req.Email)
	if err != nil {
		return err
	}

	h.cookies.Attach(c, token)
	return c.JSON(dto.SessionResponse{User: user.Claim()})
}

// UpdatePassword handles PATCH /users/updateUserPassword.
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	if err := h.users.UpdatePassword(ctx, auth.MustClaim(ctx), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Success! Password Updated."})
}
