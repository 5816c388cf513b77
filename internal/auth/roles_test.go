package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-api/internal/domain"
)

func roleApp(claim *domain.Claim, gate fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	app.Use(func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fiber.ErrInternalServerError
			}
		}()
		if claim != nil {
			c.SetUserContext(WithClaim(c.UserContext(), *claim))
		}
		return c.Next()
	})
	app.Get("/admin", gate, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func roleStatus(t *testing.T, claim *domain.Claim, gate fiber.Handler) int {
	t.Helper()
	resp, err := roleApp(claim, gate).Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireRole(t *testing.T) {
	admin := domain.Claim{UserID: "u-1", UserName: "steve", UserRole: domain.RoleAdmin}
	user := admin
	user.UserRole = domain.RoleUser

	assert.Equal(t, http.StatusOK, roleStatus(t, &admin, RequireAdmin()))
	assert.Equal(t, http.StatusForbidden, roleStatus(t, &user, RequireAdmin()))

	assert.Equal(t, http.StatusOK, roleStatus(t, &user, RequireRole(domain.RoleUser, domain.RoleAdmin)))
	assert.Equal(t, http.StatusOK, roleStatus(t, &admin, RequireRole(domain.RoleUser, domain.RoleAdmin)))
}

func TestRequireRole_EmptyAllowListRejects(t *testing.T) {
	admin := domain.Claim{UserID: "u-1", UserRole: domain.RoleAdmin}
	assert.Equal(t, http.StatusForbidden, roleStatus(t, &admin, RequireRole()))
}

func TestRequireRole_WithoutAuthenticationIsProgrammingError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, roleStatus(t, nil, RequireAdmin()))
}
