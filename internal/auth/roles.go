package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-api/internal/domain"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

const msgNotAuthorized = "Not authorized to access this route"

// RequireRole ensures the authenticated caller holds one of the allowed roles.
// It must be mounted after AuthMiddleware. An empty allow list rejects everyone.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claim := MustClaim(c.UserContext())
		if _, exists := allowedSet[claim.UserRole]; !exists {
			return apperrors.NewForbidden(msgNotAuthorized)
		}
		return c.Next()
	}
}

// RequireAdmin is RequireRole(domain.RoleAdmin).
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
