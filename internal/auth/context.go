package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-api/internal/domain"
)

type claimKey struct{}

// WithClaim returns a child context carrying the authenticated claim.
func WithClaim(ctx context.Context, claim domain.Claim) context.Context {
	return context.WithValue(ctx, claimKey{}, claim)
}

// ClaimFromContext retrieves the authenticated claim.
func ClaimFromContext(ctx context.Context) (domain.Claim, bool) {
	claim, ok := ctx.Value(claimKey{}).(domain.Claim)
	return claim, ok
}

// MustClaim is ClaimFromContext for handlers mounted behind AuthMiddleware.
// A missing claim means the route was wired without the middleware.
func MustClaim(ctx context.Context) domain.Claim {
	claim, ok := ClaimFromContext(ctx)
	if !ok {
		panic("auth: no claim in request context; route is not behind AuthMiddleware")
	}
	return claim
}

// CurrentClaim reads the claim for the request being served.
func CurrentClaim(c *fiber.Ctx) (domain.Claim, bool) {
	return ClaimFromContext(c.UserContext())
}
