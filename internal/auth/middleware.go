package auth

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

// RevocationChecker reports whether a token was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware validates the session cookie and attaches the caller's claim.
type AuthMiddleware struct {
	tokens      *TokenManager
	cookies     *CookieTransport
	revocations RevocationChecker
	logger      *zap.Logger
}

// NewAuthMiddleware constructs middleware. revocations may be nil.
func NewAuthMiddleware(tokens *TokenManager, cookies *CookieTransport, revocations RevocationChecker, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, cookies: cookies, revocations: revocations, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	ctx := c.UserContext()

	token, ok := m.cookies.Extract(c)
	if !ok {
		return m.reject(c, "missing or unsigned session cookie", nil)
	}

	claim, err := m.tokens.Verify(token)
	if err != nil {
		return m.reject(c, "token rejected", err)
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(ctx, token)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return apperrors.NewInternalError(fmt.Errorf("check token revocation: %w", err))
		}
		if revoked {
			return m.reject(c, "token revoked", nil)
		}
	}

	// An aborted request must not reach the next stage.
	if err := ctx.Err(); err != nil {
		return err
	}

	c.SetUserContext(WithClaim(ctx, claim))
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, reason string, err error) error {
	m.logger.Debug("authentication rejected",
		zap.String("reason", reason),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return apperrors.NewAuthenticationInvalid()
}
