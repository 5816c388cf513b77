package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/thejerf/abtime"

	"github.com/spec-kit/storefront-api/internal/config"
	"github.com/spec-kit/storefront-api/internal/domain"
)

// Token verification failures. They never leave the package boundary as-is;
// the middleware collapses all of them into a single authentication error.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// TokenManager handles issuing and validating session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  abtime.AbstractTime
}

// NewTokenManager builds a new manager. A nil clock uses wall time.
func NewTokenManager(cfg config.AuthConfig, clock abtime.AbstractTime) *TokenManager {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &TokenManager{secret: []byte(cfg.TokenSecret), ttl: cfg.TokenLifetime, clock: clock}
}

// Remaining reports how long a token expiring at expiresAt stays valid.
func (tm *TokenManager) Remaining(expiresAt time.Time) time.Duration {
	return expiresAt.Sub(tm.clock.Now())
}

// Claims describes the token payload.
type Claims struct {
	domain.Claim
	jwt.RegisteredClaims
}

// Issue signs a token for claim.
func (tm *TokenManager) Issue(claim domain.Claim) (string, time.Time, error) {
	now := tm.clock.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Claim: domain.Claim{
			UserID:   claim.UserID,
			UserName: claim.UserName,
			UserRole: claim.UserRole,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Verify validates tokenStr and returns the embedded claim.
func (tm *TokenManager) Verify(tokenStr string) (domain.Claim, error) {
	claim, _, err := tm.VerifyWithExpiry(tokenStr)
	return claim, err
}

// VerifyWithExpiry is Verify that also reports when the token stops being valid.
func (tm *TokenManager) VerifyWithExpiry(tokenStr string) (domain.Claim, time.Time, error) {
	now := tm.clock.Now()

	// Temporal claims are checked below against the single clock reading above.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		return domain.Claim{}, time.Time{}, classify(err)
	}

	if claims.ExpiresAt == nil {
		return domain.Claim{}, time.Time{}, ErrMalformed
	}
	expiresAt := claims.ExpiresAt.Time
	if now.After(expiresAt) {
		return domain.Claim{}, time.Time{}, ErrExpired
	}
	if claims.UserID == "" || !claims.UserRole.Valid() {
		return domain.Claim{}, time.Time{}, ErrMalformed
	}

	return domain.Claim{
		UserID:   claims.UserID,
		UserName: claims.UserName,
		UserRole: claims.UserRole,
	}, expiresAt, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
