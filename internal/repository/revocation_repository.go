package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=revocation_repository.go -destination=mocks/revocation_repository_mock.go -package=mocks

const revokedTokenKeyPrefix = "revoked:token:"

// TokenRevocationRepository is a deny-list of session tokens ended by logout.
type TokenRevocationRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type tokenRevocationRepository struct {
	client redis.Cmdable
}

// NewTokenRevocationRepository returns a Redis-backed deny-list.
func NewTokenRevocationRepository(client redis.Cmdable) TokenRevocationRepository {
	return &tokenRevocationRepository{client: client}
}

// Revoke keeps the entry until the token would have expired anyway.
func (r *tokenRevocationRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if token == "" || ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKey(token), "1", ttl).Err()
}

func (r *tokenRevocationRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Tokens are stored hashed so the deny-list never holds usable credentials.
func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedTokenKeyPrefix + hex.EncodeToString(sum[:])
}
