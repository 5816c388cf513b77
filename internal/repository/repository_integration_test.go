//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-api/internal/domain"
	"github.com/spec-kit/storefront-api/internal/repository"
	"github.com/spec-kit/storefront-api/internal/testutil/containers"
)

func TestUserRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(containers.NewPostgresPool(t))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	steve := &domain.User{Name: "steve", Email: "s@x.com", PasswordHash: "hash", Role: domain.RoleAdmin}
	require.NoError(t, repo.Create(ctx, steve))
	_, err = uuid.Parse(steve.ID)
	require.NoError(t, err)

	dup := &domain.User{Name: "other", Email: "s@x.com", PasswordHash: "hash", Role: domain.RoleUser}
	require.ErrorIs(t, repo.Create(ctx, dup), repository.ErrEmailTaken)

	ann := &domain.User{Name: "ann", Email: "ann@x.com", PasswordHash: "hash", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, ann))

	got, err := repo.GetByEmail(ctx, "s@x.com")
	require.NoError(t, err)
	assert.Equal(t, steve.ID, got.ID)

	users, err := repo.ListByRole(ctx, domain.RoleUser)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, ann.ID, users[0].ID)

	ann.Email = "s@x.com"
	require.ErrorIs(t, repo.Update(ctx, ann), repository.ErrEmailTaken)

	_, err = repo.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestOrderRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	pool := containers.NewPostgresPool(t)
	users := repository.NewUserRepository(pool)
	orders := repository.NewOrderRepository(pool)

	owner := &domain.User{Name: "steve", Email: "s@x.com", PasswordHash: "hash", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, owner))
	ownerID := uuid.MustParse(owner.ID)

	order := &domain.Order{
		UserID:      ownerID,
		Items:       []domain.OrderItem{{Name: "lamp", ProductID: "p-1", Price: 2500, Amount: 2}},
		Tax:         100,
		ShippingFee: 500,
		Subtotal:    5000,
		Total:       5600,
		Status:      domain.OrderStatusPending,
	}
	require.NoError(t, orders.Create(ctx, order))
	require.NotEqual(t, uuid.Nil, order.ID)

	got, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, got.UserID)
	assert.Equal(t, order.Items, got.Items)

	got.Status = domain.OrderStatusPaid
	got.PaymentIntentID = "pi_1"
	require.NoError(t, orders.Update(ctx, got))

	mine, err := orders.ListByUser(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.OrderStatusPaid, mine[0].Status)

	none, err := orders.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)

	require.ErrorIs(t, orders.Update(ctx, &domain.Order{ID: uuid.New(), Status: domain.OrderStatusPaid}), pgx.ErrNoRows)
}

func TestTokenRevocationRepository_Redis(t *testing.T) {
	ctx := context.Background()
	client := containers.NewRedisClient(t)
	repo := repository.NewTokenRevocationRepository(client)

	revoked, err := repo.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "token-a", time.Minute))
	revoked, err = repo.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	keys, err := client.Keys(ctx, "revoked:token:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], "token-a")

	ttl, err := client.TTL(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	require.NoError(t, repo.Revoke(ctx, "token-b", 0))
	revoked, err = repo.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}
