package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/storefront-api/internal/domain"
	"github.com/spec-kit/storefront-api/internal/events"
)

func TestStartAuditWorker_LogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core), nil)

	actor := domain.Claim{UserID: "u-1", UserName: "steve", UserRole: domain.RoleAdmin}
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventUserRegistered, Actor: actor}))

	entries := logs.FilterMessage("event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "user_registered", fields["type"])
	assert.Equal(t, "u-1", fields["user_id"])
	assert.Equal(t, "admin", fields["role"])
}
