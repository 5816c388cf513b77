package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name     string
		redis    Pinger
		status   int
		contains string
	}{
		{name: "all up", redis: stubPinger{}, status: http.StatusOK, contains: `"status":"ready"`},
		{name: "redis down", redis: stubPinger{err: errors.New("dial tcp: refused")}, status: http.StatusServiceUnavailable, contains: `"redis":"dial tcp: refused"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("storefront-api", "test", stubPinger{}, tt.redis)
			app := fiber.New()
			app.Get("/ready", h.Ready)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, string(body), tt.contains)
			assert.Contains(t, string(body), `"postgres":"ok"`)
		})
	}
}
