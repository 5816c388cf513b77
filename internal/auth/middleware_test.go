package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"

	"github.com/spec-kit/storefront-api/internal/config"
	"github.com/spec-kit/storefront-api/internal/domain"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[token], nil
}

type gateFixture struct {
	tokens    *TokenManager
	cookies   *CookieTransport
	clock     *abtime.ManualTime
	revoked   *fakeRevocations
	app       *fiber.App
	reachedMu sync.Mutex
	reached   int
}

func testErrorHandler(c *fiber.Ctx, err error) error {
	de := apperrors.ToDomainError(err)
	return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
}

func newGateFixture(t *testing.T, pre ...fiber.Handler) *gateFixture {
	t.Helper()
	f := &gateFixture{revoked: &fakeRevocations{revoked: map[string]bool{}}}
	f.tokens, f.clock = newTestTokenManager(t)
	f.cookies = NewCookieTransport(testAuthConfig, config.AppConfig{})

	gate := NewAuthMiddleware(f.tokens, f.cookies, f.revoked, nil)
	f.app = fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	handlers := append(pre, gate.Handle, func(c *fiber.Ctx) error {
		f.reachedMu.Lock()
		f.reached++
		f.reachedMu.Unlock()
		claim, ok := CurrentClaim(c)
		if !ok {
			return errors.New("claim missing")
		}
		return c.JSON(claim)
	})
	f.app.Get("/me", handlers...)
	return f
}

func (f *gateFixture) cookieFor(t *testing.T, claim domain.Claim) string {
	t.Helper()
	token, _, err := f.tokens.Issue(claim)
	require.NoError(t, err)
	return f.cookies.Cookie(token).Value
}

func (f *gateFixture) get(t *testing.T, cookie string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestAuthMiddleware_AttachesClaim(t *testing.T) {
	f := newGateFixture(t)

	status, body := f.get(t, f.cookieFor(t, steve))
	require.Equal(t, http.StatusOK, status)

	var got domain.Claim
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, steve, got)
	assert.Equal(t, 1, f.reached)
}

func TestAuthMiddleware_RejectsUniformly(t *testing.T) {
	f := newGateFixture(t)

	valid := f.cookieFor(t, steve)
	foreign := NewTokenManager(config.AuthConfig{TokenSecret: "forged", TokenLifetime: time.Hour}, f.clock)
	forgedToken, _, err := foreign.Issue(domain.Claim{UserID: steve.UserID, UserName: "steve", UserRole: domain.RoleAdmin})
	require.NoError(t, err)

	expiredTokenCookie := f.cookieFor(t, steve)
	f.clock.Advance(time.Hour + time.Second)
	freshAfterAdvance := f.cookieFor(t, steve)

	cases := map[string]string{
		"missing cookie":      "",
		"unsigned cookie":     "plain-token",
		"tampered cookie mac": valid[:len(valid)-2] + "xx",
		"forged token":        f.cookies.Cookie(forgedToken).Value,
		"malformed token":     f.cookies.Cookie("not.a.jwt").Value,
		"expired token":       expiredTokenCookie,
	}

	var bodies [][]byte
	for name, cookie := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := f.get(t, cookie)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.JSONEq(t, `{"error":{"code":"AUTHENTICATION_INVALID","message":"Authentication Invalid"}}`, string(body))
			bodies = append(bodies, body)
		})
	}
	for _, body := range bodies[1:] {
		assert.Equal(t, bodies[0], body, "rejections must be indistinguishable")
	}
	assert.Equal(t, 0, f.reached)

	status, _ := f.get(t, freshAfterAdvance)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthMiddleware_Revocation(t *testing.T) {
	f := newGateFixture(t)

	token, _, err := f.tokens.Issue(steve)
	require.NoError(t, err)
	cookie := f.cookies.Cookie(token).Value

	status, _ := f.get(t, cookie)
	require.Equal(t, http.StatusOK, status)

	f.revoked.revoked[token] = true
	status, _ = f.get(t, cookie)
	assert.Equal(t, http.StatusUnauthorized, status)

	f.revoked.err = errors.New("redis down")
	status, _ = f.get(t, cookie)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, 1, f.reached)
}

func TestAuthMiddleware_CanceledRequest(t *testing.T) {
	cancelFirst := func(c *fiber.Ctx) error {
		ctx, cancel := context.WithCancel(c.UserContext())
		cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
	f := newGateFixture(t, cancelFirst)

	status, _ := f.get(t, f.cookieFor(t, steve))
	assert.Equal(t, apperrors.StatusClientClosedRequest, status)
	assert.Equal(t, 0, f.reached)
}

func TestAuthMiddleware_ClaimIsPerRequest(t *testing.T) {
	f := newGateFixture(t)

	claims := []domain.Claim{
		{UserID: "u-1", UserName: "ann", UserRole: domain.RoleUser},
		{UserID: "u-2", UserName: "bob", UserRole: domain.RoleAdmin},
		{UserID: "u-3", UserName: "cid", UserRole: domain.RoleUser},
	}
	cookies := make([]string, len(claims))
	for i, claim := range claims {
		cookies[i] = f.cookieFor(t, claim)
	}

	var wg sync.WaitGroup
	for round := 0; round < 10; round++ {
		for i := range claims {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := httptest.NewRequest(http.MethodGet, "/me", nil)
				req.AddCookie(&http.Cookie{Name: CookieName, Value: cookies[i]})
				resp, err := f.app.Test(req, -1)
				if !assert.NoError(t, err) {
					return
				}
				var got domain.Claim
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
				assert.Equal(t, claims[i], got)
			}(i)
		}
	}
	wg.Wait()
}

func TestMustClaim_PanicsWithoutGate(t *testing.T) {
	assert.Panics(t, func() { MustClaim(context.Background()) })

	ctx := WithClaim(context.Background(), steve)
	assert.Equal(t, steve, MustClaim(ctx))
}
