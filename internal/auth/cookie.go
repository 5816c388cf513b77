package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-api/internal/config"
)

const (
	// CookieName is the session cookie carrying the token.
	CookieName = "token"

	signedPrefix = "s:"
	clearedValue = "logout"
)

// CookieTransport carries session tokens in a signed, HttpOnly cookie.
// The cookie mac uses its own secret, independent of the token signature.
type CookieTransport struct {
	secret []byte
	maxAge time.Duration
	secure bool
}

// NewCookieTransport builds a transport. Cookies are Secure only in production.
func NewCookieTransport(cfg config.AuthConfig, app config.AppConfig) *CookieTransport {
	return &CookieTransport{
		secret: []byte(cfg.CookieSecret),
		maxAge: cfg.TokenLifetime,
		secure: app.IsProduction(),
	}
}

// Cookie builds the directive for token.
func (t *CookieTransport) Cookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    t.sign(token),
		Path:     "/",
		MaxAge:   int(t.maxAge / time.Second),
		Expires:  time.Now().Add(t.maxAge),
		HTTPOnly: true,
		Secure:   t.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// Attach sets the session cookie for token on the response.
func (t *CookieTransport) Attach(c *fiber.Ctx, token string) {
	c.Cookie(t.Cookie(token))
}

// Extract returns the token from a correctly signed session cookie.
// An unsigned or tampered cookie is reported the same way as a missing one.
func (t *CookieTransport) Extract(c *fiber.Ctx) (string, bool) {
	return t.Unsign(c.Cookies(CookieName))
}

// Unsign checks a raw cookie value and returns the token it carries.
func (t *CookieTransport) Unsign(value string) (string, bool) {
	rest, ok := strings.CutPrefix(value, signedPrefix)
	if !ok {
		return "", false
	}
	dot := strings.LastIndexByte(rest, '.')
	if dot <= 0 {
		return "", false
	}
	token, mac := rest[:dot], rest[dot+1:]

	got, err := base64.RawURLEncoding.Strict().DecodeString(mac)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(got, t.mac(token)) {
		return "", false
	}
	return strings.Clone(token), true
}

// Clear expires the session cookie immediately.
func (t *CookieTransport) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    clearedValue,
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   t.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (t *CookieTransport) sign(token string) string {
	return signedPrefix + token + "." + base64.RawURLEncoding.EncodeToString(t.mac(token))
}

// mac binds the cookie name into the signature so a value cannot be replayed
// under another cookie.
func (t *CookieTransport) mac(token string) []byte {
	h := hmac.New(sha256.New, t.secret)
	h.Write([]byte(CookieName))
	h.Write([]byte{0})
	h.Write([]byte(token))
	return h.Sum(nil)
}
