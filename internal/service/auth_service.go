package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-api/internal/auth"
	"github.com/spec-kit/storefront-api/internal/config"
	"github.com/spec-kit/storefront-api/internal/domain"
	"github.com/spec-kit/storefront-api/internal/events"
	"github.com/spec-kit/storefront-api/internal/repository"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

const msgEmailExists = "Email already exists"

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.TokenRevocationRepository
	tokenMgr    *auth.TokenManager
	events      events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RevocationRepo repository.TokenRevocationRepository
	Tokens         *auth.TokenManager
	Events         events.Dispatcher
	Logger         *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.RevocationRepo,
		tokenMgr:    deps.Tokens,
		events:      dispatcherOrNop(deps.Events),
		logger:      loggerOrNop(deps.Logger),
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// Register creates an account. The very first account becomes an admin.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError(msgEmailExists, nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	role := domain.RoleUser
	if count == 0 {
		role = domain.RoleAdmin
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", time.Time{}, apperrors.NewValidationError(msgEmailExists, nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user.Claim())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.publish(ctx, events.EventUserRegistered, user.Claim(), nil)
	return user, token, exp, nil
}

// Login authenticates by email and password. Unknown emails and wrong passwords
// are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(user.Claim())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.publish(ctx, events.EventUserLoggedIn, user.Claim(), nil)
	return user, token, exp, nil
}

// Logout revokes token until it would have expired anyway. Tokens that no longer
// verify need no revocation and are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claim, exp, err := s.tokenMgr.VerifyWithExpiry(token)
	if err != nil {
		return nil
	}
	// Redis expiry has second granularity; round up so the entry outlives the token.
	ttl := s.tokenMgr.Remaining(exp) + time.Second
	if err := s.revocations.Revoke(ctx, token, ttl); err != nil {
		return err
	}
	s.publish(ctx, events.EventUserLoggedOut, claim, nil)
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor domain.Claim, payload any) {
	publish(ctx, s.events, s.logger, eventType, actor, payload)
}

func publish(ctx context.Context, d events.Dispatcher, logger *zap.Logger, eventType events.EventType, actor domain.Claim, payload any) {
	err := d.Publish(ctx, events.Event{Type: eventType, Actor: actor, Payload: payload})
	if err != nil {
		logger.Warn("event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func dispatcherOrNop(d events.Dispatcher) events.Dispatcher {
	if d == nil {
		return events.NopDispatcher{}
	}
	return d
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
