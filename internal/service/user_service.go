package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-api/internal/auth"
	"github.com/spec-kit/storefront-api/internal/config"
	"github.com/spec-kit/storefront-api/internal/domain"
	"github.com/spec-kit/storefront-api/internal/events"
	"github.com/spec-kit/storefront-api/internal/repository"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

// UserService manages account records on behalf of an authenticated caller.
type UserService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	events     events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// UserDependencies encapsulates collaborators of the user service.
type UserDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Events   events.Dispatcher
	Logger   *zap.Logger
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		tokenMgr:   deps.Tokens,
		events:     dispatcherOrNop(deps.Events),
		logger:     loggerOrNop(deps.Logger),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// ListUsers returns every non-admin account.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleUser)
}

// GetUser loads the account id. The ownership check runs before the lookup, so a
// denied caller learns nothing about whether the account exists.
func (s *UserService) GetUser(ctx context.Context, claim domain.Claim, id string) (*domain.User, error) {
	if err := auth.CheckPermissions(claim, id); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	user, err := s.users.GetByID(ctx, parsed.String())
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, err
}

// UpdateUser changes the caller's name and email and issues a token carrying them.
func (s *UserService) UpdateUser(ctx context.Context, claim domain.Claim, name, email string) (*domain.User, string, time.Time, error) {
	user, err := s.current(ctx, claim)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user.Name = strings.TrimSpace(name)
	user.Email = normalizeEmail(email)
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", time.Time{}, apperrors.NewValidationError(msgEmailExists, nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user.Claim())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	publish(ctx, s.events, s.logger, events.EventUserUpdated, user.Claim(), nil)
	return user, token, exp, nil
}

// UpdatePassword replaces the caller's password after checking the old one.
func (s *UserService) UpdatePassword(ctx context.Context, claim domain.Claim, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("Please provide both values", nil)
	}
	if oldPassword == newPassword {
		return apperrors.NewValidationError("Please provide a different password", nil)
	}

	user, err := s.current(ctx, claim)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, oldPassword); err != nil {
		return apperrors.NewForbidden("Invalid Credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	publish(ctx, s.events, s.logger, events.EventPasswordChanged, claim, nil)
	return nil
}

// current loads the caller's own record. A claim whose account is gone is no
// longer a valid session.
func (s *UserService) current(ctx context.Context, claim domain.Claim) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, claim.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAuthenticationInvalid()
	}
	return user, err
}
