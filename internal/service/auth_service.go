package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/finderapp/finder-service/internal/auth"
	"github.com/finderapp/finder-service/internal/config"
	"github.com/finderapp/finder-service/internal/domain"
	"github.com/finderapp/finder-service/internal/repository"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// RegisterInput carries registration form fields.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Phone        *string
	Role         domain.UserRole
	Organization *string
	Position     *string
	Details      *string
}

// AuthService coordinates the account lifecycle: registration with
// differential auto-verification, login, logout, and the authority approval
// workflow.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates a new account. Family accounts are verified immediately
// and get a session token; authority accounts stay unverified and tokenless
// until approved. The returned token is empty for unverified accounts.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("user with this email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         in.Role,
		Verified:     in.Role == domain.RoleFamily,
		Organization: in.Organization,
		Position:     in.Position,
		Details:      in.Details,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	if !user.Verified {
		return user, "", time.Time{}, nil
	}

	token, expiresAt, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login authenticates by email and password. A correct password on an
// unverified authority account yields a pending-verification rejection so
// the client can route to the waiting page instead of implying bad
// credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	if !user.Verified {
		if user.Role == domain.RoleAuthority {
			return nil, "", time.Time{}, apperrors.NewPendingVerification()
		}
		return nil, "", time.Time{}, apperrors.NewForbidden("account not verified")
	}

	// A fresh token is issued on every login; older unexpired tokens stay
	// valid since verification is signature-based, not mirror-based.
	token, expiresAt, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Logout clears the server-side token mirror. The mirror update is best
// effort: the client-visible logout already succeeded once the cookie is
// cleared, so persistence failures are logged and swallowed.
func (s *AuthService) Logout(ctx context.Context, userID int64) {
	if err := s.users.SetToken(ctx, userID, nil); err != nil {
		s.logger.Warn("failed to clear token mirror on logout",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}

// CurrentUser loads the account for the given id.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// PendingAuthorities lists unverified authority accounts, newest first.
func (s *AuthService) PendingAuthorities(ctx context.Context) ([]domain.User, error) {
	return s.users.ListPendingAuthorities(ctx)
}

// ReviewAuthority approves or rejects a pending authority account.
// Approval only flips the verified flag; the user must log in afterwards to
// obtain a session. Rejection deletes the account outright.
func (s *AuthService) ReviewAuthority(ctx context.Context, id int64, approve bool) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("authority", nil)
		}
		return err
	}

	if user.Role != domain.RoleAuthority {
		return apperrors.NewValidationError("user is not an authority", nil)
	}

	if approve {
		return s.users.SetVerified(ctx, id, true)
	}
	return s.users.Delete(ctx, id)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := s.tokenMgr.Generate(user)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.users.SetToken(ctx, user.ID, &token); err != nil {
		return "", time.Time{}, err
	}
	user.Token = &token
	return token, expiresAt, nil
}
