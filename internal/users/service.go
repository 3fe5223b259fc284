package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spdeepak/rex-identity-server/api"
	"github.com/spdeepak/rex-identity-server/internal/claims"
	"github.com/spdeepak/rex-identity-server/internal/error"
	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/tokens"
)

const defaultMaxLoginFailures = 5

// LoginGuard counts failed logins per client IP. db.RedisClient implements it.
type LoginGuard interface {
	GetLoginFailures(ctx context.Context, ip string) (int64, error)
	IncrementLoginFailures(ctx context.Context, ip string) (int64, error)
	ResetLoginFailures(ctx context.Context, ip string) error
}

type (
	service struct {
		users            identity.UserLookup
		hasher           identity.PasswordHasher
		tokenService     tokens.Service
		guard            LoginGuard
		maxLoginFailures int64
		now              func() time.Time
	}
	Option  func(*service)
	Service interface {
		Login(ctx context.Context, clientIP string, login api.LoginRequest) (api.LoginSuccessWithJWT, error)
		RefreshAccessToken(ctx context.Context, accessToken, refreshToken string) (api.LoginSuccessWithJWT, error)
	}
)

// WithLoginGuard enables per IP throttling after maxFailures failed logins.
func WithLoginGuard(guard LoginGuard, maxFailures int64) Option {
	return func(s *service) {
		s.guard = guard
		if maxFailures > 0 {
			s.maxLoginFailures = maxFailures
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(users identity.UserLookup, hasher identity.PasswordHasher, tokenService tokens.Service, opts ...Option) Service {
	s := &service{
		users:            users,
		hasher:           hasher,
		tokenService:     tokenService,
		maxLoginFailures: defaultMaxLoginFailures,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Login(ctx context.Context, clientIP string, login api.LoginRequest) (api.LoginSuccessWithJWT, error) {
	email := strings.TrimSpace(string(login.Email))
	if email == "" || login.Password == "" {
		return api.LoginSuccessWithJWT{}, httperror.NewWithMetadata(httperror.InvalidInput, "email and password are required")
	}

	if s.guard != nil {
		failures, err := s.guard.GetLoginFailures(ctx, clientIP)
		if err != nil {
			slog.WarnContext(ctx, "Reading login failures failed", slog.Any("error", err))
		} else if failures >= s.maxLoginFailures {
			return api.LoginSuccessWithJWT{}, httperror.New(httperror.TooManyLoginAttempts)
		}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httperror.New(httperror.NotFound)) {
			s.recordFailure(ctx, clientIP)
			return api.LoginSuccessWithJWT{}, httperror.New(httperror.InvalidCredentials)
		}
		return api.LoginSuccessWithJWT{}, err
	}
	if !user.IsActived {
		s.recordFailure(ctx, clientIP)
		return api.LoginSuccessWithJWT{}, httperror.New(httperror.InvalidCredentials)
	}
	if err = s.hasher.Verify(login.Password, user.PasswordHash); err != nil {
		s.recordFailure(ctx, clientIP)
		return api.LoginSuccessWithJWT{}, httperror.New(httperror.InvalidCredentials)
	}

	if s.guard != nil {
		if err = s.guard.ResetLoginFailures(ctx, clientIP); err != nil {
			slog.WarnContext(ctx, "Resetting login failures failed", slog.Any("error", err))
		}
	}

	now := s.now()
	accessToken, err := s.tokenService.Issue(tokens.TokenGenerationOptions{
		UserID:   user.ID,
		Email:    &user.Email,
		ExpSecs:  int64(s.tokenService.AccessTTL().Seconds()),
		Purpose:  claims.PurposeLogin,
		IssuedAt: &now,
	})
	if err != nil {
		return api.LoginSuccessWithJWT{}, err
	}
	refreshToken, err := s.tokenService.Issue(tokens.TokenGenerationOptions{
		UserID:   user.ID,
		ExpSecs:  int64(s.tokenService.RefreshTTL().Seconds()),
		Purpose:  claims.PurposeRefreshToken,
		IssuedAt: &now,
	})
	if err != nil {
		return api.LoginSuccessWithJWT{}, err
	}
	return api.LoginSuccessWithJWT{
		AccessToken:            accessToken.Token,
		RefreshToken:           refreshToken.Token,
		RefreshTokenExpiration: refreshToken.ExpiresAt,
		Expiration:             accessToken.ExpiresAt,
		Email:                  user.Email,
		Sub:                    user.ID,
	}, nil
}

func (s *service) recordFailure(ctx context.Context, clientIP string) {
	if s.guard == nil {
		return
	}
	if _, err := s.guard.IncrementLoginFailures(ctx, clientIP); err != nil {
		slog.WarnContext(ctx, "Recording login failure failed", slog.Any("error", err))
	}
}

// RefreshAccessToken rotates the refresh token. The access token in the response is the one that was sent.
func (s *service) RefreshAccessToken(ctx context.Context, accessToken, refreshToken string) (api.LoginSuccessWithJWT, error) {
	refreshed, err := s.tokenService.Refresh(accessToken, refreshToken, int64(s.tokenService.RefreshTTL().Seconds()))
	if err != nil {
		slog.DebugContext(ctx, "Refreshing token failed", slog.Any("error", err))
		return api.LoginSuccessWithJWT{}, httperror.New(httperror.Unauthorized)
	}
	if refreshed.Email == nil || *refreshed.Email == "" {
		return api.LoginSuccessWithJWT{}, httperror.NewWithMetadata(httperror.NotFound, "access token carries no email")
	}
	access, err := s.tokenService.Validate(refreshed.AccessToken)
	if err != nil {
		return api.LoginSuccessWithJWT{}, httperror.New(httperror.Unauthorized)
	}
	return api.LoginSuccessWithJWT{
		AccessToken:            refreshed.AccessToken,
		RefreshToken:           refreshed.Token.Token,
		RefreshTokenExpiration: refreshed.ExpiresAt,
		Expiration:             access.ExpiresAt,
		Email:                  *refreshed.Email,
		Sub:                    refreshed.Subject,
	}, nil
}
