package tokens

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spdeepak/rex-identity-server/internal/claims"
	"github.com/spdeepak/rex-identity-server/internal/error"
)

const (
	defaultBearerExpiry  = 15 * time.Minute
	defaultRefreshExpiry = 7 * 24 * time.Hour

	tokenInvalidOrExpired = "token invalid or expired"
)

type (
	service struct {
		codec             *claims.Codec
		clientID          string
		now               func() time.Time
		bearerExpiryTime  time.Duration
		refreshExpiryTime time.Duration
	}
	Option  func(*service)
	Service interface {
		// Issue signs a new token for options.UserID
		Issue(options TokenGenerationOptions) (Token, error)
		// Validate verifies a bearer token and returns its claims
		Validate(token string) (ValidationResult, error)
		// Refresh rotates the refresh token of the session that accessToken belongs to
		Refresh(accessToken, refreshToken string, refreshExpSecs int64) (RefreshedToken, error)
		// AccessTTL is the lifetime of tokens issued at login
		AccessTTL() time.Duration
		// RefreshTTL is the lifetime of refresh tokens
		RefreshTTL() time.Duration
	}
)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func WithExpiry(bearer, refresh time.Duration) Option {
	return func(s *service) {
		if bearer > 0 {
			s.bearerExpiryTime = bearer
		}
		if refresh > 0 {
			s.refreshExpiryTime = refresh
		}
	}
}

func NewService(signing SigningContext, opts ...Option) (Service, error) {
	s := &service{
		clientID:          signing.ClientID,
		now:               time.Now,
		bearerExpiryTime:  getOrDefaultExpiry("BEARER_TOKEN_EXPIRY", defaultBearerExpiry),
		refreshExpiryTime: getOrDefaultExpiry("REFRESH_TOKEN_EXPIRY", defaultRefreshExpiry),
	}
	for _, opt := range opts {
		opt(s)
	}
	codec, err := claims.NewCodec(signing.Secret, signing.ClientID, claims.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	s.codec = codec
	return s, nil
}

func getOrDefaultExpiry(env string, defaultExpire time.Duration) time.Duration {
	expireDuration, expireDurationPresent := os.LookupEnv(env)
	if !expireDurationPresent {
		return defaultExpire
	}
	expiryTime, err := time.ParseDuration(expireDuration)
	if err != nil || expiryTime <= 0 {
		slog.Warn(fmt.Sprintf("%s is not a valid duration, using default %s", env, defaultExpire))
		return defaultExpire
	}
	return expiryTime
}

func (s *service) AccessTTL() time.Duration {
	return s.bearerExpiryTime
}

func (s *service) RefreshTTL() time.Duration {
	return s.refreshExpiryTime
}

func (s *service) Issue(options TokenGenerationOptions) (Token, error) {
	if options.UserID == 0 {
		return Token{}, httperror.NewWithMetadata(httperror.InvalidInput, "user id is required")
	}
	if options.ExpSecs <= 0 {
		return Token{}, httperror.NewWithMetadata(httperror.InvalidInput, "expiry must be positive")
	}
	if options.Purpose == "" {
		return Token{}, httperror.NewWithMetadata(httperror.InvalidInput, "purpose is required")
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(options.ExpSecs) * time.Second)
	accessClaims := &claims.AccessTokenClaims{
		RegisteredClaims: claims.RegisteredClaims{
			Subject:   options.UserID,
			Issuer:    s.clientID,
			Audience:  jwt.ClaimStrings{s.clientID},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
			TokenType: options.Purpose,
		},
		Email: options.Email,
	}
	if options.IssuedAt != nil {
		accessClaims.IssuedAt = jwt.NewNumericDate(*options.IssuedAt)
	}

	signed, err := s.codec.Encode(accessClaims)
	if err != nil {
		return Token{}, httperror.NewWithMetadata(httperror.TokenCreationFailed, err.Error())
	}
	return Token{
		Token:     signed,
		ExpiresAt: accessClaims.ExpiresAt.Unix(),
		Subject:   options.UserID,
		Email:     options.Email,
		Purpose:   options.Purpose,
	}, nil
}

func (s *service) Validate(token string) (ValidationResult, error) {
	if token == "" {
		return ValidationResult{}, httperror.NewWithMetadata(httperror.InvalidInput, "token is empty")
	}
	var accessClaims claims.AccessTokenClaims
	if err := s.codec.Decode(token, &accessClaims); err != nil {
		slog.Debug("Token validation failed", slog.Any("error", err))
		return ValidationResult{}, httperror.NewWithMetadata(httperror.Unauthorized, tokenInvalidOrExpired)
	}
	result := ValidationResult{
		Subject:   accessClaims.Subject,
		Email:     accessClaims.Email,
		ExpiresAt: accessClaims.ExpiresAt.Unix(),
		ID:        accessClaims.ID,
		TokenType: accessClaims.TokenType,
	}
	if accessClaims.IssuedAt != nil {
		iat := accessClaims.IssuedAt.Unix()
		result.IssuedAt = &iat
	}
	return result, nil
}

// Refresh issues a new RefreshToken-purpose token for the subject shared by both tokens. The access token is
// decoded with expiry enforced and is handed back unchanged.
func (s *service) Refresh(accessToken, refreshToken string, refreshExpSecs int64) (RefreshedToken, error) {
	if accessToken == "" || refreshToken == "" {
		return RefreshedToken{}, httperror.NewWithMetadata(httperror.InvalidInput, "access and refresh tokens are required")
	}

	var refreshClaims claims.RefreshTokenClaims
	if err := s.codec.Decode(refreshToken, &refreshClaims); err != nil {
		return RefreshedToken{}, httperror.NewWithMetadata(httperror.Unauthorized, wrapDecodeError("refresh", err))
	}
	if refreshClaims.TokenType != claims.PurposeRefreshToken {
		return RefreshedToken{}, httperror.NewWithMetadata(httperror.Unauthorized, "refresh token has the wrong purpose")
	}

	var accessClaims claims.AccessTokenClaims
	if err := s.codec.Decode(accessToken, &accessClaims); err != nil {
		return RefreshedToken{}, httperror.NewWithMetadata(httperror.Unauthorized, wrapDecodeError("access", err))
	}

	if accessClaims.Subject != refreshClaims.Subject {
		return RefreshedToken{}, httperror.NewWithMetadata(httperror.Unauthorized, "token subjects do not match")
	}

	now := s.now()
	rotated, err := s.Issue(TokenGenerationOptions{
		UserID:   accessClaims.Subject,
		Email:    accessClaims.Email,
		ExpSecs:  refreshExpSecs,
		Purpose:  claims.PurposeRefreshToken,
		IssuedAt: &now,
	})
	if err != nil {
		return RefreshedToken{}, err
	}
	return RefreshedToken{
		Token:       rotated,
		AccessToken: accessToken,
	}, nil
}

func wrapDecodeError(kind string, err error) string {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return fmt.Sprintf("%s token expired", kind)
	}
	return fmt.Sprintf("%s token invalid: %s", kind, err.Error())
}
