package claims

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose is carried in the token_type claim.
type Purpose string

const (
	PurposeLogin        Purpose = "Login"
	PurposeRefreshToken Purpose = "RefreshToken"
)

// RegisteredClaims is the claim set shared by access and refresh tokens. Unlike jwt.RegisteredClaims the
// subject is the numeric user id.
type RegisteredClaims struct {
	Subject   int64            `json:"sub"`
	Issuer    string           `json:"iss"`
	Audience  jwt.ClaimStrings `json:"aud"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
	IssuedAt  *jwt.NumericDate `json:"iat,omitempty"`
	ID        string           `json:"jti"`
	TokenType Purpose          `json:"token_type"`
}

type AccessTokenClaims struct {
	RegisteredClaims
	Email *string `json:"email,omitempty"`
}

type RefreshTokenClaims struct {
	RegisteredClaims
}

func (c RegisteredClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.ExpiresAt, nil
}

func (c RegisteredClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return c.IssuedAt, nil
}

func (c RegisteredClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c RegisteredClaims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

func (c RegisteredClaims) GetSubject() (string, error) {
	return strconv.FormatInt(c.Subject, 10), nil
}

func (c RegisteredClaims) GetAudience() (jwt.ClaimStrings, error) {
	return c.Audience, nil
}
