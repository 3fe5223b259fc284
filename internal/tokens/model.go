package tokens

import (
	"time"

	"github.com/spdeepak/rex-identity-server/internal/claims"
)

// SigningContext is built once at startup and shared read-only by every request.
type SigningContext struct {
	Secret   []byte
	ClientID string
}

type TokenGenerationOptions struct {
	UserID   int64
	Email    *string
	ExpSecs  int64
	Purpose  claims.Purpose
	IssuedAt *time.Time
	// Permissions and Roles are accepted for forward compatibility but are not encoded yet.
	Permissions []string
	Roles       []string
}

type Token struct {
	Token     string
	ExpiresAt int64
	Subject   int64
	Email     *string
	Purpose   claims.Purpose
}

type ValidationResult struct {
	Subject   int64
	Email     *string
	ExpiresAt int64
	IssuedAt  *int64
	ID        string
	TokenType claims.Purpose
}

// RefreshedToken is the rotated refresh token together with the access token it was rotated for.
type RefreshedToken struct {
	Token
	AccessToken string
}
