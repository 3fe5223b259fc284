package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var spec []byte

type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required"`
	Password string              `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type LoginSuccessWithJWT struct {
	AccessToken            string `json:"access_token"`
	RefreshToken           string `json:"refresh_token"`
	RefreshTokenExpiration int64  `json:"refresh_token_expiration"`
	Expiration             int64  `json:"expiration"`
	Email                  string `json:"email"`
	Sub                    int64  `json:"sub"`
}

type UserRoles struct {
	UserId int64    `json:"user_id"`
	Roles  []string `json:"roles"`
}

type UserPermissions struct {
	UserId      int64    `json:"user_id"`
	Permissions []string `json:"permissions"`
}

// GetSwagger returns the parsed OpenAPI document embedded in the binary.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("error loading swagger spec: %w", err)
	}
	return swagger, nil
}
