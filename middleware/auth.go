package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spdeepak/rex-identity-server/internal/error"
	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/permissions"
	"github.com/spdeepak/rex-identity-server/internal/tokens"
)

const (
	bearerPrefix = "Bearer "
	// AuthorizedKey is set on the gin context once the route's permission requirement passed.
	AuthorizedKey = "authorized"
)

type authOptions struct {
	skipPaths     []string
	requiredRoles []string
	bypassRole    string
}

type AuthOption func(*authOptions)

// WithSkipPaths lets requests to paths pass through without a token.
func WithSkipPaths(paths ...string) AuthOption {
	return func(o *authOptions) {
		o.skipPaths = append(o.skipPaths, paths...)
	}
}

// WithRequiredRoles rejects principals that hold none of roles.
func WithRequiredRoles(roles ...string) AuthOption {
	return func(o *authOptions) {
		o.requiredRoles = append(o.requiredRoles, roles...)
	}
}

// WithRoleBypass changes the role that satisfies any required role set. An empty name disables it.
func WithRoleBypass(role string) AuthOption {
	return func(o *authOptions) {
		o.bypassRole = role
	}
}

// Unauthorized aborts with the same 401 body whichever check failed.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(httperror.New(httperror.Unauthorized).StatusCode, httperror.New(httperror.Unauthorized))
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	return token, token != ""
}

// PrincipalFrom returns the principal attached by Authenticate.
func PrincipalFrom(c *gin.Context) (identity.Principal, bool) {
	if c.Request == nil {
		return identity.Principal{}, false
	}
	return identity.PrincipalFromContext(c.Request.Context())
}

// Authenticate verifies the bearer token, loads the caller's active roles and attaches the principal to the
// request context. Every failure is answered with 401 and stops the chain.
func Authenticate(tokenService tokens.Service, roleLookup identity.RoleLookup, resolver permissions.Service, opts ...AuthOption) gin.HandlerFunc {
	options := &authOptions{bypassRole: identity.RoleRootAdmin}
	for _, opt := range opts {
		opt(options)
	}

	return func(c *gin.Context) {
		if slices.Contains(options.skipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		token, ok := BearerToken(c)
		if !ok {
			rejectAuthentication(c, "missing_token", nil)
			return
		}

		validated, err := tokenService.Validate(token)
		if err != nil {
			rejectAuthentication(c, "invalid_token", err)
			return
		}

		activeRoles, err := roleLookup.GetActiveRoles(c, validated.Subject)
		if err != nil {
			rejectAuthentication(c, "role_lookup_failed", err)
			return
		}

		principal := identity.Principal{
			ID:          validated.Subject,
			Email:       validated.Email,
			Roles:       identity.RoleNames(activeRoles),
			Permissions: []string{},
		}

		if len(options.requiredRoles) > 0 && !(options.bypassRole != "" && principal.HasRole(options.bypassRole)) {
			if !resolver.HoldsAnyRole(principal, options.requiredRoles) {
				rejectAuthentication(c, "missing_role", nil)
				return
			}
		}

		c.Request = c.Request.WithContext(identity.ContextWithPrincipal(c.Request.Context(), principal))
		authenticationTotal.WithLabelValues("accepted").Inc()
		c.Next()
	}
}

// Authorize lets the request through when the principal holds any of codes. It must run after Authenticate.
func Authorize(resolver permissions.Service, codes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(codes) == 0 {
			authorize(c, "no_requirement")
			return
		}

		principal, ok := PrincipalFrom(c)
		if !ok {
			rejectAuthorization(c, "no_principal", nil)
			return
		}

		if resolver.BypassesPermissions(principal) {
			authorize(c, "bypass")
			return
		}

		authorized, err := resolver.IsAuthorized(c, principal.ID, codes)
		if err != nil {
			rejectAuthorization(c, "lookup_failed", err)
			return
		}
		if !authorized {
			rejectAuthorization(c, "denied", nil)
			return
		}
		authorize(c, "granted")
	}
}

func authorize(c *gin.Context, result string) {
	authorizationTotal.WithLabelValues(result).Inc()
	c.Set(AuthorizedKey, true)
	c.Next()
}

func rejectAuthentication(c *gin.Context, reason string, err error) {
	authenticationTotal.WithLabelValues(reason).Inc()
	logRejection(c, "Authentication rejected", reason, err)
	Unauthorized(c)
}

func rejectAuthorization(c *gin.Context, reason string, err error) {
	authorizationTotal.WithLabelValues(reason).Inc()
	logRejection(c, "Authorization rejected", reason, err)
	Unauthorized(c)
}
