package main

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/permissions"
	"github.com/spdeepak/rex-identity-server/internal/tokens"
	"github.com/spdeepak/rex-identity-server/middleware"
)

type routerDeps struct {
	tokenService  tokens.Service
	roleLookup    identity.RoleLookup
	resolver      permissions.Service
	swagger       *openapi3.T
	authLimiter   *middleware.RateLimiter
	apiLimiter    *middleware.RateLimiter
	strictLimiter *middleware.RateLimiter
	skipPaths     []string
}

func newRouter(server *Server, deps routerDeps) (*gin.Engine, error) {
	validator, err := middleware.RequestValidator(deps.swagger)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	// lets context lookups on *gin.Context reach the request context, where the principal lives
	router.ContextWithFallback = true
	router.Use(middleware.CorrelationID())
	router.Use(middleware.ErrorMiddleware)
	router.Use(middleware.GinLogger())
	router.Use(middleware.MetricHandler())

	router.GET("/live", server.GetLive)
	router.GET("/ready", server.GetReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticate := middleware.Authenticate(deps.tokenService, deps.roleLookup, deps.resolver, middleware.WithSkipPaths(deps.skipPaths...))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth", deps.authLimiter.Middleware())
	auth.POST("/login", validator, server.Login)
	auth.POST("/refresh", validator, server.Refresh)
	auth.DELETE("/logout", authenticate, validator, server.Logout)

	// protected groups validate after Authenticate
	usersGroup := v1.Group("/users", deps.apiLimiter.Middleware(), authenticate, validator)
	usersGroup.GET("/me", server.GetMe)
	usersGroup.GET("/:id/roles", middleware.Authorize(deps.resolver, identity.UserRoleRead), server.GetRolesOfUser)
	usersGroup.GET("/:id/permissions", middleware.Authorize(deps.resolver, identity.UserPermissionRead), server.GetPermissionsOfUser)

	admin := v1.Group("/admin",
		deps.strictLimiter.Middleware(),
		middleware.Authenticate(deps.tokenService, deps.roleLookup, deps.resolver, middleware.WithRequiredRoles(identity.RoleRootAdmin, identity.RoleAdmin)),
		validator,
	)
	admin.GET("/ping", server.AdminPing)

	return router, nil
}
