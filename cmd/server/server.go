package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spdeepak/rex-identity-server/api"
	"github.com/spdeepak/rex-identity-server/internal/error"
	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/permissions"
	"github.com/spdeepak/rex-identity-server/internal/users"
	"github.com/spdeepak/rex-identity-server/middleware"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
	authCookiePath     = "/api/v1"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	userService       users.Service
	roleLookup        identity.RoleLookup
	permissionStorage permissions.Storage
	readinessChecks   []ReadinessCheck
}

func NewServer(userService users.Service, roleLookup identity.RoleLookup, permissionStorage permissions.Storage, readinessChecks ...ReadinessCheck) *Server {
	return &Server{
		userService:       userService,
		roleLookup:        roleLookup,
		permissionStorage: permissionStorage,
		readinessChecks:   readinessChecks,
	}
}

func (s *Server) GetLive(ctx *gin.Context) {
	ctx.Status(http.StatusOK)
}

func (s *Server) GetReady(ctx *gin.Context) {
	for _, check := range s.readinessChecks {
		if err := check(ctx); err != nil {
			slog.WarnContext(ctx, "Readiness check failed", slog.Any("error", err))
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
	}
	ctx.Status(http.StatusOK)
}

func (s *Server) Login(ctx *gin.Context) {
	var login api.LoginRequest
	if err := ctx.ShouldBindJSON(&login); err != nil {
		ctx.Error(httperror.NewWithMetadata(httperror.InvalidRequestBody, err.Error()))
		return
	}

	response, err := s.userService.Login(ctx, ctx.ClientIP(), login)
	if err != nil {
		ctx.Error(err)
		return
	}
	s.setAuthCookies(ctx, response)
	ctx.JSON(http.StatusOK, response)
}

// Refresh takes the access token from the Authorization header and the refresh token from the refresh_token
// cookie or, failing that, from the request body.
func (s *Server) Refresh(ctx *gin.Context) {
	accessToken, ok := middleware.BearerToken(ctx)
	if !ok {
		ctx.Error(httperror.NewWithMetadata(httperror.InvalidInput, "authorization header is required"))
		return
	}

	refreshToken, _ := ctx.Cookie(refreshTokenCookie)
	if refreshToken == "" && ctx.Request.ContentLength != 0 {
		var refresh api.RefreshRequest
		if err := ctx.ShouldBindJSON(&refresh); err != nil {
			ctx.Error(httperror.NewWithMetadata(httperror.InvalidRequestBody, err.Error()))
			return
		}
		refreshToken = refresh.RefreshToken
	}
	if refreshToken == "" {
		middleware.Unauthorized(ctx)
		return
	}

	response, err := s.userService.RefreshAccessToken(ctx, accessToken, refreshToken)
	if err != nil {
		if errors.Is(err, httperror.New(httperror.DatabaseError)) {
			ctx.Error(err)
			return
		}
		middleware.Unauthorized(ctx)
		return
	}
	s.setAuthCookies(ctx, response)
	ctx.JSON(http.StatusOK, response)
}

func (s *Server) Logout(ctx *gin.Context) {
	secure := ctx.Request.TLS != nil
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(accessTokenCookie, "", -1, authCookiePath, "", secure, true)
	ctx.SetCookie(refreshTokenCookie, "", -1, authCookiePath, "", secure, true)
	ctx.Status(http.StatusNoContent)
}

func (s *Server) GetMe(ctx *gin.Context) {
	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		middleware.Unauthorized(ctx)
		return
	}
	ctx.JSON(http.StatusOK, principal)
}

func (s *Server) GetRolesOfUser(ctx *gin.Context) {
	userID, ok := userIDParam(ctx)
	if !ok {
		return
	}
	activeRoles, err := s.roleLookup.GetActiveRoles(ctx, userID)
	if err != nil {
		ctx.Error(httperror.NewWithMetadata(httperror.DatabaseError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, api.UserRoles{
		UserId: userID,
		Roles:  identity.RoleNames(activeRoles),
	})
}

func (s *Server) GetPermissionsOfUser(ctx *gin.Context) {
	userID, ok := userIDParam(ctx)
	if !ok {
		return
	}
	codes, err := s.permissionStorage.ListPermissionCodes(ctx, userID)
	if err != nil {
		ctx.Error(httperror.NewWithMetadata(httperror.DatabaseError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, api.UserPermissions{
		UserId:      userID,
		Permissions: codes,
	})
}

func (s *Server) AdminPing(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (s *Server) setAuthCookies(ctx *gin.Context, response api.LoginSuccessWithJWT) {
	secure := ctx.Request.TLS != nil
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(accessTokenCookie, response.AccessToken, maxAge(response.Expiration), authCookiePath, "", secure, true)
	ctx.SetCookie(refreshTokenCookie, response.RefreshToken, maxAge(response.RefreshTokenExpiration), authCookiePath, "", secure, true)
}

func userIDParam(ctx *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		ctx.Error(httperror.NewWithMetadata(httperror.InvalidInput, "user id must be a positive integer"))
		return 0, false
	}
	return userID, true
}

// maxAge turns an absolute unix expiry into a cookie Max-Age, never below one second.
func maxAge(expiresAt int64) int {
	seconds := time.Until(time.Unix(expiresAt, 0)).Seconds()
	if seconds < 1 {
		return 1
	}
	return int(seconds)
}
