package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spdeepak/rex-identity-server/api"
	"github.com/spdeepak/rex-identity-server/config"
	"github.com/spdeepak/rex-identity-server/internal/claims"
	"github.com/spdeepak/rex-identity-server/internal/db"
	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/logging"
	"github.com/spdeepak/rex-identity-server/internal/permissions"
	permissionsRepo "github.com/spdeepak/rex-identity-server/internal/permissions/repository"
	"github.com/spdeepak/rex-identity-server/internal/roles"
	roleRepo "github.com/spdeepak/rex-identity-server/internal/roles/repository"
	"github.com/spdeepak/rex-identity-server/internal/tokens"
	"github.com/spdeepak/rex-identity-server/internal/users"
	userRepo "github.com/spdeepak/rex-identity-server/internal/users/repository"
	"github.com/spdeepak/rex-identity-server/middleware"
)

const (
	testEmail        = "first.last@example.com"
	testPassword     = "$trong_P@$$w0rd"
	testClientIP     = "192.0.2.1"
	unauthorizedBody = `{"errorCode":"REX0002","description":"Unauthorized"}`
)

var generous = config.RateLimit{Requests: 1000, Per: time.Second}

type serverFixture struct {
	router          *gin.Engine
	tokenService    tokens.Service
	userQuery       *userRepo.MockQuerier
	roleQuery       *roleRepo.MockQuerier
	permissionQuery *permissionsRepo.MockQuerier
	miniredis       *miniredis.Miniredis
}

type fixtureOptions struct {
	authLimit       config.RateLimit
	readinessChecks []ReadinessCheck
}

func newServerFixture(t *testing.T, options fixtureOptions) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if options.authLimit.Requests == 0 {
		options.authLimit = generous
	}

	tokenService, err := tokens.NewService(
		tokens.SigningContext{Secret: []byte("JWT_$€Cr€t"), ClientID: "rex-identity-server"},
		tokens.WithExpiry(15*time.Minute, 7*24*time.Hour),
	)
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	guard := db.NewRedisClientFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)

	userQuery := userRepo.NewMockQuerier(t)
	roleQuery := roleRepo.NewMockQuerier(t)
	permissionQuery := permissionsRepo.NewMockQuerier(t)
	roleStorage := roles.NewStorage(roleQuery)
	permissionStorage := permissions.NewStorage(permissionQuery)
	resolver := permissions.NewService(roleStorage, permissionStorage)
	userService := users.NewService(
		users.NewStorage(userQuery),
		users.NewPasswordHasher(bcrypt.MinCost),
		tokenService,
		users.WithLoginGuard(guard, 3),
	)

	swagger, err := api.GetSwagger()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	router, err := newRouter(NewServer(userService, roleStorage, permissionStorage, options.readinessChecks...), routerDeps{
		tokenService:  tokenService,
		roleLookup:    roleStorage,
		resolver:      resolver,
		swagger:       swagger,
		authLimiter:   middleware.NewRateLimiter(ctx, func() config.RateLimit { return options.authLimit }),
		apiLimiter:    middleware.NewRateLimiter(ctx, func() config.RateLimit { return generous }),
		strictLimiter: middleware.NewRateLimiter(ctx, func() config.RateLimit { return generous }),
	})
	require.NoError(t, err)

	return &serverFixture{
		router:          router,
		tokenService:    tokenService,
		userQuery:       userQuery,
		roleQuery:       roleQuery,
		permissionQuery: permissionQuery,
		miniredis:       mr,
	}
}

func (f *serverFixture) withUser(t *testing.T, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	f.userQuery.On("GetUserByEmail", mock.Anything, testEmail).Return(userRepo.GetUserByEmailRow{
		ID:           42,
		Email:        testEmail,
		DisplayName:  "First Last",
		PasswordHash: string(hash),
		IsActived:    active,
	}, nil)
}

func (f *serverFixture) withRoles(userID int64, names ...string) {
	rows := make([]roleRepo.GetActiveRolesByUserIDRow, len(names))
	for i, name := range names {
		rows[i] = roleRepo.GetActiveRolesByUserIDRow{ID: int64(i + 1), Name: name}
	}
	f.roleQuery.On("GetActiveRolesByUserID", mock.Anything, userID).Return(rows, nil)
}

func (f *serverFixture) accessToken(t *testing.T, userID int64) string {
	t.Helper()
	email := testEmail
	token, err := f.tokenService.Issue(tokens.TokenGenerationOptions{UserID: userID, Email: &email, ExpSecs: 900, Purpose: claims.PurposeLogin})
	require.NoError(t, err)
	return token.Token
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authorized(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestServer_GetLive(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	rec := f.do(httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(logging.CorrelationIdHeader))
}

func TestServer_GetReady(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	failing := func(ctx context.Context) error { return errors.New("connection refused") }

	t.Run("all checks pass", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{readinessChecks: []ReadinessCheck{ok, ok}})
		rec := f.do(httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("a check fails", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{readinessChecks: []ReadinessCheck{ok, failing}})
		rec := f.do(httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_Login_OK(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.withUser(t, true)

	rec := f.do(loginRequest(t, testEmail, testPassword))

	require.Equal(t, http.StatusOK, rec.Code)
	var response api.LoginSuccessWithJWT
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, testEmail, response.Email)
	assert.Equal(t, int64(42), response.Sub)
	assert.Greater(t, response.RefreshTokenExpiration, response.Expiration)

	validated, err := f.tokenService.Validate(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), validated.Subject)

	accessCookie := cookieNamed(rec, accessTokenCookie)
	require.NotNil(t, accessCookie)
	assert.Equal(t, response.AccessToken, accessCookie.Value)
	assert.True(t, accessCookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, accessCookie.SameSite)
	assert.Equal(t, authCookiePath, accessCookie.Path)
	refreshCookie := cookieNamed(rec, refreshTokenCookie)
	require.NotNil(t, refreshCookie)
	assert.Equal(t, response.RefreshToken, refreshCookie.Value)
}

func TestServer_Login_NOK_InvalidCredentials(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withUser(t, true)
		rec := f.do(loginRequest(t, testEmail, "wrong"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"errorCode":"REX0006","description":"Invalid username or password"}`, rec.Body.String())
		assert.Nil(t, cookieNamed(rec, accessTokenCookie))
	})
	t.Run("inactive user", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withUser(t, false)
		rec := f.do(loginRequest(t, testEmail, testPassword))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("unknown user", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.userQuery.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(userRepo.GetUserByEmailRow{}, pgx.ErrNoRows)
		rec := f.do(loginRequest(t, "nobody@example.com", testPassword))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"errorCode":"REX0006","description":"Invalid username or password"}`, rec.Body.String())
	})
}

func TestServer_Login_NOK_DatabaseError(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.userQuery.On("GetUserByEmail", mock.Anything, testEmail).Return(userRepo.GetUserByEmailRow{}, errors.New("connection reset"))

	rec := f.do(loginRequest(t, testEmail, testPassword))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"errorCode":"REX0004","description":"Database operation failed"}`, rec.Body.String())
}

func TestServer_Login_NOK_InvalidBody(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"first.last@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := f.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.userQuery.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestServer_Login_NOK_TooManyFailures(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.withUser(t, true)

	for i := 0; i < 3; i++ {
		rec := f.do(loginRequest(t, testEmail, "wrong"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := f.do(loginRequest(t, testEmail, testPassword))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"errorCode":"REX0009","description":"Too many failed login attempts. Please try again later."}`, rec.Body.String())
	count, err := f.miniredis.Get("login_failures:" + testClientIP)
	require.NoError(t, err)
	assert.Equal(t, "3", count)
}

func TestServer_Login_NOK_RateLimited(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{authLimit: config.RateLimit{Requests: 1, Per: time.Minute}})
	f.withUser(t, true)

	first := f.do(loginRequest(t, testEmail, testPassword))
	second := f.do(loginRequest(t, testEmail, testPassword))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestServer_Refresh_OK(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.withUser(t, true)
	login := f.do(loginRequest(t, testEmail, testPassword))
	require.Equal(t, http.StatusOK, login.Code)
	var session api.LoginSuccessWithJWT
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))

	t.Run("refresh token from cookie", func(t *testing.T) {
		req := authorized(http.MethodPost, "/api/v1/auth/refresh", session.AccessToken)
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: session.RefreshToken})
		rec := f.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		var refreshed api.LoginSuccessWithJWT
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
		assert.Equal(t, session.AccessToken, refreshed.AccessToken)
		assert.Equal(t, testEmail, refreshed.Email)
		assert.Equal(t, int64(42), refreshed.Sub)
		assert.NotEmpty(t, refreshed.RefreshToken)
		assert.NotNil(t, cookieNamed(rec, refreshTokenCookie))
	})
	t.Run("refresh token from body", func(t *testing.T) {
		body, err := json.Marshal(api.RefreshRequest{RefreshToken: session.RefreshToken})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
		rec := f.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		var refreshed api.LoginSuccessWithJWT
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
		assert.Equal(t, int64(42), refreshed.Sub)
	})
}

func TestServer_Refresh_NOK(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.withUser(t, true)
	login := f.do(loginRequest(t, testEmail, testPassword))
	require.Equal(t, http.StatusOK, login.Code)
	var session api.LoginSuccessWithJWT
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: session.RefreshToken})
		rec := f.do(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("missing refresh token", func(t *testing.T) {
		rec := f.do(authorized(http.MethodPost, "/api/v1/auth/refresh", session.AccessToken))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})
	t.Run("access token used as refresh token", func(t *testing.T) {
		req := authorized(http.MethodPost, "/api/v1/auth/refresh", session.AccessToken)
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: session.AccessToken})
		rec := f.do(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})
	t.Run("garbage access token", func(t *testing.T) {
		req := authorized(http.MethodPost, "/api/v1/auth/refresh", "not-a-jwt")
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: session.RefreshToken})
		rec := f.do(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})
}

func TestServer_Logout(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.withRoles(42, identity.RoleContentCreator)

	rec := f.do(authorized(http.MethodDelete, "/api/v1/auth/logout", f.accessToken(t, 42)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	accessCookie := cookieNamed(rec, accessTokenCookie)
	require.NotNil(t, accessCookie)
	assert.Empty(t, accessCookie.Value)
	assert.True(t, accessCookie.MaxAge < 0)
}

func TestServer_Logout_NOK_Unauthenticated(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	rec := f.do(httptest.NewRequest(http.MethodDelete, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, unauthorizedBody, rec.Body.String())
}

func TestServer_GetMe(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.withRoles(42, identity.RoleContentCreator)

	rec := f.do(authorized(http.MethodGet, "/api/v1/users/me", f.accessToken(t, 42)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":42,"email":"first.last@example.com","roles":["ContentCreator"],"permissions":[]}`, rec.Body.String())
}

func TestServer_GetMe_NOK(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	tests := []struct {
		name          string
		authorization string
	}{
		{name: "no header"},
		{name: "wrong scheme", authorization: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", authorization: "Bearer garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := f.do(req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, unauthorizedBody, rec.Body.String())
		})
	}
}

func TestServer_GetRolesOfUser(t *testing.T) {
	t.Run("admin bypasses permission check", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withRoles(1, identity.RoleAdmin)
		f.withRoles(42, identity.RoleContentCreator)

		rec := f.do(authorized(http.MethodGet, "/api/v1/users/42/roles", f.accessToken(t, 1)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":42,"roles":["ContentCreator"]}`, rec.Body.String())
		f.permissionQuery.AssertNotCalled(t, "UserHasPermission", mock.Anything, mock.Anything)
	})
	t.Run("direct permission grant", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withRoles(7)
		f.withRoles(42, identity.RoleContentCreator)
		f.permissionQuery.On("UserHasPermission", mock.Anything, permissionsRepo.UserHasPermissionParams{UserID: 7, Codes: []string{identity.UserRoleRead}}).Return(true, nil)

		rec := f.do(authorized(http.MethodGet, "/api/v1/users/42/roles", f.accessToken(t, 7)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("no grant", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withRoles(7, identity.RoleContentCreator)
		f.permissionQuery.On("UserHasPermission", mock.Anything, mock.Anything).Return(false, nil)
		f.permissionQuery.On("RolesHavePermission", mock.Anything, mock.Anything).Return(false, nil)

		rec := f.do(authorized(http.MethodGet, "/api/v1/users/42/roles", f.accessToken(t, 7)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})
	t.Run("invalid user id", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withRoles(1, identity.RoleAdmin)
		rec := f.do(authorized(http.MethodGet, "/api/v1/users/abc/roles", f.accessToken(t, 1)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_InvalidPathParam_NOK_Unauthenticated(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	for _, path := range []string{"/api/v1/users/abc/roles", "/api/v1/users/0/permissions"} {
		t.Run(path, func(t *testing.T) {
			rec := f.do(httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, unauthorizedBody, rec.Body.String())
		})
	}
}

func TestServer_GetPermissionsOfUser(t *testing.T) {
	t.Run("role derived grant", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withRoles(7, identity.RoleContentCreator)
		f.permissionQuery.On("UserHasPermission", mock.Anything, mock.Anything).Return(false, nil)
		f.permissionQuery.On("RolesHavePermission", mock.Anything, permissionsRepo.RolesHavePermissionParams{RoleIds: []int64{1}, Codes: []string{identity.UserPermissionRead}}).Return(true, nil)
		f.permissionQuery.On("ListUserPermissionCodes", mock.Anything, int64(42)).Return([]string{identity.FlashcardRead}, nil)

		rec := f.do(authorized(http.MethodGet, "/api/v1/users/42/permissions", f.accessToken(t, 7)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":42,"permissions":["flashcard:read"]}`, rec.Body.String())
	})
	t.Run("lookup fails", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withRoles(1, identity.RoleAdmin)
		f.permissionQuery.On("ListUserPermissionCodes", mock.Anything, int64(42)).Return(nil, errors.New("connection reset"))

		rec := f.do(authorized(http.MethodGet, "/api/v1/users/42/permissions", f.accessToken(t, 1)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
	t.Run("permission check fails closed", func(t *testing.T) {
		f := newServerFixture(t, fixtureOptions{})
		f.withRoles(7, identity.RoleContentCreator)
		f.permissionQuery.On("UserHasPermission", mock.Anything, mock.Anything).Return(false, errors.New("connection reset"))

		rec := f.do(authorized(http.MethodGet, "/api/v1/users/42/permissions", f.accessToken(t, 7)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})
}

func TestServer_AdminPing(t *testing.T) {
	tests := []struct {
		name   string
		roles  []string
		status int
	}{
		{name: "root admin", roles: []string{identity.RoleRootAdmin}, status: http.StatusOK},
		{name: "admin", roles: []string{identity.RoleAdmin}, status: http.StatusOK},
		{name: "content creator", roles: []string{identity.RoleContentCreator}, status: http.StatusUnauthorized},
		{name: "no roles", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t, fixtureOptions{})
			f.withRoles(42, tt.roles...)

			rec := f.do(authorized(http.MethodGet, "/api/v1/admin/ping", f.accessToken(t, 42)))

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
			} else {
				assert.JSONEq(t, unauthorizedBody, rec.Body.String())
			}
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	f := newServerFixture(t, fixtureOptions{})
	f.do(httptest.NewRequest(http.MethodGet, "/live", nil))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rex_identity_api_request_counter")
}

func TestMaxAge(t *testing.T) {
	assert.Equal(t, 1, maxAge(time.Now().Add(-time.Hour).Unix()))
	assert.InDelta(t, 3600, maxAge(time.Now().Add(time.Hour).Unix()), 2)
}
