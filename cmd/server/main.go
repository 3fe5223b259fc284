package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spdeepak/rex-identity-server/api"
	"github.com/spdeepak/rex-identity-server/config"
	"github.com/spdeepak/rex-identity-server/internal/db"
	"github.com/spdeepak/rex-identity-server/internal/jwt_secret"
	jwt_secretRepo "github.com/spdeepak/rex-identity-server/internal/jwt_secret/repository"
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

func main() {
	slog.SetDefault(slog.New(logging.NewDefaultHandler()))
	zerologger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerologLevel(logging.GetLogLevelFromEnv()))
	zerolog.DefaultContextLogger = &zerologger
	log.Logger = zerologger

	cfg := config.NewConfiguration()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(cfg.Postgres); err != nil {
		slog.Error("Failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	dbConnection, err := db.Connect(ctx, cfg.Postgres)
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConnection.Close()

	//JWT SecretKey
	jwtSecretStorage := jwt_secret.NewStorage(jwt_secretRepo.New(dbConnection))
	secret, err := jwt_secret.GetOrCreateSecret(ctx, cfg.Token, jwtSecretStorage)
	if err != nil {
		slog.Error("Failed to resolve JWT secret", slog.Any("error", err))
		os.Exit(1)
	}
	//JWT Token
	tokenService, err := tokens.NewService(
		tokens.SigningContext{Secret: secret, ClientID: cfg.Token.ClientID},
		tokens.WithExpiry(cfg.Token.AccessTTL, cfg.Token.RefreshTTL),
	)
	if err != nil {
		slog.Error("Failed to create token service", slog.Any("error", err))
		os.Exit(1)
	}
	//Roles
	roleStorage := roles.NewStorage(roleRepo.New(dbConnection))
	//Permissions
	permissionStorage := permissions.NewStorage(permissionsRepo.New(dbConnection))
	resolver := permissions.NewService(roleStorage, permissionStorage)
	//Users
	readinessChecks := []ReadinessCheck{dbConnection.Ping}
	userOptions := []users.Option{}
	if cfg.Redis.Addr != "" {
		redisClient, err := db.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.FailureWindow)
		if err != nil {
			slog.Error("Failed to connect to Redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisClient.Close()
		userOptions = append(userOptions, users.WithLoginGuard(redisClient, cfg.Redis.MaxLoginFailures))
		readinessChecks = append(readinessChecks, redisClient.Ping)
	} else {
		slog.Warn("Redis is not configured, login attempts are not throttled per client")
	}
	userService := users.NewService(users.NewStorage(userRepo.New(dbConnection)), users.NewPasswordHasher(0), tokenService, userOptions...)

	server := NewServer(userService, roleStorage, permissionStorage, readinessChecks...)

	swagger, err := api.GetSwagger()
	if err != nil {
		slog.Error("Error loading swagger spec", slog.Any("error", err))
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := newRouter(server, routerDeps{
		tokenService:  tokenService,
		roleLookup:    roleStorage,
		resolver:      resolver,
		swagger:       swagger,
		authLimiter:   middleware.NewRateLimiter(ctx, func() config.RateLimit { return cfg.RateLimitFor("auth") }),
		apiLimiter:    middleware.NewRateLimiter(ctx, func() config.RateLimit { return cfg.RateLimitFor("api") }),
		strictLimiter: middleware.NewRateLimiter(ctx, func() config.RateLimit { return cfg.RateLimitFor("strict") }),
		skipPaths:     cfg.Auth.SkipPaths,
	})
	if err != nil {
		slog.Error("Failed to build router", slog.Any("error", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	chanErrors := make(chan error, 1)
	// Initializing the Server in a goroutine so that it won't block the graceful shutdown handling below
	go func() {
		slog.Info(fmt.Sprintf("Starting server on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			chanErrors <- err
		}
	}()

	select {
	case err = <-chanErrors:
		slog.Error(fmt.Sprintf("Unable to run server. Error: %s", err))
		os.Exit(1)
	case <-ctx.Done():
		timeout := cfg.Server.ShutdownTimeout
		slog.Warn(fmt.Sprintf("Received shutdown signal, aborting in %s...", timeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			slog.Error(fmt.Sprintf("Server forced to shutdown. Error: %s", err))
			os.Exit(1)
		}
		slog.Info("Server exiting gracefully")
	}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level <= slog.LevelDebug:
		return zerolog.DebugLevel
	case level <= slog.LevelInfo:
		return zerolog.InfoLevel
	case level <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
