package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spdeepak/rex-identity-server/config"
)

// DSN builds the libpq style connection string for pgx.
func DSN(dbCfg config.PostgresConfig) string {
	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.UserName,
		dbCfg.Password,
		dbCfg.SSLMode,
	)
	if dbCfg.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", int(dbCfg.ConnectTimeout.Seconds()))
	}
	if dbCfg.StatementTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", dbCfg.StatementTimeout.Milliseconds())
	}
	return dsn
}

func poolConfig(dbCfg config.PostgresConfig) (*pgxpool.Config, error) {
	pgConfig, err := pgxpool.ParseConfig(DSN(dbCfg))
	if err != nil {
		return nil, err
	}

	if dbCfg.MaxOpenConns > 0 {
		pgConfig.MaxConns = int32(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		pgConfig.MinConns = int32(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		pgConfig.MaxConnLifetime = dbCfg.ConnMaxLifetime
	}
	if dbCfg.ConnMaxIdleTime > 0 {
		pgConfig.MaxConnIdleTime = dbCfg.ConnMaxIdleTime
	}
	if dbCfg.HealthCheckPeriod > 0 {
		pgConfig.HealthCheckPeriod = dbCfg.HealthCheckPeriod
	}
	return pgConfig, nil
}

// Connect opens the pool and pings it, retrying up to MaxRetry times.
func Connect(ctx context.Context, dbCfg config.PostgresConfig) (*pgxpool.Pool, error) {
	pgConfig, err := poolConfig(dbCfg)
	if err != nil {
		slog.Error("error parsing connection string", "error", err)
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgConfig)
	if err != nil {
		slog.Error("error connecting to database", "error", err)
		return nil, err
	}

	timeout := dbCfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	for attempt := 0; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return pool, nil
		}
		if attempt >= dbCfg.MaxRetry {
			break
		}
		slog.Warn("database not reachable yet, retrying", "attempt", attempt+1, "error", err)
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	pool.Close()
	slog.Error("error connecting to database", "error", err)
	return nil, err
}
