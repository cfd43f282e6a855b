package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gbmsdev99/xclinic/config"
)

// DSN builds a PostgreSQL connection string from config.
func DSN(c config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// NewPool opens a pgx connection pool and verifies it with a ping.
func NewPool(ctx context.Context, c config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(DSN(c))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	if c.Pool.MaxConns > 0 {
		poolCfg.MaxConns = int32(c.Pool.MaxConns)
	}
	if c.Pool.MinConns > 0 {
		poolCfg.MinConns = int32(c.Pool.MinConns)
	}
	if c.Pool.MaxConnLifetimeMin > 0 {
		poolCfg.MaxConnLifetime = time.Duration(c.Pool.MaxConnLifetimeMin) * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
