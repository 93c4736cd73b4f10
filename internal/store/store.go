// Package store implements the PostgreSQL access layer for the sales ledger.
// Writes go to the master endpoint, reads to the replica endpoint, each
// through its own bounded connection pool.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/leapstack-labs/salesledger/internal/config"
)

// ErrNotFound is returned by lookups that match no row. Callers must branch
// on it explicitly; it is not a failure.
var ErrNotFound = errors.New("not found")

// Store routes statements to a write pool and a read pool. Construct it once
// per process with Open and pass it to whatever needs it; there is no cached
// singleton.
type Store struct {
	write  *sql.DB
	read   *sql.DB
	logger *slog.Logger
}

// Open connects to both endpoints and verifies each with a ping. It fails
// loudly if either endpoint is unreachable; there is no retry-on-first-use
// mode. If logger is nil, a discard logger is used.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	write, err := openEndpoint(ctx, cfg.Master, logger, "master")
	if err != nil {
		return nil, fmt.Errorf("master endpoint unavailable: %w", err)
	}

	read, err := openEndpoint(ctx, cfg.Replica, logger, "replica")
	if err != nil {
		_ = write.Close()
		return nil, fmt.Errorf("replica endpoint unavailable: %w", err)
	}

	return &Store{write: write, read: read, logger: logger}, nil
}

// openEndpoint opens one pooled connection target and verifies it.
func openEndpoint(ctx context.Context, cfg config.EndpointConfig, logger *slog.Logger, role string) (*sql.DB, error) {
	dsn := buildDSN(cfg)

	logger.Debug("connecting to postgres",
		slog.String("role", role),
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	// Pool bounds: at most MaxConns live connections, MinConns kept idle.
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MinConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// buildDSN constructs a key=value PostgreSQL connection string.
func buildDSN(cfg config.EndpointConfig) string {
	host := cfg.Host
	if host == "" {
		host = config.DefaultHost
	}

	port := cfg.Port
	if port == 0 {
		port = config.DefaultPort
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// Close releases both pools.
func (s *Store) Close() error {
	var firstErr error
	if s.write != nil {
		if err := s.write.Close(); err != nil {
			firstErr = err
		}
		s.logger.Debug("closed write pool")
	}
	if s.read != nil {
		if err := s.read.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.logger.Debug("closed read pool")
	}
	return firstErr
}
