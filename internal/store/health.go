package store

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/leapstack-labs/salesledger/internal/config"
)

// Health reports reachability per endpoint.
type Health struct {
	Write bool
	Read  bool
}

// Health runs a trivial round-trip query against each endpoint. The probes
// are isolated: a failure on one side does not affect the other. The result
// is advisory only; no failover or pool reset happens here.
func (s *Store) Health(ctx context.Context) Health {
	var h Health

	var one int
	if s.write != nil {
		if err := s.write.QueryRowContext(ctx, "SELECT 1").Scan(&one); err == nil {
			h.Write = true
		} else {
			s.logger.Debug("write endpoint probe failed", slog.Any("error", err))
		}
	}

	if s.read != nil {
		if err := s.read.QueryRowContext(ctx, "SELECT 1").Scan(&one); err == nil {
			h.Read = true
		} else {
			s.logger.Debug("read endpoint probe failed", slog.Any("error", err))
		}
	}

	return h
}

// Probe checks both endpoints without going through Open, which refuses to
// construct a store when either side is down. Diagnostics want the per-side
// answer regardless.
func Probe(ctx context.Context, cfg *config.Config, logger *slog.Logger) Health {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Health{
		Write: probeEndpoint(ctx, cfg.Master, logger, "master"),
		Read:  probeEndpoint(ctx, cfg.Replica, logger, "replica"),
	}
}

func probeEndpoint(ctx context.Context, cfg config.EndpointConfig, logger *slog.Logger, role string) bool {
	db, err := sql.Open("pgx", buildDSN(cfg))
	if err != nil {
		logger.Debug("endpoint probe failed", slog.String("role", role), slog.Any("error", err))
		return false
	}
	defer func() { _ = db.Close() }()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		logger.Debug("endpoint probe failed", slog.String("role", role), slog.Any("error", err))
		return false
	}
	return true
}
