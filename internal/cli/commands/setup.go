// Package commands implements the salesledger subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/salesledger/internal/config"
	"github.com/leapstack-labs/salesledger/internal/store"
)

type configKey struct{}
type loggerKey struct{}

// WithDeps stores the loaded configuration and logger in the context for
// retrieval by individual commands. The root command calls this once after
// config loading.
func WithDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  *store.Store
}

// NewCommandContext creates a CommandContext with an open store.
// Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	st, err := store.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = st.Close()
	}

	return &CommandContext{Cfg: cfg, Logger: logger, Store: st}, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without opening
// the database. Useful for commands that probe connectivity themselves.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(cmd.Context()),
		Logger: getLogger(cmd.Context()),
	}
}

func getConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	// Fallback when commands run outside the root command, e.g. in tests.
	cfg, err := config.Load("", nil)
	if err != nil {
		cfg = &config.Config{}
	}
	return cfg
}

func getLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
