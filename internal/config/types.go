// Package config provides configuration for the sales ledger: one endpoint
// for the write side (master) and one for the read side (replica).
package config

import "fmt"

// EndpointConfig holds connection settings for a single database endpoint.
type EndpointConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Pool bounds. MinConns connections are kept warm; the pool grows
	// lazily up to MaxConns.
	MinConns int `koanf:"min_conns"`
	MaxConns int `koanf:"max_conns"`

	// Additional driver options (e.g. sslmode).
	Options map[string]string `koanf:"options"`
}

// Config is the full application configuration.
type Config struct {
	Master  EndpointConfig `koanf:"master"`
	Replica EndpointConfig `koanf:"replica"`
	Verbose bool           `koanf:"verbose"`
}

// Validate checks that both endpoints are usable.
func (c *Config) Validate() error {
	if err := c.Master.validate(); err != nil {
		return fmt.Errorf("master: %w", err)
	}
	if err := c.Replica.validate(); err != nil {
		return fmt.Errorf("replica: %w", err)
	}
	return nil
}

func (e *EndpointConfig) validate() error {
	if e.Host == "" {
		return fmt.Errorf("host is required")
	}
	if e.Port <= 0 || e.Port > 65535 {
		return fmt.Errorf("invalid port %d", e.Port)
	}
	if e.Database == "" {
		return fmt.Errorf("database is required")
	}
	if e.MinConns < 0 {
		return fmt.Errorf("min_conns must not be negative")
	}
	if e.MaxConns < 1 {
		return fmt.Errorf("max_conns must be at least 1")
	}
	if e.MinConns > e.MaxConns {
		return fmt.Errorf("min_conns (%d) exceeds max_conns (%d)", e.MinConns, e.MaxConns)
	}
	return nil
}
