package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, tried in order.
const (
	ConfigFileName    = "salesledger.yaml"
	ConfigFileNameAlt = "salesledger.yml"
)

// EnvPrefix is the prefix for environment variable overrides.
// SALES_MASTER_HOST maps to master.host, SALES_REPLICA_PORT to replica.port.
const EnvPrefix = "SALES_"

// Default endpoint values per the documented fallbacks.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 5432
	DefaultDatabase = "postgres"
	DefaultUser     = "postgres"
	DefaultPassword = "postgres"
	DefaultMinConns = 1
	DefaultMaxConns = 10
)

// Load loads configuration from defaults, an optional YAML file, environment
// variables, and CLI flags, in ascending precedence.
// An empty cfgFile means: try salesledger.yaml then salesledger.yml in the
// working directory, and proceed with defaults if neither exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults for both endpoints.
	defaults := map[string]interface{}{}
	for _, side := range []string{"master", "replica"} {
		defaults[side+".host"] = DefaultHost
		defaults[side+".port"] = DefaultPort
		defaults[side+".database"] = DefaultDatabase
		defaults[side+".user"] = DefaultUser
		defaults[side+".password"] = DefaultPassword
		defaults[side+".min_conns"] = DefaultMinConns
		defaults[side+".max_conns"] = DefaultMaxConns
	}
	defaults["verbose"] = false
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, if present.
	configPath := findConfigFile(cfgFile)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	// 3. Environment variables (SALES_ prefix).
	// Transform: SALES_MASTER_HOST -> master.host (first underscore nests).
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. CLI flags (highest precedence; only flags that were set).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// --master-host -> master.host
			key := strings.Replace(strings.ReplaceAll(f.Name, "-", "_"), "_", ".", 1)
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Expand ${VAR} references in credentials.
	expandEndpointEnvVars(&cfg.Master)
	expandEndpointEnvVars(&cfg.Replica)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// findConfigFile returns the config file to use.
// Priority: explicit path > salesledger.yaml > salesledger.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}

// expandEndpointEnvVars expands environment variables in sensitive fields.
func expandEndpointEnvVars(e *EndpointConfig) {
	e.Host = expandEnvVars(e.Host)
	e.User = expandEnvVars(e.User)
	e.Password = expandEnvVars(e.Password)
	e.Database = expandEnvVars(e.Database)
}
