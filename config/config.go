// Package config loads the wallet client configuration from defaults, an
// optional YAML file, and environment variables, in ascending priority.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/astrox/wallet-transport-go/logger"
	"github.com/astrox/wallet-transport-go/transport"
)

// DefaultFile is the YAML file consulted when present
const DefaultFile = "wallet.yaml"

// EnvPrefix namespaces the environment variables read by Load
const EnvPrefix = "WALLET_"

// Config is the loadable client configuration
type Config struct {
	Host        string            `koanf:"host"`
	Ambient     AmbientConfig     `koanf:"ambient"`
	Credentials CredentialsConfig `koanf:"credentials"`
	Retry       RetryConfig       `koanf:"retry"`
	Options     OptionsConfig     `koanf:"options"`
	Log         LogConfig         `koanf:"log"`
}

// AmbientConfig carries the hosting page's origin when one exists
type AmbientConfig struct {
	Origin string `koanf:"origin"`
}

// RetryConfig bounds the attempt loop
type RetryConfig struct {
	// Budget is the retry count after the first attempt; 0 means unbounded
	Budget int `koanf:"budget" validate:"min=0"`
}

// OptionsConfig holds the extra header bags merged into outgoing requests
type OptionsConfig struct {
	Plain map[string]string `koanf:"plain"`
	Call  map[string]string `koanf:"call"`
}

// CredentialsConfig is the optional static Basic-auth pair
type CredentialsConfig struct {
	Name     string `koanf:"name"`
	Password string `koanf:"password"`
}

// LogConfig controls the client logger
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Load reads configuration from all sources and validates the result
func Load() (*Config, error) {
	return LoadFrom(DefaultFile)
}

// LoadFrom is Load with an explicit YAML path; the file is optional
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// YAML file is optional; a missing file is not an error
	if path != "" {
		_ = k.Load(file.Provider(path), yaml.Parser())
	}

	// Environment variables have the highest priority:
	// WALLET_RETRY_BUDGET=5 becomes retry.budget.
	if err := k.Load(envprovider.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"retry.budget": transport.DefaultRetryBudget,
		"log.level":    "info",
		"log.pretty":   false,
	}
	return k.Load(confmap.Provider(defaults, "."), nil)
}

// ClientConfig converts the loaded configuration into the transport layer's
// form, wiring a logger built from the log settings.
func (c *Config) ClientConfig() transport.Config {
	cfg := transport.Config{
		Host:          c.Host,
		AmbientOrigin: c.Ambient.Origin,
		RetryBudget:   transport.Retries(c.Retry.Budget),
		PlainOptions:  c.Options.Plain,
		CallOptions:   c.Options.Call,
		Logger:        logger.New(c.Log.Level, c.Log.Pretty),
	}
	if c.Credentials.Name != "" {
		cfg.Credentials = &transport.Credentials{
			Name:     c.Credentials.Name,
			Password: c.Credentials.Password,
		}
	}
	return cfg
}
