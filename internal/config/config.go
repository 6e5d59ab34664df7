package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Stats   StatsConfig   `yaml:"stats" envconfig:"STATS"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
}

// StatsConfig controls the statistics engine.
type StatsConfig struct {
	// TopK is how many countries per grouping level the ranked reports keep.
	TopK int `yaml:"top_k" envconfig:"TOP_K" validate:"min=1"`
}

// DataConfig carries the static reference data the normalizer depends on.
// Not overridable from the environment; a YAML overlay may replace either
// table wholesale.
type DataConfig struct {
	// CountryAliases maps raw uppercase country labels to canonical ones.
	CountryAliases map[string]string `yaml:"country_aliases" ignored:"true" validate:"required"`
	// NonCountryCodes lists the aggregate codes excluded from sources that
	// carry a Country Code column.
	NonCountryCodes []string `yaml:"non_country_codes" ignored:"true" validate:"required"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// ServerConfig contains HTTP server configuration for the report API.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains token-bucket rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=0"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Stats: StatsConfig{TopK: DefaultTopK},
		Data: DataConfig{
			CountryAliases:  DefaultCountryAliases(),
			NonCountryCodes: DefaultNonCountryCodes(),
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit:       RateLimitConfig{Enabled: true, RPS: 100, Burst: 50},
		},
	}
}

// Load assembles the configuration: compiled-in defaults, then an optional
// YAML file overlay, then EMISTAT_* environment variables. The result is
// validated before being returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("EMISTAT", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
