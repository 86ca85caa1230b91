package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prasertk/stockd/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Provider ProviderConfig `mapstructure:"provider"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// CORSConfig holds the static CORS allow-list. A single "*" entry allows any
// origin.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ProviderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// BatchConfig holds batch-fetch settings. Concurrency is the worker-pool
// bound for multi-symbol requests; 1 means strictly sequential.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyPortEnv(cfg)
	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Provider: ProviderConfig{
			BaseURL: "https://query1.finance.yahoo.com",
			Timeout: 10 * time.Second,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
	applyPortEnv(cfg)
	return cfg
}

// applyPortEnv honors the PORT environment variable over any configured port.
func applyPortEnv(cfg *Config) {
	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.Server.Port = port
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Provider.Timeout <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("provider timeout must be positive, got %s", c.Provider.Timeout))
	}

	if c.Batch.Concurrency < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("batch concurrency must be at least 1, got %d", c.Batch.Concurrency))
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("cors allowed_origins cannot be empty"))
	}

	return nil
}
