package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rezonia/zugferd/internal/logger"
	"github.com/rezonia/zugferd/internal/profile"
)

// Config holds the runtime settings of the CLI and the HTTP API. Values
// come from the environment, optionally from zugferd.{yaml,env,json} in the
// search path.
type Config struct {
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogTimeFormat string `mapstructure:"LOG_TIME_FORMAT"`
	LogOutput     string `mapstructure:"LOG_OUTPUT"`

	DefaultVersion string `mapstructure:"DEFAULT_VERSION"`
	DefaultDialect string `mapstructure:"DEFAULT_DIALECT"`
	DefaultProfile string `mapstructure:"DEFAULT_PROFILE"`
	ValidationMode string `mapstructure:"VALIDATION_MODE"` // strict or collect

	HTTPAddress      string        `mapstructure:"HTTP_ADDRESS"`
	HTTPReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	MaxBodyBytes     int64         `mapstructure:"MAX_BODY_BYTES"`

	ConvertWorkers int `mapstructure:"CONVERT_WORKERS"`
}

var defaults = map[string]interface{}{
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "console",
	"LOG_TIME_FORMAT":    time.RFC3339,
	"LOG_OUTPUT":         "stderr",
	"DEFAULT_VERSION":    "2.3",
	"DEFAULT_DIALECT":    "cii",
	"DEFAULT_PROFILE":    "comfort",
	"VALIDATION_MODE":    "strict",
	"HTTP_ADDRESS":       ":8080",
	"HTTP_READ_TIMEOUT":  "30s",
	"HTTP_WRITE_TIMEOUT": "30s",
	"MAX_BODY_BYTES":     10 << 20,
	"CONVERT_WORKERS":    4,
}

// Load reads configuration from the environment and an optional config
// file in path. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("zugferd")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the defaults name a producible configuration
func (c *Config) Validate() error {
	if _, _, _, err := c.Target(); err != nil {
		return err
	}
	switch strings.ToLower(c.ValidationMode) {
	case "strict", "collect":
	default:
		return fmt.Errorf("VALIDATION_MODE must be strict or collect, got %q", c.ValidationMode)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.ConvertWorkers <= 0 {
		return fmt.Errorf("CONVERT_WORKERS must be positive")
	}
	return nil
}

// Target resolves the default output version, dialect and profile
func (c *Config) Target() (profile.Version, profile.Family, profile.Profile, error) {
	v, err := profile.ParseVersion(c.DefaultVersion)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("DEFAULT_VERSION: %w", err)
	}
	f, err := profile.ParseFamily(c.DefaultDialect)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("DEFAULT_DIALECT: %w", err)
	}
	p, err := profile.Parse(c.DefaultProfile)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("DEFAULT_PROFILE: %w", err)
	}
	return v, f, p, nil
}

// CollectViolations reports whether validation runs in collect mode
func (c *Config) CollectViolations() bool {
	return strings.EqualFold(c.ValidationMode, "collect")
}

// GetLoggerConfig returns the logger configuration
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}
