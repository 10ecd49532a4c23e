// Package config loads application configuration from defaults, an optional
// config file and STUDENTSERVICES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-studentservices/internal/logger"
	"github.com/goliatone/go-studentservices/pkg/theming"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "STUDENTSERVICES"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address" yaml:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Environment string `mapstructure:"environment" yaml:"environment"`
}

// FormConfig tunes validation and presentation of the request form.
type FormConfig struct {
	RequireSubtypes bool   `mapstructure:"require_subtypes" yaml:"require_subtypes"`
	Theme           string `mapstructure:"theme" yaml:"theme"`
	Variant         string `mapstructure:"variant" yaml:"variant"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Config aggregates all configuration sections.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Form    FormConfig    `mapstructure:"form" yaml:"form"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggerOptions converts the log section for logger.Init.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.Log.Level, Environment: c.Log.Environment}
}

// Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	file      string
	overrides map[string]any
}

// WithFile reads path in addition to defaults and environment. The format is
// inferred from the extension.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = strings.TrimSpace(path)
	}
}

// WithOverride forces key to value, taking precedence over every other
// source. Used for command line flags.
func WithOverride(key string, value any) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		o.overrides[key] = value
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", logger.EnvironmentDevelopment)
	v.SetDefault("form.require_subtypes", false)
	v.SetDefault("form.theme", theming.DefaultTheme)
	v.SetDefault("form.variant", theming.DefaultVariant)
	v.SetDefault("metrics.enabled", true)
}

// Load resolves configuration and validates it.
func Load(options ...Option) (*Config, error) {
	opts := loadOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.file != "" {
		v.SetConfigFile(opts.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config read %s: %w", opts.file, err)
		}
	}
	for key, value := range opts.overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks that loaded values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server address is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server shutdown timeout must be positive")
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Environment {
	case logger.EnvironmentDevelopment, logger.EnvironmentProduction, logger.EnvironmentTest:
	default:
		return fmt.Errorf("invalid log environment %q", c.Log.Environment)
	}
	if err := theming.Default().Check(c.Form.Theme, c.Form.Variant); err != nil {
		return fmt.Errorf("invalid form theme: %w", err)
	}
	return nil
}
