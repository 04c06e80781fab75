// Package config loads the runtime settings of the fa tool.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "FA_"

var validate = validator.New()

type Config struct {
	// Subset construction ceiling.
	MaxStates int `yaml:"max_states" env:"MAX_STATES" validate:"min=1"`
	// bbolt file the history is kept in.
	HistoryPath string `yaml:"history_path" env:"HISTORY_PATH" validate:"required"`
	// How long a loaded history record stays cached.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" validate:"min=0"`
	// Owner of the history records created by this user.
	Owner string `yaml:"owner" env:"OWNER" validate:"required,max=64"`
	// How many records "history list" shows.
	RecentLimit int    `yaml:"recent_limit" env:"RECENT_LIMIT" validate:"min=1,max=1000"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat   string `yaml:"log_format" env:"LOG_FORMAT" validate:"oneof=text json"`
}

func Default() *Config {
	return &Config{
		MaxStates:   10000,
		HistoryPath: "fa_history.db",
		CacheTTL:    10 * time.Minute,
		Owner:       "local",
		RecentLimit: 25,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load builds the configuration from the defaults, then the YAML file at path (skipped when
// path is empty), then a .env file in the working directory and the process environment.
// Later sources win.
func Load(ctx context.Context, path string) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, env envconfig.Lookuper) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:           cfg,
		Lookuper:         envconfig.PrefixLookuper(EnvPrefix, env),
		DefaultOverwrite: true,
	})
	if err != nil {
		return nil, fmt.Errorf("config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field, reporting the first invalid one.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			return fmt.Errorf("config %s: field is required", e.Field())
		case "min":
			return fmt.Errorf("config %s: must be at least %s", e.Field(), e.Param())
		case "max":
			return fmt.Errorf("config %s: must not exceed %s", e.Field(), e.Param())
		case "oneof":
			return fmt.Errorf("config %s: must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
		default:
			return fmt.Errorf("config %s: validation failed (%s)", e.Field(), e.Tag())
		}
	}
	return err
}

// Logger returns a logger writing to w in the configured format, at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
