package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int    `mapstructure:"WEBSERVER_PORT" validate:"min=1,max=65535"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	LogLevel      string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Sizes are human strings ("25MB", "1GiB").
	MaxUploadSize     string `mapstructure:"MAX_UPLOAD_SIZE" validate:"required"`
	BlobStoreMaxBytes string `mapstructure:"BLOB_STORE_MAX_BYTES" validate:"required"`

	// Editor Configuration
	MaxEditorSessions  int           `mapstructure:"MAX_EDITOR_SESSIONS" validate:"min=1"`
	EditorIdleTimeout  time.Duration `mapstructure:"EDITOR_IDLE_TIMEOUT" validate:"min=1s"`
	DisableContextMenu bool          `mapstructure:"DISABLE_CONTEXT_MENU"`
}

// MaxUploadBytes returns MaxUploadSize in bytes.
func (c Config) MaxUploadBytes() (int64, error) {
	return parseSize("MAX_UPLOAD_SIZE", c.MaxUploadSize)
}

// BlobStoreBytes returns BlobStoreMaxBytes in bytes.
func (c Config) BlobStoreBytes() (int64, error) {
	return parseSize("BLOB_STORE_MAX_BYTES", c.BlobStoreMaxBytes)
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseSize(key, s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%s: must be greater than zero", key)
	}
	return int64(n), nil
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			viper.BindEnv(tag)
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_UPLOAD_SIZE", "25MB")
	viper.SetDefault("BLOB_STORE_MAX_BYTES", "512MB")
	viper.SetDefault("MAX_EDITOR_SESSIONS", 500)
	viper.SetDefault("EDITOR_IDLE_TIMEOUT", 30*time.Minute)
	viper.SetDefault("DISABLE_CONTEXT_MENU", true)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	slog.Info("Loaded configuration",
		"port", cfg.WebServerPort,
		"log_level", cfg.LogLevel,
		"max_upload_size", cfg.MaxUploadSize,
		"blob_store_max_bytes", cfg.BlobStoreMaxBytes,
		"max_editor_sessions", cfg.MaxEditorSessions,
		"editor_idle_timeout", cfg.EditorIdleTimeout,
		"disable_context_menu", cfg.DisableContextMenu,
		"session_secret_set", cfg.SessionSecret != "",
	)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.MaxUploadBytes(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.BlobStoreBytes(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
