package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret string `env:"JWT_SECRET,required" validate:"required,min=32"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	SalesEmail   string `env:"SALES_EMAIL"    envDefault:"sales@localhost"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID" validate:"required_if=Env production"`

	// OTPDeterministic makes request-otp always issue the fixed test code.
	// Load rejects it under ENV=production so it cannot leak into production.
	OTPDeterministic bool `env:"OTP_DETERMINISTIC" envDefault:"false"`

	AuthEmitCookie bool `env:"AUTH_EMIT_COOKIE" envDefault:"true"`
	AuthEmitBody   bool `env:"AUTH_EMIT_BODY"   envDefault:"true"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.OTPDeterministic && cfg.Env == "production" {
		return nil, fmt.Errorf("OTP_DETERMINISTIC is not allowed with ENV=production")
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
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

