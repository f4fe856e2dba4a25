package gatekit

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig holds raw env values for an embedding application that prefers
// environment configuration over code.
type envConfig struct {
	Secret        string        `env:"GATEKIT_SECRET"`
	DatabaseURL   string        `env:"GATEKIT_DATABASE_URL"`
	SessionTTL    time.Duration `env:"GATEKIT_SESSION_TTL"    envDefault:"24h"`
	MagicLinkTTL  time.Duration `env:"GATEKIT_MAGIC_LINK_TTL" envDefault:"15m"`
	OTPTTL        time.Duration `env:"GATEKIT_OTP_TTL"        envDefault:"5m"`
	MagicLinkBase string        `env:"GATEKIT_MAGIC_LINK_BASE"`
}

// EnvConfig is the environment-derived subset of Config. The repository,
// notifier, and challenge store are code-level collaborators and stay on
// Config; DatabaseURL is surfaced so callers can open their own pool.
type EnvConfig struct {
	Secret        string
	DatabaseURL   string
	SessionTTL    time.Duration
	MagicLinkTTL  time.Duration
	OTPTTL        time.Duration
	MagicLinkBase string
}

// LoadConfigFromEnv reads GATEKIT_* environment variables. Missing optional
// values fall back to the same defaults New applies; a missing secret is
// reported by New, not here.
func LoadConfigFromEnv() (EnvConfig, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return EnvConfig{}, err
	}

	return EnvConfig{
		Secret:        raw.Secret,
		DatabaseURL:   raw.DatabaseURL,
		SessionTTL:    raw.SessionTTL,
		MagicLinkTTL:  raw.MagicLinkTTL,
		OTPTTL:        raw.OTPTTL,
		MagicLinkBase: raw.MagicLinkBase,
	}, nil
}

// Apply copies the environment values onto a Config, leaving collaborator
// fields untouched.
func (e EnvConfig) Apply(config Config) Config {
	if e.Secret != "" {
		config.Secret = e.Secret
	}
	config.SessionTTL = e.SessionTTL
	config.MagicLinkTTL = e.MagicLinkTTL
	config.OTPTTL = e.OTPTTL
	if e.MagicLinkBase != "" {
		config.MagicLinkBase = e.MagicLinkBase
	}
	return config
}
