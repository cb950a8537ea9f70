package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the auth service, parsed from
// environment variables.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// Tokens. The two secrets must be set and must differ so a leak of one
	// never compromises the other.
	Issuer        string        `env:"AUTH_ISSUER" envDefault:"lunamart-auth"`
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	// LenientRevocation accepts a valid access token missing from the
	// store as long as the user still holds another live session.
	LenientRevocation bool `env:"AUTH_LENIENT_REVOCATION" envDefault:"false"`

	// Storage
	DatabaseFile         string        `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`
	PepperFile           string        `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// Password reset
	OtpTTL      time.Duration `env:"RESET_OTP_TTL" envDefault:"10m"`
	ResetWindow time.Duration `env:"RESET_WINDOW" envDefault:"30m"`

	// Mail. With no SMTP host configured, reset codes are logged instead
	// of sent, which is only useful in dev.
	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USERNAME"`
	SMTPPass string `env:"SMTP_PASSWORD"`
	MailFrom string `env:"MAIL_FROM" envDefault:"no-reply@lunamart.example"`
}

// LoadConfig parses the environment into a Config and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, fmt.Errorf("access and refresh token secrets must differ")
	}
	if cfg.Env != "dev" {
		if len(cfg.AccessSecret) < 32 || len(cfg.RefreshSecret) < 32 {
			return Config{}, fmt.Errorf("token secrets must be at least 32 characters in %q mode", cfg.Env)
		}
		if cfg.SMTPHost == "" {
			return Config{}, fmt.Errorf("SMTP_HOST must be set in %q mode", cfg.Env)
		}
	}

	return cfg, nil
}
