// Package config loads the application configuration.
//
// Values come from built-in defaults overlaid by environment variables
// (optionally read from a `.env` file). Every required value is validated at
// startup so the process fails fast on bad or missing configuration.
//
// Environment variables use the PORTFOLIO_ prefix and a double underscore
// between a section and its key:
//
//	PORTFOLIO_SERVER__PORT           -> server.port
//	PORTFOLIO_FIREBASE__PRIVATE_KEY  -> firebase.private_key
//	PORTFOLIO_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file into the process environment, if present.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every environment variable read.
	EnvPrefix = "PORTFOLIO_"

	// ServiceName labels logs and traces.
	ServiceName = "portfolio-api"
)

// Config is the root configuration object.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Firebase      FirebaseConfig       `koanf:"firebase" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Email         EmailConfig          `koanf:"email" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds the runtime environment name (local, development, production).
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development production"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	BodyLimit          string   `koanf:"body_limit" validate:"required"`
}

// FirebaseConfig holds the service-account credential used for both the
// document store and identity-token verification.
type FirebaseConfig struct {
	ProjectID    string `koanf:"project_id" validate:"required"`
	PrivateKeyID string `koanf:"private_key_id" validate:"required"`
	PrivateKey   string `koanf:"private_key" validate:"required"`
	ClientEmail  string `koanf:"client_email" validate:"required,email"`
	ClientID     string `koanf:"client_id" validate:"required"`
	CertURL      string `koanf:"cert_url" validate:"required,url"`
}

// StorageConfig holds the blob store connection.
type StorageConfig struct {
	ConnectionString string `koanf:"connection_string" validate:"required"`
	Container        string `koanf:"container" validate:"required"`
}

// EmailConfig holds outbound mail credentials.
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	FromAddress  string `koanf:"from_address" validate:"required"`
}

// AuthConfig controls the admin authorization gate.
//
// ProtectForms puts the form listing and status routes behind the admin
// gate. It is off by default, which keeps those routes public.
type AuthConfig struct {
	AdminClaim   string `koanf:"admin_claim" validate:"required"`
	ProtectForms bool   `koanf:"protect_forms"`
}

// RateLimitConfig limits the public submission routes per client IP.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	Rate    float64 `koanf:"rate" validate:"gte=0"`
	Burst   int     `koanf:"burst" validate:"gte=0"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.port":                 "5000",
		"server.read_timeout":         15,
		"server.write_timeout":        15,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.body_limit":           "10M",
		"storage.container":           "assets",
		"email.from_address":          "Support <onboarding@resend.dev>",
		"auth.admin_claim":            "admin",
		"auth.protect_forms":          false,
		"rate_limit.enabled":          true,
		"rate_limit.rate":             1.0,
		"rate_limit.burst":            5,
	}
}

// envKey maps PORTFOLIO_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig reads defaults and the environment, validates the result and
// fills in observability defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// The key usually arrives with escaped newlines from env files and
	// secret managers.
	cfg.Firebase.PrivateKey = strings.ReplaceAll(cfg.Firebase.PrivateKey, `\n`, "\n")

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}
