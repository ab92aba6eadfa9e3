package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort string `envconfig:"PORT" default:"8000"`

	// Empty DatabaseURL falls back to a local SQLite file.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"turnos.db"`

	FrontURL   string `envconfig:"FRONT_URL" default:"http://localhost:3000"`
	BackendURL string `envconfig:"BACKEND_URL" default:"http://localhost:8000"`
	Timezone   string `envconfig:"APP_TIMEZONE" default:"America/Argentina/Cordoba"`

	HoldWindow     time.Duration `envconfig:"HOLD_WINDOW" default:"2m"`
	ReaperInterval time.Duration `envconfig:"REAPER_INTERVAL" default:"30s"`

	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,https://ro-lorenzo-nutricionista.onrender.com"`

	MercadoPago MercadoPagoConfig
	Email       EmailConfig
	Admin       AdminConfig

	RedisURL    string `envconfig:"REDIS_URL"`
	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

type MercadoPagoConfig struct {
	AccessToken string `envconfig:"MP_ACCESS_TOKEN"`
	Sandbox     bool   `envconfig:"MP_SANDBOX" default:"false"`
	Currency    string `envconfig:"MP_CURRENCY" default:"ARS"`
}

type EmailConfig struct {
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	From         string `envconfig:"EMAIL_FROM" default:"Turnos <onboarding@resend.dev>"`
	NotifyTo     string `envconfig:"NOTIFY_EMAIL"`
}

const minJWTSecretLen = 32

// AdminConfig enables the protected listing endpoint when PasswordHash is set.
type AdminConfig struct {
	PasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret    string        `envconfig:"JWT_SECRET"`
	TokenTTL     time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"12h"`
}

// Load reads .env (when present) and the process environment. Invalid
// configuration is fatal.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file, using process environment")
	}

	cfg, err := Process()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}

// Process builds a Config from the current environment only.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if cfg.HoldWindow <= 0 {
		return nil, fmt.Errorf("HOLD_WINDOW must be positive, got %s", cfg.HoldWindow)
	}

	if cfg.AdminEnabled() && len(cfg.Admin.JWTSecret) < minJWTSecretLen {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters when ADMIN_PASSWORD_HASH is set", minJWTSecretLen)
	}

	cfg.DatabaseURL = NormalizeDatabaseURL(cfg.DatabaseURL)
	cfg.FrontURL = strings.TrimRight(cfg.FrontURL, "/")
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	return &cfg, nil
}

// NormalizeDatabaseURL rewrites the legacy "postgres://" scheme some hosts
// hand out into the "postgresql://" form.
func NormalizeDatabaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(raw, "postgres://")
	}
	return raw
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) UsesSQLite() bool {
	return c.DatabaseURL == ""
}

func (c *Config) AdminEnabled() bool {
	return c.Admin.PasswordHash != ""
}

func (c *Config) WebhookURL() string {
	return c.BackendURL + "/webhook"
}
