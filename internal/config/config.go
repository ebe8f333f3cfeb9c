package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the session service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"session-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"SESSION_API_PORT" envDefault:"8290"`
	LogLevel        string        `env:"SESSION_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"SESSION_LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Session store (required)
	RedisURL   string        `env:"REDIS_URL,notEmpty"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// How long a single session mutation may hold the writer lock. Deck
	// extensions call the provider while holding it, so this must exceed
	// the provider timeout.
	SessionLockExpiry time.Duration `env:"SESSION_LOCK_EXPIRY" envDefault:"30s"`

	// Media cache (required)
	DBPostgresqlDSN string        `env:"DB_POSTGRESQL_DSN,notEmpty"`
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Token issuing
	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Content provider
	TMDBBaseURL string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	TMDBAPIKey  string        `env:"TMDB_API_KEY,notEmpty"`
	TMDBTimeout time.Duration `env:"TMDB_TIMEOUT" envDefault:"10s"`
	SeedTimeout time.Duration `env:"SEED_TIMEOUT" envDefault:"30s"`

	// Notification relay (optional; alerting degrades to log-only)
	TelegramAPIURL   string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org/bot"`
	TelegramBotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string        `env:"TELEGRAM_CHAT_ID"`
	TelegramTimeout  time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.TMDBAPIKey = strings.TrimSpace(cfg.TMDBAPIKey)
	cfg.TelegramBotToken = strings.TrimSpace(cfg.TelegramBotToken)
	if cfg.TelegramBotToken != "" && strings.TrimSpace(cfg.TelegramChatID) == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if cfg.SessionLockExpiry <= cfg.TMDBTimeout {
		return nil, fmt.Errorf("SESSION_LOCK_EXPIRY must exceed TMDB_TIMEOUT")
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
