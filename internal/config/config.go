package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port              int
	DatabaseURL       string
	Storage           string
	MaxRegistrations  int
	JWTSecret         string
	AdminPassword     string
	AdminPasswordHash string
	TokenTTL          time.Duration
	CORSOrigins       []string
	FrontendDir       string
	RaceDataPath      string
	BibTemplatePath   string
	DiscordWebhookURL string
	DefaultLocale     string
	LogLevel          zapcore.Level
	LogFormat         string
	Timezone          string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI...).
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for local use.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL:       strings.TrimSpace(getenv("DATABASE_URL")),
		Storage:           strings.ToLower(strings.TrimSpace(getenv("STORAGE"))),
		JWTSecret:         getenv("JWT_SECRET"),
		AdminPassword:     getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: strings.TrimSpace(getenv("ADMIN_PASSWORD_HASH")),
		CORSOrigins:       splitList(getenv("CORS_ORIGINS")),
		FrontendDir:       strings.TrimSpace(getenv("FRONTEND_DIR")),
		RaceDataPath:      strings.TrimSpace(getenv("RACE_DATA_PATH")),
		BibTemplatePath:   strings.TrimSpace(getenv("BIB_TEMPLATE_PATH")),
		DiscordWebhookURL: strings.TrimSpace(getenv("DISCORD_WEBHOOK_URL")),
		DefaultLocale:     strings.TrimSpace(getenv("DEFAULT_LOCALE")),
		LogFormat:         strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT"))),
		Timezone:          strings.TrimSpace(getenv("TIMEZONE")),
	}

	var err error
	if cfg.Port, err = intVar(getenv, "PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.MaxRegistrations, err = intVar(getenv, "MAX_REGISTROS", 2000); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = durationVar(getenv, "TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(strings.TrimSpace(getenv("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("config: invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applies defaults and checks the loaded configuration.
func (c *Config) validate() error {
	if c.Storage == "" {
		c.Storage = StoragePostgres
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("config: STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT out of range: %d", c.Port)
	}
	if c.MaxRegistrations <= 0 {
		return fmt.Errorf("config: MAX_REGISTROS must be positive, got %d", c.MaxRegistrations)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET is required and cannot be empty")
	}
	if c.AdminPasswordHash == "" && c.AdminPassword == "" {
		return fmt.Errorf("config: ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	if c.Storage == StoragePostgres {
		if c.DatabaseURL == "" {
			// Local default when DATABASE_URL is not provided.
			c.DatabaseURL = "postgres://localhost:5432/carrera_medico?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	if c.DiscordWebhookURL != "" {
		if _, err := url.ParseRequestURI(c.DiscordWebhookURL); err != nil {
			return fmt.Errorf("config: invalid DISCORD_WEBHOOK_URL: %w", err)
		}
	}

	if c.DefaultLocale == "" {
		c.DefaultLocale = "es"
	}
	switch c.LogFormat {
	case "":
		c.LogFormat = "json"
	case "json", "console":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	if c.Timezone == "" {
		c.Timezone = "America/Mexico_City"
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer (%q): %w", key, raw, err)
	}
	return v, nil
}

func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration (%q): %w", key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
