// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreSQLite   = "sqlite"
	SessionStorePostgres = "postgres"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Profile backend. Replaces the old development/production host switch.
	ProfileAPIBaseURL string        `mapstructure:"PROFILE_API_BASE_URL"`
	ProfileAPITimeout time.Duration `mapstructure:"PROFILE_API_TIMEOUT_SECONDS"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Session mirror
	SessionStore         string        `mapstructure:"SESSION_STORE"`
	SessionDBSource      string        `mapstructure:"SESSION_DB_SOURCE"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL_MINUTES"`
	SessionSweepSchedule string        `mapstructure:"SESSION_SWEEP_SCHEDULE"`
	SessionCookieSecure  bool          `mapstructure:"SESSION_COOKIE_SECURE"`

	// Views
	DefaultAvatarURL string `mapstructure:"DEFAULT_AVATAR_URL"`

	// Entry modal database check
	ConnectTimeout time.Duration `mapstructure:"CONNECT_TIMEOUT_SECONDS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("PROFILE_API_BASE_URL", "http://localhost:3000")
	v.SetDefault("PROFILE_API_TIMEOUT_SECONDS", 0) // 0 keeps the round trip unbounded
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_DB_SOURCE", "sessions.db")
	v.SetDefault("SESSION_TTL_MINUTES", 60*24)
	v.SetDefault("SESSION_SWEEP_SCHEDULE", "@hourly")
	v.SetDefault("SESSION_COOKIE_SECURE", false)

	v.SetDefault("DEFAULT_AVATAR_URL", "/tempuser.png")
	v.SetDefault("CONNECT_TIMEOUT_SECONDS", 5)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Durations are configured as plain integers.
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.ProfileAPITimeout = time.Duration(v.GetInt("PROFILE_API_TIMEOUT_SECONDS")) * time.Second
	cfg.SessionTTL = time.Duration(v.GetInt("SESSION_TTL_MINUTES")) * time.Minute
	cfg.ConnectTimeout = time.Duration(v.GetInt("CONNECT_TIMEOUT_SECONDS")) * time.Second
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.ProfileAPIBaseURL) == "" {
		return fmt.Errorf("PROFILE_API_BASE_URL is required")
	}
	c.ProfileAPIBaseURL = strings.TrimRight(c.ProfileAPIBaseURL, "/")

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreSQLite, SessionStorePostgres:
	default:
		return fmt.Errorf("SESSION_STORE must be one of %q, %q, %q (got %q)",
			SessionStoreMemory, SessionStoreSQLite, SessionStorePostgres, c.SessionStore)
	}
	if c.SessionStore != SessionStoreMemory && strings.TrimSpace(c.SessionDBSource) == "" {
		return fmt.Errorf("SESSION_DB_SOURCE is required for session store %q", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
