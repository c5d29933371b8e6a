// Package config loads server settings from the environment, optionally seeded
// from .env files, with defaults suitable for local development.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. LESSONBOOK_DB_PATH.
const EnvPrefix = "LESSONBOOK"

// EnvProduction is the env value that turns on production checks.
const EnvProduction = "production"

// Config holds the settings of one server process.
type Config struct {
	Env                string
	Addr               string
	DBPath             string
	LogLevel           slog.Level
	CSRFKey            []byte // 32 bytes, nil means generate per process
	CookieSecure       bool
	TrustedOrigins     []string
	SessionTTL         time.Duration
	ResendKey          string
	EmailFrom          string
	ReplyTo            string
	SlowQueryMs        int
	SlowRequestMs      int
	RateLimitPerSecond int
	PerfRingSize       int
	AdminUsernames     []string
}

// IsProduction reports whether the process runs with production checks.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func defaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "lessonbook.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("csrf_key", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("trusted_origins", "localhost:8080,127.0.0.1:8080")
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("resend_key", "")
	v.SetDefault("email_from", "Lessonbook <noreply@localhost>")
	v.SetDefault("reply_to", "")
	v.SetDefault("slow_query_ms", 50)
	v.SetDefault("slow_request_ms", 200)
	v.SetDefault("rate_limit_per_second", 10)
	v.SetDefault("perf_ring_size", 10000)
	v.SetDefault("admin_usernames", "")
}

// Load reads .env and .env.<env> from dir when present, then the process environment.
// Variables already set in the environment win over the files.
// POST: Returns a validated Config or an error naming the bad setting
func Load(dir string) (Config, error) {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = "development"
	}
	for _, name := range []string{".env." + strings.ToLower(env), ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return Config{}, fmt.Errorf("config: load %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := Config{
		Env:                v.GetString("env"),
		Addr:               v.GetString("addr"),
		DBPath:             v.GetString("db_path"),
		CookieSecure:       v.GetBool("cookie_secure"),
		SessionTTL:         v.GetDuration("session_ttl"),
		ResendKey:          v.GetString("resend_key"),
		EmailFrom:          v.GetString("email_from"),
		ReplyTo:            v.GetString("reply_to"),
		SlowQueryMs:        v.GetInt("slow_query_ms"),
		SlowRequestMs:      v.GetInt("slow_request_ms"),
		RateLimitPerSecond: v.GetInt("rate_limit_per_second"),
		PerfRingSize:       v.GetInt("perf_ring_size"),
	}
	for _, origin := range strings.Split(v.GetString("trusted_origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, origin)
		}
	}

	for _, name := range strings.Split(v.GetString("admin_usernames"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.AdminUsernames = append(cfg.AdminUsernames, name)
		}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("config: log_level: %w", err)
	}
	if keyHex := v.GetString("csrf_key"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return Config{}, errors.New("config: csrf_key must be 64 hex characters (32 bytes)")
		}
		cfg.CSRFKey = key
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe fallback.
// POST: Returns nil if the config can start a server
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr cannot be empty")
	}
	if c.DBPath == "" {
		return errors.New("config: db_path cannot be empty")
	}
	if c.IsProduction() && c.CSRFKey == nil {
		return errors.New("config: csrf_key is required in production")
	}
	if c.RateLimitPerSecond <= 0 {
		return fmt.Errorf("config: rate_limit_per_second must be positive (got %d)", c.RateLimitPerSecond)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session_ttl must be positive (got %s)", c.SessionTTL)
	}
	if c.ResendKey != "" && c.EmailFrom == "" {
		return errors.New("config: email_from is required when resend_key is set")
	}
	return nil
}
