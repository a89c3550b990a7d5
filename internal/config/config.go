package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"dashboard/internal/domain/access"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config holds all runtime settings, loaded from DASHBOARD_* environment variables.
type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"DB_DSN" envDefault:"dashboard.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"`
	MaxConns int    `env:"DB_MAX_CONNS" envDefault:"25"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CSRFKey       string        `env:"CSRF_KEY"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`
	TrustedOrigin []string      `env:"TRUSTED_ORIGINS" envSeparator:"," envDefault:"localhost:8080,127.0.0.1:8080"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envSeparator:","`

	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`

	SlowQueryMs   int `env:"SLOW_QUERY_MS" envDefault:"50"`
	SlowRequestMs int `env:"SLOW_REQUEST_MS" envDefault:"200"`
	RatePerSecond int `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`

	ProtectedPrefix string   `env:"PROTECTED_PREFIX" envDefault:"/dashboard"`
	LoginPath       string   `env:"LOGIN_PATH" envDefault:"/login"`
	HomePath        string   `env:"HOME_PATH" envDefault:"/dashboard"`
	ExcludePrefixes []string `env:"GATE_EXCLUDE_PREFIXES" envSeparator:"," envDefault:"/api,/static/,/_next/static,/_next/image"`
	ExcludeSuffixes []string `env:"GATE_EXCLUDE_SUFFIXES" envSeparator:"," envDefault:".png"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"user@nextmail.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"123456"`
	SeedDemo      bool   `env:"SEED_DEMO" envDefault:"true"`
}

// defaultAdminPassword is the development seed password; it must match the
// AdminPassword envDefault.
const defaultAdminPassword = "123456"

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	return parse(env.Options{Prefix: "DASHBOARD_"})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the process runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks settings that cannot be defaulted safely.
// PRE: Config is populated
// POST: Returns nil if usable, error otherwise
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.IsProduction() {
		if len(c.SessionSecret) < 32 {
			return errors.New("SESSION_SECRET of at least 32 characters is required in production")
		}
		if c.CSRFKey == "" {
			return errors.New("CSRF_KEY is required in production")
		}
		if c.AdminPassword == "" || c.AdminPassword == defaultAdminPassword {
			return errors.New("ADMIN_PASSWORD must be set to a non-default value in production")
		}
	}
	if c.CSRFKey != "" {
		if _, err := c.CSRFKeyBytes(); err != nil {
			return err
		}
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return c.Policy().Validate()
}

// CSRFKeyBytes decodes the hex-encoded 32 byte CSRF key.
func (c Config) CSRFKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil || len(key) != 32 {
		return nil, errors.New("CSRF_KEY must be 64 hex characters (32 bytes)")
	}
	return key, nil
}

// Policy builds the route authorization policy.
func (c Config) Policy() access.Policy {
	return access.Policy{
		ProtectedPrefix: c.ProtectedPrefix,
		LoginPath:       c.LoginPath,
		HomePath:        c.HomePath,
	}
}

// Exclusions builds the gate exclusion set.
func (c Config) Exclusions() access.Exclusions {
	return access.Exclusions{
		Prefixes: trimAll(c.ExcludePrefixes),
		Suffixes: trimAll(c.ExcludeSuffixes),
	}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
