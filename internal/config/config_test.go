package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

func parseFrom(t *testing.T, vars map[string]string) (Config, error) {
	t.Helper()
	return parse(env.Options{Prefix: "DASHBOARD_", Environment: vars})
}

// TestLoad_Defaults tests the development defaults.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := parseFrom(t, map[string]string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if p := cfg.Policy(); p.ProtectedPrefix != "/dashboard" || p.LoginPath != "/login" || p.HomePath != "/dashboard" {
		t.Errorf("Policy = %+v", p)
	}
	ex := cfg.Exclusions()
	if strings.Join(ex.Prefixes, ",") != "/api,/static/,/_next/static,/_next/image" {
		t.Errorf("Prefixes = %v", ex.Prefixes)
	}
	if strings.Join(ex.Suffixes, ",") != ".png" {
		t.Errorf("Suffixes = %v", ex.Suffixes)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("CORSOrigins = %v, want none", cfg.CORSOrigins)
	}
}

// TestLoad_Overrides tests values read from the environment.
func TestLoad_Overrides(t *testing.T) {
	cfg, err := parseFrom(t, map[string]string{
		"DASHBOARD_DB_DRIVER":             "pgx",
		"DASHBOARD_DB_DSN":                "postgres://localhost/dashboard",
		"DASHBOARD_PROTECTED_PREFIX":      "/app",
		"DASHBOARD_HOME_PATH":             "/app",
		"DASHBOARD_GATE_EXCLUDE_SUFFIXES": ".png, .svg",
		"DASHBOARD_LOG_LEVEL":             "debug",
		"DASHBOARD_CORS_ORIGINS":          "https://a.example.com,https://b.example.com",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.Policy().ProtectedPrefix != "/app" {
		t.Errorf("ProtectedPrefix = %q", cfg.Policy().ProtectedPrefix)
	}
	if got := cfg.Exclusions().Suffixes; len(got) != 2 || got[1] != ".svg" {
		t.Errorf("Suffixes = %v", got)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v", cfg.SlogLevel())
	}
}

// TestLoad_Invalid tests rejected configurations.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"unknown driver", map[string]string{"DASHBOARD_DB_DRIVER": "mysql"}},
		{"production without secret", map[string]string{"DASHBOARD_ENV": "production"}},
		{"bad csrf key", map[string]string{"DASHBOARD_CSRF_KEY": "abc"}},
		{"relative login path", map[string]string{"DASHBOARD_LOGIN_PATH": "login"}},
		{"bad duration", map[string]string{"DASHBOARD_SESSION_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFrom(t, tt.vars); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestLoad_Production tests a complete production configuration.
func TestLoad_Production(t *testing.T) {
	cfg, err := parseFrom(t, map[string]string{
		"DASHBOARD_ENV":            "production",
		"DASHBOARD_SESSION_SECRET": strings.Repeat("s", 32),
		"DASHBOARD_CSRF_KEY":       strings.Repeat("ab", 32),
		"DASHBOARD_ADMIN_PASSWORD": "correct horse battery",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	key, err := cfg.CSRFKeyBytes()
	if err != nil || len(key) != 32 {
		t.Errorf("CSRFKeyBytes = %d bytes, %v", len(key), err)
	}
}

// TestLoad_ProductionAdminPassword tests that the seed password must be changed
// before production.
func TestLoad_ProductionAdminPassword(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{
			"DASHBOARD_ENV":            "production",
			"DASHBOARD_SESSION_SECRET": strings.Repeat("s", 32),
			"DASHBOARD_CSRF_KEY":       strings.Repeat("ab", 32),
		}
	}

	if _, err := parseFrom(t, base()); err == nil {
		t.Error("default admin password accepted in production")
	}

	vars := base()
	vars["DASHBOARD_ADMIN_PASSWORD"] = "123456"
	if _, err := parseFrom(t, vars); err == nil {
		t.Error("explicit default admin password accepted in production")
	}

	if cfg, err := parseFrom(t, map[string]string{}); err != nil || cfg.AdminPassword != "123456" {
		t.Errorf("development default: password = %q, err = %v", cfg.AdminPassword, err)
	}
}
