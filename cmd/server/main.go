package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"dashboard/internal/adapters/cache"
	web "dashboard/internal/adapters/http"
	"dashboard/internal/adapters/http/middleware"
	"dashboard/internal/adapters/http/perf"
	"dashboard/internal/adapters/storage"
	accountStore "dashboard/internal/adapters/storage/account"
	customerStore "dashboard/internal/adapters/storage/customer"
	invoiceStore "dashboard/internal/adapters/storage/invoice"
	"dashboard/internal/application/orchestrators"
	"dashboard/internal/config"
	"dashboard/internal/domain/access"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server_event", "event", "fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.DBDriver, cfg.DBDSN, cfg.MaxConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.InitDB(ctx, db, cfg.DBDriver); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	slog.Info("server_event", "event", "database_ready", "driver", cfg.DBDriver)

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, cfg.DBDriver, collector, cfg.SlowQueryMs)

	stores := web.Stores{
		AccountStore:  accountStore.NewSQLStore(timedDB),
		CustomerStore: customerStore.NewSQLStore(timedDB),
		InvoiceStore:  invoiceStore.NewSQLStore(timedDB),
	}
	if err := seed(ctx, cfg, stores); err != nil {
		return err
	}

	views, closeViews, err := newViewCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeViews()

	sessionSecret := []byte(cfg.SessionSecret)
	if len(sessionSecret) == 0 {
		sessionSecret = randomKey()
		slog.Warn("server_event", "event", "ephemeral_session_secret", "detail", "sessions won't survive restart; set DASHBOARD_SESSION_SECRET")
	}
	csrfKey := randomKey()
	if cfg.CSRFKey != "" {
		if csrfKey, err = cfg.CSRFKeyBytes(); err != nil {
			return err
		}
	}

	limiter := middleware.NewRateLimiter(cfg.RatePerSecond, time.Second)
	go limiter.SweepEvery(ctx, time.Minute)

	handler := web.NewMux(stores, web.Options{
		Policy:         cfg.Policy(),
		Exclusions:     cfg.Exclusions(),
		Navigation:     access.DefaultNavigation(),
		Sessions:       middleware.NewSessionManager(sessionSecret, cfg.SessionTTL, cfg.SecureCookies),
		Views:          views,
		Perf:           collector,
		CSRFKey:        csrfKey,
		SecureCookies:  cfg.SecureCookies,
		TrustedOrigins: cfg.TrustedOrigin,
		CORSOrigins:    cfg.CORSOrigins,
		Limiter:        limiter,
		SlowRequestMs:  cfg.SlowRequestMs,
		Health:         timedDB.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_event", "event", "listening", "addr", cfg.Addr, "version", version, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_event", "event", "shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newViewCache uses Redis when configured so every instance shares invalidations.
func newViewCache(ctx context.Context, cfg config.Config) (cache.ViewCache, func(), error) {
	if cfg.RedisURL == "" {
		slog.Info("server_event", "event", "view_cache", "backend", "memory")
		return cache.NewMemoryCache(), func() {}, nil
	}
	rc, err := cache.NewRedisCacheFromURL(ctx, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("server_event", "event", "view_cache", "backend", "redis")
	return rc, func() { rc.Close() }, nil
}

func seed(ctx context.Context, cfg config.Config, stores web.Stores) error {
	generateID := func() string { return uuid.New().String() }

	err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.SeedAdminInput{
		Name:     "User",
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, orchestrators.SeedAdminDeps{AccountStore: stores.AccountStore, GenerateID: generateID})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if !cfg.SeedDemo || cfg.IsProduction() {
		return nil
	}
	err = orchestrators.ExecuteSeedDemo(ctx, orchestrators.SeedDemoDeps{
		CustomerStore: stores.CustomerStore,
		InvoiceStore:  stores.InvoiceStore,
		GenerateID:    generateID,
		Now:           time.Now,
	})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	return nil
}

func randomKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return key
}
