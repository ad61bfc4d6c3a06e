// ABOUTME: Entry point for the energy audit analyzer backend service
// ABOUTME: Provides the HTTP API for audits, equipment inventories and energy reports

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"

	"github.com/ecg-energy/audit-analyzer/cache"
	"github.com/ecg-energy/audit-analyzer/config"
	"github.com/ecg-energy/audit-analyzer/handlers"
	"github.com/ecg-energy/audit-analyzer/logger"
	"github.com/ecg-energy/audit-analyzer/metrics"
	"github.com/ecg-energy/audit-analyzer/middleware"
	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
	"github.com/ecg-energy/audit-analyzer/store"
)

const shutdownTimeout = 10 * time.Second

// app holds the assembled server and the resources it must release
type app struct {
	handler http.Handler
	store   *store.Store
	closers []func()
}

func (a *app) Close() {
	for _, c := range a.closers {
		c()
	}
}

// recoveryLogger routes gorilla's panic reports into slog
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	slog.Error("Recovered from handler panic", "error", fmt.Sprint(v...))
}

func newApp(cfg *config.Config) (*app, error) {
	st, err := store.New(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	slog.Info("Store opened", "path", st.Path())

	if cfg.AdminEmail != "" {
		created, err := st.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("seeding admin: %w", err)
		}
		if created {
			slog.Info("Admin account created", "email", cfg.AdminEmail)
		}
	}

	sessionCache := cache.New[*models.Session]("sessions", cfg.SessionDuration())
	reportCache := cache.New[models.AuditReport]("reports", cfg.ReportCacheDuration())
	slog.Info("Caches initialized", "session_ttl", cfg.SessionDuration(), "report_ttl", cfg.ReportCacheDuration())

	m := metrics.New()
	engine := services.NewEngine(cfg.EngineConfig())
	reports := services.NewReportService(engine, reportCache, m)
	sessions := services.NewSessionService(sessionCache, cfg.SessionDuration())

	h := handlers.NewHandler(cfg, st, sessions, reports, m)

	var opts handlers.RouterOptions
	if cfg.RateLimitEnabled {
		opts.LoginLimiter = middleware.NewRateLimiter(cfg.RateLimitLogin, time.Minute)
		opts.WriteLimiter = middleware.NewRateLimiter(cfg.RateLimitWrite, time.Minute)
		slog.Info("Rate limiting enabled", "login_per_min", cfg.RateLimitLogin, "write_per_min", cfg.RateLimitWrite)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	var handler http.Handler = h.NewRouter(opts)
	handler = gorillahandlers.CompressHandler(handler)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(cfg.CORSAllowedOrigins),
			gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
			gorillahandlers.ExposedHeaders([]string{"X-Request-ID", "Retry-After", "Content-Disposition"}),
			gorillahandlers.AllowCredentials(),
			gorillahandlers.MaxAge(3600),
		)(handler)
		slog.Info("CORS enabled", "origins", cfg.CORSAllowedOrigins)
	}
	handler = gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(recoveryLogger{}),
		gorillahandlers.PrintRecoveryStack(true),
	)(handler)

	return &app{
		handler: handler,
		store:   st,
		closers: []func(){sessionCache.Close, reportCache.Close},
	}, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Energy Audit Analyzer Backend")
	slog.Info("Engine configured",
		"metrics_source", cfg.MetricsSource,
		"adjustment_scope", cfg.AdjustmentScope,
		"density_rules", cfg.DensityRules)
	if cfg.AdminEmail == "" {
		slog.Warn("ADMIN_EMAIL not set, no admin will be seeded on an empty store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
