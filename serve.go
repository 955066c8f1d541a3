package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/msomdec/newsdesk/internal/handler"
	"github.com/msomdec/newsdesk/internal/render"
	"github.com/msomdec/newsdesk/internal/repository/sqlstore"
	"github.com/msomdec/newsdesk/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed and start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateUp(ctx, db); err != nil {
		return err
	}

	users := sqlstore.NewUserRepository(db)
	articles := sqlstore.NewArticleRepository(db)
	tags := sqlstore.NewTagRepository(db)
	statuses := sqlstore.NewStatusRepository(db)
	genders := sqlstore.NewGenderRepository(db)

	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Seed reference data (idempotent).
	seeder := service.NewSeeder(genders, statuses, tags, users, hasher)
	if err := seeder.Seed(ctx, service.SeedOptions{DemoPassword: cfg.Seed.DemoPassword}); err != nil {
		return err
	}
	slog.Info("reference data seeded")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.SqlDB, "newsdesk"),
	)

	var limiter *service.RateLimiter
	if cfg.RateLimit.LoginPerMinute > 0 {
		limiter = service.NewRateLimiter(cfg.RateLimit.LoginPerMinute/60, cfg.RateLimit.LoginBurst)
		go limiter.Cleanup(ctx, time.Minute, 10*time.Minute)
	}

	auth := service.NewAuthService(users, hasher, tokens, cfg.Auth.TokenTTL)
	h := handler.NewHandler(handler.Deps{
		DB:           db,
		Auth:         auth,
		Users:        service.NewUserService(users),
		Articles:     service.NewArticleService(articles, users, tags, statuses),
		References:   service.NewReferenceService(statuses, genders, tags),
		Renderer:     render.NewPDF(cfg.PDF.FontPath),
		LoginLimiter: limiter,
		Metrics:      handler.NewMetrics(reg),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           h,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
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
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
