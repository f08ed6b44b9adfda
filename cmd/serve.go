package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/config"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/database"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/handler"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/metrics"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/profilegen"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/quest"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/repository"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	log.Info("connected to postgres", "host", cfg.DB.Host, "db", cfg.DB.Name)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNewMetrics(reg)

	gen, err := profilegen.NewClient(profilegen.Config{
		BaseURL: cfg.GenAI.BaseURL,
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		Timeout: cfg.GenAI.Timeout,
	}, log)
	if err != nil {
		return fmt.Errorf("profile generator: %w", err)
	}

	eventSvc := service.NewEventService(repository.NewPhaseRepository(pool), cfg.Events.RegistrationDeadline)
	if err := eventSvc.SeedPhases(ctx); err != nil {
		return err
	}
	regSvc := service.NewRegistrationService(repository.NewRegistrationRepository(pool))

	sessions := quest.NewRegistry(gen, cfg.Quest.SessionTTL, m, log, quest.WithMaxSessions(cfg.Quest.MaxSessions))
	go sessions.Run(ctx, time.Minute)

	// ── 3. Build the router ───────────────────────────────────────────────
	router := handler.NewRouter(handler.RouterConfig{
		Events:     handler.NewEventHandler(eventSvc, regSvc),
		Quests:     handler.NewQuestHandler(sessions, regSvc, log),
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Log:        log,
		WebDir:     cfg.WebDir,
		AdminToken: cfg.AdminToken,
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	// WriteTimeout leaves room for a full generation call inside a submit.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenAI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", "http://localhost:"+cfg.Port, "model", gen.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
