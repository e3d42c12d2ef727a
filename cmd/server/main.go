package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"character-studio/backend/pkg/config"
	"character-studio/backend/pkg/di"
	"character-studio/backend/pkg/router"
	"character-studio/backend/shared/observability"
)

func main() {
	cfg := config.New()

	container, err := di.New(cfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize application: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer container.Close()

	log := container.Logger

	if cfg.Observability.Enabled {
		observability.SetupPrometheusMetrics(cfg.Observability.MetricsPort)
	}
	container.Health.Start()

	// Startup repair pass: formalizes the self-healing read as an explicit
	// compaction at a controlled point.
	if report, err := container.CompactService.Run(context.Background()); err != nil {
		log.LogError(err, "startup compaction failed")
	} else {
		log.Info("startup compaction complete", "characters_kept", report.CharactersKept)
	}

	r := router.New(container)
	r.SetupRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r.Engine,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "server stopped")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "forced shutdown")
	}
}
