/*
Package main is the entry point for the LearnLoop web core.

It is responsible for loading configuration, initializing the global logging
system, connecting the draft store and catalog cache, wiring the wizard,
access gate and job tracker to the platform backend client, and gracefully
handling operating system interrupt signals (SIGINT, SIGTERM) to ensure a
smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"learnloop/internal/app/catalog"
	"learnloop/internal/app/db"
	"learnloop/internal/app/jobs"
	"learnloop/internal/app/upstream"
	"learnloop/internal/app/wizard"
	"learnloop/internal/configs"
	"learnloop/internal/handler"
	"learnloop/internal/pkg/logx"
)

func main() {
	// A missing .env is fine in deployed environments; variables come from
	// the orchestrator there.
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger("learnloop-web-core", cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("backend_base_url", cfg.BackendBaseURL).
		Str("catalog_source", cfg.CatalogSource).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to the draft database")
	}
	defer pool.Close()

	source, err := catalog.NewSource(cfg)
	if err != nil {
		logx.Fatal(err, "Failed to build the skill catalog source")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		source = catalog.NewCachedSource(source, rdb, catalog.DefaultCacheTTL)
		logx.Info("Skill catalog cache enabled", "redis_addr", cfg.RedisAddr)
	}

	backend := upstream.NewClient(cfg.BackendBaseURL)

	deps := &handler.AppDeps{
		Config:  cfg,
		Backend: backend,
		Machine: wizard.NewMachine(db.NewDraftStore(pool), source, backend),
		Tracker: jobs.NewTracker(backend),
		Catalog: source,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("LearnLoop web core starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
