package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"graphlens/infrastructure/config"
	"graphlens/infrastructure/di"
	"graphlens/interfaces/http/rest"
	"graphlens/interfaces/http/rest/handlers"
	"graphlens/pkg/observability"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer cleanup()
	defer observability.SyncLogger(container.Logger)

	verifyCtx, verifyCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := container.Store.VerifyConnectivity(verifyCtx); err != nil {
		// The API still starts; /ready reports the store until it comes up
		container.Logger.Warn("Graph store is not reachable yet", zap.Error(err))
	}
	verifyCancel()

	router := rest.NewRouter(
		container.QueryBus,
		container.HealthChecks,
		container.Collector,
		rest.RouterConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RequestTimeout: cfg.RequestTimeout(),
			EnableMetrics:  cfg.EnableMetrics,
			Debug:          cfg.IsDevelopment(),
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			Defaults: handlers.QueryDefaults{
				Hops:              cfg.DefaultHops,
				Limit:             cfg.DefaultLimit,
				MaxOtherCompanies: cfg.DefaultMaxOtherCompanies,
			},
		},
		container.Logger,
	)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("backend", cfg.StoreBackend),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	container.Logger.Info("Server stopped")
}
