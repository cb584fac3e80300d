package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkalil/prepdash/internal/api"
	"github.com/mkalil/prepdash/internal/config"
	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/storage/sqlite"
	"github.com/mkalil/prepdash/internal/store"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PrepDash Sync Daemon Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("api_base_url=%s", cfg.APIBaseURL)
	log.Debug("storage_path=%s", cfg.StoragePath)
	log.Debug("request_timeout=%v", cfg.RequestTimeout)
	log.Debug("stale_threshold=%v", cfg.StaleThreshold)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("mock_fallback=%t", cfg.MockFallback)

	// Open local storage
	kv, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		log.Error("failed to open local storage: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing local storage")
		kv.Close()
	}()

	// Initialize gateway and stores
	gateway := api.New(cfg.APIBaseURL, kv,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithSignInURL(cfg.SignInURL),
		api.WithUnauthorizedHandler(func(signInURL string) {
			log.Warn("session expired, sign in again at %s", signInURL)
		}),
	)

	deps := store.Deps{Gateway: gateway, KV: kv, Config: cfg}
	stores := store.NewStores(deps)
	coord := store.NewCoordinator(deps, stores)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coord.Start(ctx)
	log.Info("stores synchronized, watching for external changes")

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)
	cancel()
	coord.Stop()

	log.Info("===========================================")
	log.Info("PrepDash Sync Daemon Stopped")
	log.Info("===========================================")
}
