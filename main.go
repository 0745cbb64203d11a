package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mblythe/rentwatcher/config"
	"mblythe/rentwatcher/helpers"
	"mblythe/rentwatcher/internal/scraper"
	"mblythe/rentwatcher/logger"
	"mblythe/rentwatcher/services/cache"
	"mblythe/rentwatcher/services/notifier"
	"mblythe/rentwatcher/services/store"
	"mblythe/rentwatcher/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration. A missing webhook endpoint is an
	// early no-op exit, not a crash: nothing is fetched and the state
	// file is left untouched.
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("state_backend", cfg.StateBackend).
		Dur("poll_interval", cfg.PollInterval).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Dedup store
	var st store.Store
	switch cfg.StateBackend {
	case "redis":
		redisStore := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisKey)
		defer redisStore.Close()
		st = redisStore
		log.Info().Str("addr", cfg.RedisAddr).Str("key", cfg.RedisKey).Msg("Using Redis state store")
	default:
		st = store.NewFileStore(cfg.StateFile)
		log.Info().Str("path", cfg.StateFile).Msg("Using file state store")
	}

	// Optional rate-limit block cache
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Using memcache rate-limit cache")
	}

	// One client for all source fetches within a run; it owns the cookie
	// jar that carries warm-up session cookies.
	client := helpers.NewClient()

	scrapers := scraper.CreateScrapers(&cfg, client, cacheSvc)
	log.Info().Int("scraper_count", len(scrapers)).Msg("Created scrapers")

	n := notifier.NewDiscordNotifier(cfg.WebhookURL, nil)

	w := worker.NewWorker(ctx, scrapers, st, n, cfg.PollInterval)

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting rental listing worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker completion
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}
