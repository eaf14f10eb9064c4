package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"watwallet/internal/amqp"
	"watwallet/internal/cache"
	"watwallet/internal/config"
	"watwallet/internal/core"
	applog "watwallet/internal/log"
	"watwallet/internal/services"
	"watwallet/internal/store"
	"watwallet/internal/store/firestore"
	"watwallet/internal/store/memory"
	"watwallet/internal/store/sqlite"
	"watwallet/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	applog.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		slog.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	slog.Info("Starting watwallet-worker", "backend", cfg.StoreBackend)

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer st.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ledger := services.NewLedgerService(st)
	refresher := worker.NewRefreshWorker(ledger, cache.NewLRU[core.TotalLedger](256, cfg.LedgerCacheTTL))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	err = amqpClient.ConsumeTransactionEvents(ctx, refresher.HandleEvent)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Event consumption stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker shutdown complete")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return sqlite.New(cfg.SQLiteDBPath)
	case "firestore":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return firestore.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentials)
	default:
		return memory.New(), nil
	}
}
