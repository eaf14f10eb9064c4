package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"watwallet/internal/amqp"
	"watwallet/internal/cache"
	"watwallet/internal/config"
	"watwallet/internal/core"
	"watwallet/internal/geo"
	apphttp "watwallet/internal/http"
	applog "watwallet/internal/log"
	"watwallet/internal/services"
	"watwallet/internal/session"
	"watwallet/internal/store"
	"watwallet/internal/store/firestore"
	"watwallet/internal/store/memory"
	"watwallet/internal/store/sqlite"
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

	slog.Info("Starting watwallet", "backend", cfg.StoreBackend, "port", cfg.Port)

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer st.Close()

	// AMQP is optional: without a broker the service runs, it just does not
	// publish mutation events.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
			slog.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		slog.Info("AMQP disabled, mutation events will not be published")
	}

	identity := &session.Static{UID: cfg.DevUserID}

	seasons := services.NewSeasonService(st)
	ledger := services.NewLedgerService(st)
	transactions := services.NewTransactionService(st, events)
	jobs := services.NewJobService(st, seasons)
	employers := services.NewEmployerService(st)
	users := services.NewUserService(st, identity, cache.NewLRU[core.User](cfg.UserCacheSize, 0))

	// Fixture geocoder; swap for a real provider once one is configured.
	geocoder := &geo.Static{Places: []geo.Place{
		{Label: "Rimini, Italy", Latitude: 44.0594, Longitude: 12.5683},
		{Label: "Riccione, Italy", Latitude: 44.0003, Longitude: 12.6556},
		{Label: "Jesolo, Italy", Latitude: 45.5342, Longitude: 12.6403},
	}}

	srv := apphttp.NewServer(":"+cfg.Port, ledger, transactions, jobs, employers, users, identity, geocoder)

	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown incomplete", "error", err)
	}
	slog.Info("Shutdown complete")
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
