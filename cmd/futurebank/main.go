package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"futurebank/internal/amqp"
	"futurebank/internal/bank"
	"futurebank/internal/bank/memory"
	"futurebank/internal/config"
	"futurebank/internal/forecast"
	apphttp "futurebank/internal/http"
	"futurebank/internal/services"
	"futurebank/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present; real environment wins.
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file loaded", "reason", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var (
		accountStore bank.AccountStore
		ledger       bank.TransactionLedger
	)

	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite backend", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		accountStore, ledger = repo, repo
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		accountStore = memory.NewStore()
		ledger = memory.NewLedger()
		logger.Info("Initialized memory backend")
	}

	// Event publishing is optional; the transfer engine degrades to
	// local-only operation without it.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, transfer events disabled", "error", err)
		} else {
			amqpClient = client
			defer amqpClient.Close()
			logger.Info("Connected to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	var forecaster services.Forecaster
	if cfg.ForecastURL != "" {
		forecaster = forecast.NewClient(cfg.ForecastURL)
		logger.Info("Forecast collaborator configured", "url", cfg.ForecastURL)
	}

	locks := bank.NewAccountLocks()
	transferService := services.NewTransferService(accountStore, ledger, locks, amqpClient)
	accountService := services.NewAccountService(accountStore, locks)
	transactionService := services.NewTransactionService(accountStore, ledger, transferService)
	expenditureService := services.NewExpenditureService(ledger, forecaster)

	srv := apphttp.NewServer(":"+cfg.Port, accountService, transferService, transactionService, expenditureService)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting futurebank server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Shutdown signal received")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
