package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	portsrepo "github.com/ledgerline/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
	"github.com/ledgerline/bookkeeping_app/internal/core/services"
	"github.com/ledgerline/bookkeeping_app/internal/handlers"
	"github.com/ledgerline/bookkeeping_app/internal/middleware"
	"github.com/ledgerline/bookkeeping_app/internal/platform/config"
	"github.com/ledgerline/bookkeeping_app/internal/platform/simnet"
	"github.com/ledgerline/bookkeeping_app/internal/repositories/database/sqlite"
	"github.com/ledgerline/bookkeeping_app/internal/repositories/memory"
	"github.com/ledgerline/bookkeeping_app/internal/utils"
	"github.com/ledgerline/bookkeeping_app/pkg/database"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title BKA Backend API
// @version 1.0
// @description This is a sample server for BKA backend.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	txnRepo, cleanup, err := buildTransactionRepository(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize transaction store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if cfg.SeedDemoData {
		seeded, err := txnRepo.SeedTransactionsIfEmpty(context.Background(), utils.DemoTransactions())
		if err != nil {
			logger.Error("Failed to seed demo data", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if seeded > 0 {
			logger.Info("Seeded demo transactions", slog.Int("count", seeded))
		}
	}

	svcContainer := services.NewContainer(&portsrepo.RepositoryProvider{TransactionRepo: txnRepo})
	serviceContainer := &portssvc.ServiceContainer{
		Transaction: svcContainer.Transaction,
		Reporting:   svcContainer.Reporting,
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handlers.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(limitermem.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	// Warm the view session so the first snapshot is already populated
	warmView(serviceContainer.Transaction, logger)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildTransactionRepository selects the configured storage driver. The
// memory driver simulates network latency and sporadic failure; the sqlite
// driver persists to a local file and runs its migrations on startup.
func buildTransactionRepository(cfg *config.Config, logger *slog.Logger) (portsrepo.TransactionRepositoryFacade, func(), error) {
	switch cfg.StorageDriver {
	case "sqlite":
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := sqlite.NewTransactionRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("SQLite store ready", slog.String("path", cfg.SQLitePath))
		return repo, func() { db.Close() }, nil
	default:
		sim := simnet.New(simnet.Config{
			MinDelay:    cfg.SimMinDelay,
			MaxDelay:    cfg.SimMaxDelay,
			FailureRate: cfg.SimFailureRate,
		})
		logger.Info("In-memory store ready",
			slog.Duration("sim_min_delay", cfg.SimMinDelay),
			slog.Duration("sim_max_delay", cfg.SimMaxDelay),
			slog.Float64("sim_failure_rate", cfg.SimFailureRate),
		)
		return memory.NewTransactionRepository(sim), func() {}, nil
	}
}

// warmView runs the initial double refresh in the background. Failures are
// recorded in the view state and retried implicitly by the next mutation or
// filter change.
func warmView(ts portssvc.TransactionSvcFacade, logger *slog.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := ts.RefreshPage(ctx); err != nil {
			logger.Warn("Initial page refresh failed", slog.String("error", err.Error()))
		}
		if err := ts.RefreshFull(ctx); err != nil {
			logger.Warn("Initial aggregate refresh failed", slog.String("error", err.Error()))
		}
	}()
}
