package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/anthonyshull/franknfurter/internal/cache"
	"github.com/anthonyshull/franknfurter/internal/core/services"
	"github.com/anthonyshull/franknfurter/internal/handlers"
	"github.com/anthonyshull/franknfurter/internal/jobs"
	"github.com/anthonyshull/franknfurter/internal/middleware"
	"github.com/anthonyshull/franknfurter/internal/repositories/database/pgsql"
	"github.com/anthonyshull/franknfurter/internal/repositories/provider"
	"github.com/anthonyshull/franknfurter/pkg/config"
	"github.com/anthonyshull/franknfurter/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Franknfurter API
// @version 1.0
// @description Currency conversion API backed by daily exchange rates.

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

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Repositories
	currencyRepo := pgsql.NewCurrencyRepository(dbPool)
	rateRepo := pgsql.NewExchangeRateRepository(dbPool)
	conversionRepo := pgsql.NewConversionRepository(dbPool)

	// Services
	currencyService := services.NewCurrencyService(currencyRepo)
	rateLookup := services.NewRateLookupService(rateRepo)
	rateCache := cache.NewMemoryRateCache(cfg.RateCacheTTL, cfg.RateCacheNegativeTTL, cfg.RateCacheGrace)
	conversionService := services.NewConversionService(conversionRepo, currencyService, rateLookup, rateCache)

	// Ingest job
	rateProvider := provider.NewFrankfurterClient(cfg.FrankfurterHost, cfg.FrankfurterPort, cfg.FetchTimeout)
	ingestService := services.NewRateIngestService(rateProvider, currencyRepo, rateRepo, logger)

	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.ScheduleRateIngest(cfg.IngestCronSpec, ingestService, cfg.IngestTimeout); err != nil {
		logger.Error("Failed to schedule rate ingest", slog.String("error", err.Error()))
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.RunIngestOnStart {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.IngestTimeout)
			defer cancel()
			if err := ingestService.IngestRates(ctx, time.Now().UTC()); err != nil {
				logger.Error("Startup rate ingest failed", slog.String("error", err.Error()))
			}
		}()
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RateLimit(limiter.New(
		limitermem.NewStore(),
		limiter.Rate{Period: time.Minute, Limit: cfg.RateLimitPerMinute},
	)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, currencyService, conversionService)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection through the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
