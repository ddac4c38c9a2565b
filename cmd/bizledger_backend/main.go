package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/go-redis/redis/v8"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_backend/internal/core/services"
	"github.com/bizledger/bizledger_backend/internal/handlers"
	"github.com/bizledger/bizledger_backend/internal/middleware"
	"github.com/bizledger/bizledger_backend/internal/platform/config"
	"github.com/bizledger/bizledger_backend/internal/projection"
	"github.com/bizledger/bizledger_backend/internal/repositories/database/pgsql"
	"github.com/bizledger/bizledger_backend/pkg/database"
)

// @title BizLedger Backend API
// @version 1.0
// @description Small-business management API: customers, inventory, invoices, expenses and derived reports.

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
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	provider := pgsql.NewRepositoryProvider(dbPool)
	repos := &provider

	// Projection store: Redis when configured, in-process map otherwise.
	projStore, err := newProjectionStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize projection store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Warm the projection from the record store so reports are correct
	// from the first request.
	if err := warmProjection(context.Background(), repos, projStore); err != nil {
		logger.Error("Failed to warm projection from record store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Projection warmed from record store.")

	svcContainer := services.NewServiceContainer(repos, projStore)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, timeout, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	rateStore := limitermemory.NewStore()
	rate := limiter.Rate{Period: time.Minute, Limit: int64(cfg.RateLimitPerMinute)}
	r.Use(middleware.RateLimit(limiter.New(rateStore, rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcContainer)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
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

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newProjectionStore selects the projection backend from configuration.
func newProjectionStore(cfg *config.Config, logger *slog.Logger) (projection.Store, error) {
	if cfg.RedisAddr == "" {
		logger.Info("Using in-process projection store.")
		return projection.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	logger.Info("Using Redis projection store.", slog.String("addr", cfg.RedisAddr))
	return projection.NewRedisStore(client), nil
}

// warmProjection loads the full current state of every collection from the
// record store into the projection.
func warmProjection(ctx context.Context, repos *portsrepo.RepositoryProvider, store projection.Store) error {
	customers, err := repos.CustomerRepo.ListCustomers(ctx)
	if err != nil {
		return err
	}
	products, err := repos.ProductRepo.ListProducts(ctx)
	if err != nil {
		return err
	}
	expenses, err := repos.ExpenseRepo.ListExpenses(ctx)
	if err != nil {
		return err
	}
	invoices, err := repos.InvoiceRepo.ListInvoices(ctx)
	if err != nil {
		return err
	}

	return store.ReplaceAll(ctx, projection.Snapshot{
		Customers: customers,
		Products:  products,
		Expenses:  expenses,
		Invoices:  invoices,
	})
}
