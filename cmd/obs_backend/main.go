package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/obs-bank/ledger-core/internal/core/services"
	"github.com/obs-bank/ledger-core/internal/handlers"
	"github.com/obs-bank/ledger-core/internal/middleware"
	"github.com/obs-bank/ledger-core/internal/repositories/database/pgsql"
	"github.com/obs-bank/ledger-core/pkg/config"
	"github.com/obs-bank/ledger-core/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	setupRoutes(r, cfg, dbPool)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies pending schema migrations over a temporary
// database/sql connection using the pgx stdlib driver, so the migration
// tooling stays compatible with the main pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		migrationDB.Close()
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}
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

func setupRoutes(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool) {
	accountRepo := pgsql.NewAccountRepository(dbPool)
	txnRepo := pgsql.NewTransactionRepository(dbPool)
	userRepo := pgsql.NewUserRepository(dbPool)
	billRepo := pgsql.NewBillPaymentRepository(dbPool)

	ledgerService := services.NewLedgerService(accountRepo, cfg.CASMaxRetries)
	transferService := services.NewTransferService(accountRepo, txnRepo, ledgerService, cfg.ApprovalThreshold)
	accountService := services.NewAccountService(accountRepo, txnRepo, userRepo, ledgerService)
	billService := services.NewBillPaymentService(accountRepo, txnRepo, billRepo, ledgerService)
	userService := services.NewUserService(userRepo)

	// Public auth routes, rate limited per client IP.
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	ipLimiter := limiter.New(limitermem.NewStore(), rate)

	public := r.Group("/api/v1", middleware.RateLimit(ipLimiter))
	handlers.RegisterAuthRoutes(public, userService, cfg)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	handlers.RegisterAccountRoutes(v1, accountService)
	handlers.RegisterTransactionRoutes(v1, transferService)
	handlers.RegisterBillRoutes(v1, billService)
}
