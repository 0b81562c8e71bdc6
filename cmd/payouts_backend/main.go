package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tickethub/payouts_backend/internal/adapters/queue"
	"github.com/tickethub/payouts_backend/internal/adapters/security"
	"github.com/tickethub/payouts_backend/internal/core/ports"
	"github.com/tickethub/payouts_backend/internal/core/services"
	"github.com/tickethub/payouts_backend/internal/handlers"
	"github.com/tickethub/payouts_backend/internal/middleware"
	"github.com/tickethub/payouts_backend/internal/platform/config"
	"github.com/tickethub/payouts_backend/internal/repositories/database/pgsql"
	"github.com/tickethub/payouts_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title TicketHub Payouts API
// @version 1.0
// @description Bank account management and payout processing for the TicketHub platform.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fieldCipher := buildFieldCipher(cfg, logger)

	// Initialize database connection pool (for application use)
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

	// Kafka producer for payout events; skipped when no broker is configured.
	var publisher ports.EventPublisher
	if cfg.KafkaBroker != "" {
		producer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaPayoutTopic, logger)
		defer producer.Close() //nolint:errcheck
		publisher = producer
		logger.Info("Kafka producer initialized", slog.String("broker", cfg.KafkaBroker), slog.String("topic", cfg.KafkaPayoutTopic))
	} else {
		logger.Warn("KAFKA_BROKER not set; payout events will not be published")
	}

	repos := pgsql.NewRepositoryContainer(dbPool)
	serviceContainer := services.NewServiceContainer(repos.BankAccount, repos.Payout, fieldCipher, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildFieldCipher derives the field-encryption key from configuration. A
// missing key is fatal in production; elsewhere an ephemeral key is generated
// so previously stored accounts become unreadable across restarts.
func buildFieldCipher(cfg *config.Config, logger *slog.Logger) ports.FieldCipher {
	var key []byte
	var err error
	if cfg.EncryptionKey == "" {
		if cfg.IsProduction {
			logger.Error("ENCRYPTION_KEY must be set in production")
			os.Exit(1)
		}
		key, err = security.GenerateKey()
		if err != nil {
			logger.Error("Failed to generate ephemeral encryption key", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Warn("ENCRYPTION_KEY not set; using an ephemeral key, stored bank accounts will not survive a restart")
	} else {
		key, err = security.DeriveKey(cfg.EncryptionKey)
		if err != nil {
			logger.Error("Failed to derive encryption key", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	fieldCipher, err := security.NewFieldCipher(key, logger)
	if err != nil {
		logger.Error("Failed to initialize field cipher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return fieldCipher
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a standard sql.DB connection for migrations using the pgx stdlib driver
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
