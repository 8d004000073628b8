// Command migrate prepares a database for the records manager: it applies
// the SQL migrations and seeds the default admin account, then exits. Run it
// once against a fresh database, or after pulling new migration files.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/selim/srms/internal/app/migrations"
	"github.com/selim/srms/internal/app/repositories"
	"github.com/selim/srms/internal/config"
	"github.com/selim/srms/internal/db"
	"github.com/selim/srms/internal/pkg/logger"
	"github.com/selim/srms/internal/seed"
)

func main() {
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the YAML config file")
	migrationsDir := flag.String("migrations", "migrations", "directory holding SQL migration files")
	skipSeed := flag.Bool("skip-seed", false, "do not create the default admin account")
	flag.Parse()

	// .env is optional; environment variables override the config file
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "text",
	})

	ctx := context.Background()

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer database.Close()

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, *migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migrations failed")
		os.Exit(1)
	}
	logger.Info().Msg("Database migrations applied")

	if !*skipSeed {
		repos := repositories.NewRepositories(database.Pool)
		if err := seed.CreateDefaultData(ctx, repos); err != nil {
			logger.Error().Err(err).Msg("Failed to seed default data")
			os.Exit(1)
		}
	}

	logger.Info().Msg("Database ready")
}
