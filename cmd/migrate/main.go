package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/foodsnap/backend/config"
	"github.com/pageza/foodsnap/backend/internal/database"
	"github.com/pageza/foodsnap/backend/internal/logging"
)

func main() {
	_ = godotenv.Load()

	logger, err := logging.New(config.GetEnvironment())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	logger.Info("Migrations are up to date", zap.String("driver", cfg.DBDriver))
}
