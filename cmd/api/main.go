package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/foodsnap/backend/config"
	"github.com/pageza/foodsnap/backend/internal/database"
	"github.com/pageza/foodsnap/backend/internal/logging"
	"github.com/pageza/foodsnap/backend/internal/middleware"
	"github.com/pageza/foodsnap/backend/internal/server"
	"github.com/pageza/foodsnap/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	logger, err := logging.New(config.GetEnvironment())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func run(logger *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = database.HealthCheck(ctx, db)
	cancel()
	if err != nil {
		return err
	}

	if err := database.RunMigrations(db, logger); err != nil {
		return err
	}

	if !cfg.HasCompletionCredentials() {
		logger.Warn("YA_API_KEY or YA_FOLDER_ID is not set; analyses will contain a configuration error message")
	}

	var observers []service.AnalysisObserver
	var opts server.Options

	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			// Continue without the event stream and rate limiting if Redis is not available
			logger.Warn("Failed to connect to Redis", zap.Error(err))
		} else {
			defer redisClient.Close()
			observers = append(observers, service.NewAnalysisEventPublisher(redisClient, service.DefaultAnalysisStream))
			if cfg.AnalyzeRateLimit > 0 {
				opts.RateLimiter = middleware.NewAnalyzeRateLimiter(redisClient, cfg.AnalyzeRateLimit, logger)
			}
		}
	}

	if cfg.S3BucketName != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logger.Warn("Failed to initialize S3 archive", zap.Error(err))
		} else {
			observers = append(observers, service.NewAnalysisArchiver(s3Cfg.Client, s3Cfg.BucketName))
			logger.Info("Archiving analyses to S3", zap.String("bucket", s3Cfg.BucketName))
		}
	}

	analysis := service.NewAnalysisService(
		newCompleter(cfg, logger),
		service.NewAnalysisStore(db),
		logger,
		observers...,
	)

	srv := server.New(cfg, analysis, logger, opts)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info("Received signal", zap.String("signal", sig.String()))
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

func newCompleter(cfg *config.Config, logger *zap.Logger) service.Completer {
	llmCfg := service.LLMConfig{
		APIKey:   cfg.YandexAPIKey,
		FolderID: cfg.YandexFolderID,
		APIURL:   cfg.LLMAPIURL,
	}

	if cfg.LLMProvider == config.ProviderOpenAI {
		logger.Info("Using the OpenAI-compatible completion API")
		return service.NewOpenAICompatibleService(llmCfg, logger)
	}
	return service.NewLLMService(llmCfg, logger)
}
