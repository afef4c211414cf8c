// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"movie-paradise/cmd"
	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/wire"
	"movie-paradise/pkg/database"
	"movie-paradise/pkg/storage"
	"movie-paradise/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema is up to date")
	}

	// Object storage is optional; uploads answer 503 without it
	var store storage.ObjectStorage
	if config.MinIO.Enabled() {
		minioStore, err := storage.NewMinIOStorage(ctx, config.MinIO, logger)
		if err != nil {
			logger.Fatal("Failed to init object storage", zap.Error(err))
		}
		store = minioStore
		logger.Info("Object storage ready", zap.String("bucket", config.MinIO.Bucket))
	} else {
		logger.Warn("MinIO not configured, image uploads disabled")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, config.Database.QueryTimeout, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, store, config, logger)

	go app.Service.RunMaintenance(ctx, time.Hour)
	go app.ReviewLimiter.RunCleanup(ctx, time.Minute)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
