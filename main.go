package main

import (
	"log"
	"time"

	"ticket-booking/cmd"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/wire"
	"ticket-booking/pkg/cache"
	"ticket-booking/pkg/database"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to Redis for the stats cache
	statsCache, err := cache.New(config.Redis, time.Duration(config.Cache.TTLSeconds)*time.Second, logger)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, statsCache, db, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
