package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lostandfound-backend/internal/config"
	"lostandfound-backend/internal/embedding"
	"lostandfound-backend/internal/handler"
	"lostandfound-backend/internal/matching"
	"lostandfound-backend/internal/notifier"
	"lostandfound-backend/internal/repository"
	"lostandfound-backend/internal/server"
	"lostandfound-backend/internal/service"
	"lostandfound-backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfgPath := "configs/config.yml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Initialize repositories
	authRepo := repository.NewAuthRepository(db, logger)
	itemRepo := repository.NewItemRepository(db, logger)
	matchRepo := repository.NewMatchRepository(db, logger)
	chatRepo := repository.NewChatRepository(db, logger)

	// Pick the similarity provider. When the embedding sidecar is down
	// at startup the service degrades to lexical matching for its whole
	// lifetime rather than refusing to start.
	var provider matching.SimilarityProvider
	if cfg.EmbeddingService.URL != "" {
		client := embedding.NewClient(cfg.EmbeddingService.URL)
		healthCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		health, err := client.HealthCheck(healthCtx)
		cancel()
		if err != nil {
			logger.Warn("Embedding service unreachable, falling back to lexical matching", zap.Error(err))
			provider = matching.NewLexicalProvider()
		} else {
			logger.Info("Embedding service connected",
				zap.String("status", health.Status),
				zap.String("device", health.Device))
			provider = matching.NewEmbeddingProvider(client, logger)
		}
	} else {
		logger.Info("No embedding service configured, using lexical matching")
		provider = matching.NewLexicalProvider()
	}

	// Photo storage
	var photos *storage.PhotoStorage
	if cfg.Storage.Endpoint != "" {
		photos, err = storage.NewPhotoStorage(
			cfg.Storage.Endpoint,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.Bucket,
			cfg.Storage.UseSSL,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to initialize photo storage", zap.Error(err))
		}
	} else {
		logger.Warn("No photo storage configured, photo uploads disabled")
	}

	// Notification channels
	var channels []notifier.Dispatcher
	if cfg.Notifications.SMTPHost != "" {
		channels = append(channels, notifier.NewEmailDispatcher(
			cfg.Notifications.SMTPHost,
			cfg.Notifications.SMTPPort,
			cfg.Notifications.SMTPFrom,
			cfg.Notifications.SMTPPassword,
			logger,
		))
	}
	tg, err := notifier.NewTelegramDispatcher(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChatID, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
	} else if tg != nil {
		channels = append(channels, tg)
	}
	dispatcher := notifier.NewMultiDispatcher(logger, channels...)

	// Matching engine
	scorer := matching.NewScorer(provider, cfg.Matching.Weights, logger)
	engine := matching.NewEngine(itemRepo, matchRepo, scorer, cfg.Matching.Thresholds, dispatcher, logger)

	// Services and handlers
	authService := service.NewAuthService(authRepo, cfg.Auth.JWTSecret, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	itemHandler := handler.NewItemHandler(itemRepo, matchRepo, engine, photos, logger)
	matchHandler := handler.NewMatchHandler(matchRepo, itemRepo, logger)
	chatHandler := handler.NewChatHandler(chatRepo, matchRepo, itemRepo, logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(cfg.Auth.JWTSecret, authHandler, itemHandler, matchHandler, chatHandler, logger)
	go func() {
		if err := srv.Run(cfg.Server.Port); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Application stopped.")
}
