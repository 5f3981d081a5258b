package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/submission-gateway/internal/config"
	"github.com/noah-isme/submission-gateway/internal/database"
	"github.com/noah-isme/submission-gateway/internal/handler"
	"github.com/noah-isme/submission-gateway/internal/middleware"
	"github.com/noah-isme/submission-gateway/internal/repository"
	"github.com/noah-isme/submission-gateway/internal/router"
	"github.com/noah-isme/submission-gateway/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel).With().Timestamp().Str("service", cfg.AppName).Logger()

	store := database.NewHandle(func() (*gorm.DB, error) {
		return database.ConnectPostgres(cfg.StoreURL, cfg.StoreKey)
	})
	db, err := store.DB()
	if err != nil {
		log.Fatalf("failed to connect to store: %v", err)
	}
	defer store.Close()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	submissionRepo := repository.NewSubmissionRepository(db)
	publisher := service.NewSubmissionPublisher(redisClient, natsConn, cfg.EventsChannel, logger)
	submissionService := service.NewSubmissionService(submissionRepo, validate, publisher, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)

	app := fiber.New(router.AppConfig(cfg))

	middleware.Register(app, middleware.Config{Logger: &logger, MetricsPath: router.MetricsPath})
	router.Register(app, cfg, router.Dependencies{
		SubmissionHandler: submissionHandler,
		StorePinger:       store,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("path", cfg.SubmissionsPath).Msg("submission gateway started")

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
