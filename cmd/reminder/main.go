package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"berbagi/internal/config"
	"berbagi/internal/pkg/i18n"
	"berbagi/internal/pkg/logger"
	"berbagi/internal/pkg/worker"
	"berbagi/internal/repository"
	"berbagi/internal/service"
	"berbagi/internal/service/notification"
	"berbagi/internal/service/push"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		logger.Warn("Failed to load translations, falling back to keys", zap.Error(err))
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	var pushSink notification.Sink
	amqpConn, err := config.NewAMQPConnection(cfg)
	if err != nil {
		logger.Warn("Push delivery disabled", zap.Error(err))
	}
	if amqpConn != nil {
		defer amqpConn.Close()
		publisher, err := push.NewPublisher(amqpConn, cfg.PushExchange)
		if err != nil {
			logger.Warn("Push delivery disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			pushSink = publisher
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := worker.NewPool(ctx, "reminder-delivery", cfg.DeliveryPoolSize)
	if err != nil {
		logger.Fatal("Failed to create worker pool", zap.Error(err))
	}
	defer pool.Shutdown()

	services := service.NewServices(repository.NewRepositories(db), redis, pushSink, pool, cfg)

	logger.Info("Reminder job started",
		zap.Duration("interval", cfg.ReminderInterval),
		zap.Duration("window", cfg.ReminderWindow),
	)
	services.Reminder.Start(ctx, cfg.ReminderInterval)
	logger.Info("Reminder job stopped")
}
