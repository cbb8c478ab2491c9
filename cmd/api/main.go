package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"berbagi/internal/config"
	"berbagi/internal/handler"
	"berbagi/internal/middleware"
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

	if cfg.RunMigrations {
		applied, err := config.Migrate(db)
		if err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		if len(applied) > 0 {
			logger.Info("Migrations applied", zap.Strings("versions", applied))
		}
	}

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

	pool, err := worker.NewPool(ctx, "delivery", cfg.DeliveryPoolSize)
	if err != nil {
		logger.Fatal("Failed to create worker pool", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, pushSink, pool, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg, pool)

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
		logger.Warn("Server shutdown", zap.Error(err))
	}
	pool.Shutdown()
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config, pool *worker.Pool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"delivery": pool.Metrics(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	internal := app.Group("/internal", middleware.AuthRequired(cfg.JWTSecret))
	internal.Post("/trust-scores", middleware.RequireScope(middleware.ScopeTrustWrite), h.Trust.Recompute)

	v1 := app.Group("/api/v1", middleware.AuthRequired(cfg.JWTSecret))

	resources := v1.Group("/resources")
	resources.Post("/", h.Resource.Create)
	resources.Get("/:resourceId", h.Resource.Get)
	resources.Put("/:resourceId", h.Resource.Update)
	resources.Post("/:resourceId/cancel", h.Resource.Cancel)
	resources.Post("/:resourceId/claims", h.Claim.Create)
	resources.Post("/:resourceId/comments", h.Comment.Create)

	claims := v1.Group("/claims")
	claims.Get("/", h.Claim.List)
	claims.Patch("/:claimId/status", h.Claim.UpdateStatus)
	claims.Get("/:claimId/events", h.Claim.History)

	notifications := v1.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Get("/stream", h.Notification.Stream)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	preferences := v1.Group("/notification-preferences")
	preferences.Get("/", h.Preference.Get)
	preferences.Put("/types/:type", h.Preference.UpdateType)
	preferences.Put("/global", h.Preference.UpdateGlobal)

	conversations := v1.Group("/conversations")
	conversations.Post("/", h.Message.StartConversation)
	conversations.Post("/:conversationId/messages", h.Message.Send)

	v1.Post("/shoutouts", h.Shoutout.Create)

	communities := v1.Group("/communities")
	communities.Post("/:communityId/join", h.Membership.Join)
	communities.Post("/:communityId/leave", h.Membership.Leave)
}
