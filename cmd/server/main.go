package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/velora-ai/companion/configs"
	"github.com/velora-ai/companion/internal/api/handlers"
	"github.com/velora-ai/companion/internal/api/middleware"
	"github.com/velora-ai/companion/internal/jobs"
	"github.com/velora-ai/companion/internal/publisher"
	"github.com/velora-ai/companion/internal/queue"
	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/internal/scheduler"
	"github.com/velora-ai/companion/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("connecting to database", "error", err)
		os.Exit(1)
	}

	// Repositories.
	postRepo := repository.NewContentPostRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	keyRepo := repository.NewAPIKeyRepository(db)

	// Services.
	mediaSvc, err := service.NewMediaService(cfg.R2, logger)
	if err != nil {
		logger.Error("setting up media storage", "error", err)
		os.Exit(1)
	}

	contentSvc := service.NewContentService("")
	imageSvc := service.NewImageService(settingsRepo, mediaSvc, contentSvc, logger)
	analysisSvc := service.NewAnalysisService()
	llm := service.NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.AppURL)
	chatSvc := service.NewChatService(conversationRepo, messageRepo, settingsRepo, analysisSvc, llm, logger)
	ttsSvc := service.NewTTSService(settingsRepo, mediaSvc, cfg.TTSAPIBase, cfg.OpenAIAPIKey, logger)
	settingsSvc := service.NewSettingsService(settingsRepo)
	authSvc := service.NewAuthService(userRepo, cfg.SecretKey)
	paymentSvc := service.NewPaymentService(userRepo, settingsRepo, cfg.PayPalAPIBase, logger)

	// Publishers and the content pipeline.
	httpClient := &http.Client{Timeout: 30 * time.Second}
	registry := publisher.NewRegistry(
		publisher.NewInstagramPublisher(&cfg.Instagram, httpClient),
		publisher.NewTelegramPublisher(cfg.Telegram, httpClient),
		publisher.NewYouTubePublisher(cfg,
			publisher.NewRefreshableToken(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.YouTubeRefreshToken),
			httpClient),
	)

	coordinator := scheduler.NewCoordinator(postRepo, registry, logger)
	generator := scheduler.NewGenerator(postRepo, settingsRepo, contentSvc, logger)
	contentScheduler := scheduler.New(coordinator, generator, logger)
	contentScheduler.Start()
	defer contentScheduler.Stop()

	// Queue for API-created posts.
	queueClient := queue.NewClient(cfg.RedisURI, logger)
	defer queueClient.Close()

	worker := queue.NewWorker(cfg.RedisURI, coordinator, logger)
	go func() {
		if err := worker.Run(); err != nil {
			logger.Error("queue worker stopped", "error", err)
		}
	}()
	defer worker.Shutdown()

	// Recurring maintenance.
	c := cron.New()
	jobs.New(userRepo, cfg, logger).Register(c)
	c.Start()
	defer c.Stop()

	// HTTP surface.
	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
	}))

	authHandler := handlers.NewAuthHandler(authSvc, cfg.CookieName)
	chatHandler := handlers.NewChatHandler(chatSvc, messageRepo)
	voiceHandler := handlers.NewVoiceHandler(chatSvc, ttsSvc, userRepo)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, contentSvc, imageSvc, queueClient)
	settingsHandler := handlers.NewSettingsHandler(settingsSvc)
	keysHandler := handlers.NewKeysHandler(keyRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc)
	schedulerHandler := handlers.NewSchedulerHandler(contentScheduler, generator)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	api.Use(middleware.Protected(cfg.CookieName, cfg.SecretKey, keyRepo))

	api.Post("/chat", chatHandler.Send)
	api.Get("/conversations/:id/messages", chatHandler.Messages)
	api.Post("/voice", voiceHandler.Send)
	api.Post("/images/generate", postHandler.GenerateImage)
	api.Get("/paypal/setup", paymentHandler.Setup)
	api.Post("/paypal/order", paymentHandler.CreateOrder)
	api.Post("/paypal/order/capture", paymentHandler.CaptureOrder)

	admin := api.Group("", middleware.AdminOnly(userRepo))
	admin.Get("/posts", postHandler.List)
	admin.Post("/posts", postHandler.Create)
	admin.Get("/posts/:id", postHandler.Get)
	admin.Put("/posts/:id/schedule", postHandler.Reschedule)
	admin.Delete("/posts/:id", postHandler.Delete)
	admin.Get("/settings", settingsHandler.Get)
	admin.Put("/settings", settingsHandler.Update)
	admin.Get("/keys", keysHandler.List)
	admin.Post("/keys", keysHandler.Create)
	admin.Delete("/keys/:id", keysHandler.Delete)
	admin.Get("/scheduler", schedulerHandler.Status)
	admin.Post("/scheduler/start", schedulerHandler.Start)
	admin.Post("/scheduler/stop", schedulerHandler.Stop)
	admin.Post("/scheduler/generate", schedulerHandler.GenerateNow)

	go func() {
		if err := app.Listen(":3000"); err != nil {
			logger.Error("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutting down server", "error", err)
	}
}
