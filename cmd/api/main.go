// @title SecQuiz API
// @version 1.0
// @description Cybersecurity awareness quiz service: LLM-generated quizzes for students, CSV-backed results dashboard for teachers.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_ADMIN_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"secquiz/internal/adapter/generator"
	"secquiz/internal/adapter/quizstore"
	"secquiz/internal/cache"
	"secquiz/internal/config"
	"secquiz/internal/domain"
	"secquiz/internal/handler"
	"secquiz/internal/logger"
	"secquiz/internal/middleware"
	"secquiz/internal/repository/results"
	"secquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Quiz generator. Without an API key the server still serves pending
	// quizzes and the dashboard; generation requests fail fast.
	var quizGenerator domain.QuizGenerator
	if cfg.HasOpenAIKey() {
		quizGenerator, err = generator.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.LLM, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
		}
		appLogger.Info("Quiz generator initialized", zap.String("model", cfg.LLM.ModelName))
	} else {
		appLogger.Warn("OPENAI_API_KEY not set. Quiz generation will fail until it is configured.")
	}

	// Pending-quiz store
	var quizStore domain.QuizStore
	switch cfg.QuizStore.Backend {
	case "redis":
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		quizStore = quizstore.NewRedisQuizStore(redisClient, cfg.QuizStore.TTL)
		appLogger.Info("Redis quiz store initialized", zap.String("address", cfg.Redis.Address))
	case "memory":
		quizStore = quizstore.NewMemoryQuizStore(cfg.QuizStore.TTL)
		appLogger.Info("In-memory quiz store initialized")
	default:
		appLogger.Fatal("Unsupported quiz store backend", zap.String("backend", cfg.QuizStore.Backend))
	}

	resultStore := results.NewCSVStore(cfg.Results.Path)
	appLogger.Info("Results store initialized", zap.String("path", cfg.Results.Path))

	// Services
	quizService := service.NewQuizService(quizGenerator, quizStore, resultStore)
	dashboardService := service.NewDashboardService(resultStore)
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Handlers
	quizHandler := handler.NewQuizHandler(quizService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Student routes (public, no login required)
	apiGroup.Post("/quiz/generate", quizHandler.Generate)
	apiGroup.Get("/quiz/:id", quizHandler.Get)
	apiGroup.Post("/quiz/:id/submit", quizHandler.Submit)
	apiGroup.Delete("/quiz/:id", quizHandler.Discard)

	// Teacher dashboard routes
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Post("/login", authHandler.Login)
	adminGroup.Get("/summary", middleware.AdminProtected(authService), dashboardHandler.Summary)
	adminGroup.Get("/attempts", middleware.AdminProtected(authService), dashboardHandler.AllAttempts)
	adminGroup.Get("/attempts/top", middleware.AdminProtected(authService), dashboardHandler.TopAttempts)
	adminGroup.Get("/export", middleware.AdminProtected(authService), dashboardHandler.Export)
	adminGroup.Delete("/attempts", middleware.AdminProtected(authService), dashboardHandler.Clear)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
