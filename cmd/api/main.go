package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidquiz/internal/adapter"
	"vidquiz/internal/adapter/generation"
	"vidquiz/internal/adapter/llm"
	"vidquiz/internal/cache"
	"vidquiz/internal/config"
	"vidquiz/internal/database"
	"vidquiz/internal/domain"
	"vidquiz/internal/handler"
	"vidquiz/internal/logger"
	"vidquiz/internal/middleware"
	"vidquiz/internal/repository"
	"vidquiz/internal/service"
	"vidquiz/internal/taskrunner"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	var statusCache domain.Cache
	if err != nil {
		// Redis is an accelerator, not a dependency; the service degrades to
		// database-only status reads.
		log.Warn("Redis unavailable, running without status cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		statusCache = adapter.NewRedisCacheAdapter(redisClient)
	}

	quizRepo := repository.NewQuizDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	jobRepo := repository.NewProcessingJobDatabaseAdapter(db)
	sessionRepo := repository.NewSessionDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	providers := buildProviders(cfg.Generation, log)
	generator := service.NewQuestionGenerator(providers)

	generationClient := generation.NewClient(cfg.Generation.EndpointURL, cfg.Generation.Timeout)

	runner := taskrunner.NewGoRunner()
	processingService := service.NewVideoProcessingService(
		jobRepo, quizRepo, questionRepo, generationClient, txManager, statusCache, runner,
	)
	quizService := service.NewQuizService(quizRepo, questionRepo, sessionRepo, txManager)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	registerRoutes(app, cfg, db, statusCache, generator, processingService, quizService)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("Starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	// In-flight jobs finish before the process exits so no job is left
	// non-terminal by a clean shutdown.
	runner.Wait()
	log.Info("Server stopped")
}

func buildProviders(cfg config.GenerationConfig, log *zap.Logger) []domain.TextProvider {
	var providers []domain.TextProvider
	for _, model := range cfg.OpenRouter.Models {
		p, err := llm.NewOpenRouterProvider(cfg.OpenRouter.BaseURL, cfg.OpenRouter.APIKey, model)
		if err != nil {
			log.Warn("Skipping OpenRouter model", zap.String("model", model), zap.Error(err))
			continue
		}
		providers = append(providers, p)
	}
	if cfg.Ollama.ServerURL != "" {
		p, err := llm.NewOllamaProvider(cfg.Ollama.ServerURL, cfg.Ollama.Model)
		if err != nil {
			log.Warn("Skipping Ollama provider", zap.Error(err))
		} else {
			providers = append(providers, p)
		}
	}
	return providers
}

func registerRoutes(
	app *fiber.App,
	cfg *config.Config,
	db *sqlx.DB,
	statusCache domain.Cache,
	generator domain.QuestionGenerationService,
	processingService *service.VideoProcessingService,
	quizService *service.QuizService,
) {
	processingHandler := handler.NewProcessingHandler(processingService)
	generationHandler := handler.NewGenerationHandler(generator)
	quizHandler := handler.NewQuizHandler(quizService)
	healthHandler := handler.NewHealthHandler(db, statusCache)

	protected := middleware.Protected(cfg.JWT.SecretKey)
	optional := middleware.OptionalAuth(cfg.JWT.SecretKey)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)

	api.Post("/video-process", protected, processingHandler.StartProcessing)
	api.Get("/video-process", optional, processingHandler.GetStatus)
	api.Post("/generate", generationHandler.GenerateQuestions)

	api.Post("/quizzes", protected, quizHandler.CreateQuiz)
	api.Get("/quizzes", optional, quizHandler.ListQuizzes)
	api.Get("/quizzes/:id", optional, quizHandler.GetQuiz)

	api.Post("/sessions", protected, quizHandler.SubmitSession)
	api.Get("/sessions/:id", protected, quizHandler.GetSession)
}
