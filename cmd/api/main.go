package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"alfredoptarigan/interview-prep/internal/config"
	"alfredoptarigan/interview-prep/internal/handlers"
	"alfredoptarigan/interview-prep/internal/repositories"
	"alfredoptarigan/interview-prep/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	interviewRepo := repositories.NewInterviewRepository(db, cfg.Flows.Collections(), cfg.Database.Timeout)
	resumeRepo := repositories.NewResumeRepository(db)
	submissionRepo := repositories.NewSubmissionRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = newRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, interview cache disabled: %v", err)
		} else {
			interviewRepo = repositories.NewCachedInterviewRepository(interviewRepo, redisClient, cfg.Redis.TTL)
			log.Println("✅ Redis interview cache enabled")
		}
	}
	log.Println("✅ Repositories initialized successfully")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(registry)

	// Initialize storage
	storageService, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("❌ Failed to initialize storage: %v", err)
	}
	log.Printf("✅ Storage initialized (%s)", cfg.Storage.Backend)

	// Initialize LLM
	var (
		generator     services.TextGenerator
		geminiService services.GeminiService
	)
	switch cfg.LLM.Provider {
	case "openai":
		generator = services.NewOpenAIService(cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIBaseURL, cfg.LLM.OpenAIModel, cfg.LLM.Temperature, cfg.LLM.Timeout)
		log.Printf("✅ OpenAI-compatible generator initialized (%s)", cfg.LLM.OpenAIModel)
	default:
		geminiService, err = services.NewGeminiService(cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel, cfg.LLM.EmbedModel, cfg.LLM.Temperature, cfg.LLM.Timeout)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		generator = geminiService
		log.Printf("✅ Gemini AI initialized (%s)", cfg.LLM.GeminiModel)
	}

	// Similar-interview index needs embeddings, which only Gemini provides here.
	var similarity services.SimilarityService
	if cfg.Qdrant.URL != "" && geminiService != nil {
		index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := index.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		similarity = services.NewSimilarityService(geminiService, index, interviewRepo, services.NewPromptBuilder())
		log.Println("✅ Qdrant initialized successfully")
	}

	// Events
	events := services.NewNoopPublisher()
	if cfg.Events.RabbitMQURL != "" {
		events, err = services.NewRabbitPublisher(cfg.Events.RabbitMQURL, cfg.Events.Exchange)
		if err != nil {
			log.Fatalf("❌ Failed to connect to RabbitMQ: %v", err)
		}
		log.Println("✅ RabbitMQ publisher initialized")
	}

	// Interview generation
	extractor := services.NewTextExtractor(cfg.Storage.MaxFileSize, cfg.Flows.Resume.AcceptedMediaTypes)
	interviewGenerator := services.NewInterviewGenerator(
		extractor,
		generator,
		interviewRepo,
		cfg.Flows,
		similarity,
		events,
		metrics,
	)
	submissionService := services.NewSubmissionService(interviewRepo, submissionRepo)
	log.Println("✅ Services initialized successfully")

	// Feedback worker
	evaluatorService := services.NewEvaluatorService(
		feedbackRepo,
		generator,
		events,
		metrics,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
	)
	worker := services.NewWorker(
		feedbackRepo,
		evaluatorService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	worker.Start(ctx)
	feedbackService := services.NewFeedbackService(interviewRepo, feedbackRepo, worker)

	// Initialize Handlers
	generateHandler := handlers.NewGenerateHandler(interviewGenerator)
	interviewHandler := handlers.NewInterviewHandler(interviewRepo, similarity)
	resumeHandler := handlers.NewResumeHandler(resumeRepo, storageService, cfg.Storage.MaxFileSize)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Prep API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(handlers.MetricsMiddleware(metrics))

	app.Get("/metrics", handlers.MetricsHandler(registry))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/interviews/generate", generateHandler.HandleGenerate)
	api.Post("/interviews/generate/resume", generateHandler.HandleGenerateFromResume)
	api.Get("/interviews/latest", interviewHandler.HandleLatest)
	api.Get("/interviews/:id", interviewHandler.HandleGet)
	api.Get("/interviews/:id/similar", interviewHandler.HandleSimilar)
	api.Get("/interviews/:id/script", interviewHandler.HandleScript)
	api.Get("/interviews/:id/feedback", feedbackHandler.HandleLatest)
	api.Get("/users/:userId/interviews", interviewHandler.HandleListByUser)

	api.Post("/resumes", resumeHandler.HandleUpload)
	api.Get("/resumes", resumeHandler.HandleList)
	api.Get("/resumes/:id", resumeHandler.HandleDownload)

	api.Post("/submissions", submissionHandler.HandleSubmit)
	api.Get("/submissions/:id/result", submissionHandler.HandleResult)

	api.Post("/feedback", feedbackHandler.HandleSubmit)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Prep API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/interviews/generate",
				"POST /api/v1/interviews/generate/resume",
				"GET /api/v1/interviews/:id",
				"GET /api/v1/interviews/latest",
				"GET /api/v1/users/:userId/interviews",
				"POST /api/v1/resumes",
				"POST /api/v1/submissions",
				"POST /api/v1/feedback",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		worker.Stop()
		if err := events.Close(); err != nil {
			log.Printf("⚠️ Failed to close event publisher: %v", err)
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis client: %v", err)
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func newStorage(ctx context.Context, cfg config.StorageConfig) (services.StorageService, error) {
	if cfg.Backend == "s3" {
		return services.NewS3StorageService(ctx, cfg.S3)
	}

	local := services.NewStorageService(cfg.UploadPath)
	if err := local.EnsureUploadDir(); err != nil {
		return nil, err
	}
	return local, nil
}
