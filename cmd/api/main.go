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
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
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

	screeningRepo := repositories.NewScreeningRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize model provider
	llm, err := services.NewLLMService(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s provider: %v", cfg.LLM.Provider, err)
	}
	log.Printf("✅ %s provider initialized successfully", cfg.LLM.Provider)

	// Initialize similarity store
	store, err := newSimilarityStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize similarity store: %v", err)
	}
	log.Printf("✅ Similarity store (%s) initialized with %d records", cfg.Vector.Backend, store.Count())

	// Initialize session store
	sessionStore, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize session store: %v", err)
	}
	assessmentSession := services.NewAssessmentSession(sessionStore)

	// Initialize services
	extractionService := services.NewExtractionService(llm)
	screeningService := services.NewScreeningService(
		services.NewPDFParserService(),
		llm,
		store,
		extractionService,
		screeningRepo,
		services.ScreeningOptions{
			Neighbors:      cfg.Vector.Neighbors,
			ScoreThreshold: cfg.Screening.ScoreThreshold,
		},
	)
	gradingService := services.NewGradingService(llm, cfg.Screening.PassRatio)
	uploadReader := services.NewUploadReader(cfg.Storage.MaxFileSize)
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	screeningHandler := handlers.NewScreeningHandler(screeningService, uploadReader, assessmentSession)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentSession, gradingService, screeningRepo)
	resultHandler := handlers.NewResultHandler(screeningRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Screener API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "healthy",
			"time":           time.Now(),
			"provider":       cfg.LLM.Provider,
			"vector_backend": cfg.Vector.Backend,
			"indexed":        store.Count(),
			"persistence":    repositories.IsPersistent(screeningRepo),
		})
	})

	// API endpoints
	api.Post("/screen", screeningHandler.HandleScreen)
	api.Get("/assessment", assessmentHandler.HandleGetAssessment)
	api.Post("/assessment/submit", assessmentHandler.HandleSubmit)
	api.Get("/screenings/:id", resultHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/screen",
				"GET /api/v1/assessment",
				"POST /api/v1/assessment/submit",
				"GET /api/v1/screenings/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		if err := closeSessions(); err != nil {
			log.Printf("⚠️  Failed to close session storage: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newSimilarityStore(ctx context.Context, cfg *config.Config) (services.SimilarityStore, error) {
	if cfg.Vector.Backend == "qdrant" {
		return services.NewQdrantStore(ctx, cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	}
	return services.NewMemoryStore(), nil
}

// newSessionStore keeps sessions in memory unless REDIS_URL is set.
func newSessionStore(ctx context.Context, cfg *config.Config) (*session.Store, func() error, error) {
	sessionCfg := session.Config{
		Expiration:     cfg.Session.Expiration,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	if cfg.Session.RedisURL == "" {
		log.Println("✅ Sessions stored in memory")
		return session.New(sessionCfg), func() error { return nil }, nil
	}

	storage, err := services.NewRedisStorage(ctx, cfg.Session.RedisURL, "resume_screener:session:")
	if err != nil {
		return nil, nil, err
	}
	sessionCfg.Storage = storage
	log.Println("✅ Sessions stored in Redis")

	return session.New(sessionCfg), storage.Close, nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
