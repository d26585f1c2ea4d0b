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

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// multipart overhead allowed on top of the file size limit
const formOverhead = 1 << 20

type stores struct {
	analyses repositories.Store[models.Analysis]
	chats    repositories.Store[[]models.ChatMessage]
	resumes  repositories.Store[models.Resume]
	close    func()
}

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	st, err := initStores(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s store: %v", cfg.Store.Backend, err)
	}
	defer st.close()
	log.Printf("✅ Store initialized (%s)", cfg.Store.Backend)

	// Initialize repositories
	analysisRepo := repositories.NewAnalysisRepository(st.analyses)
	chatRepo := repositories.NewChatRepository(st.chats)
	resumeRepo := repositories.NewResumeRepository(st.resumes)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	if geminiService.Configured() {
		log.Printf("✅ Gemini AI initialized (%s)", cfg.Gemini.Model)
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, uploads return demo analyses")
	}

	storageService, err := services.NewStorageService(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("❌ Failed to initialize upload storage: %v", err)
	}

	analyzerService := services.NewAnalyzerService(
		analysisRepo,
		resumeRepo,
		geminiService,
		services.NewTextExtractor(),
		storageService,
		cfg.Analysis.MockOnMiss,
	)
	chatService := services.NewChatService(chatRepo, geminiService)
	resumeService := services.NewResumeService(resumeRepo, storageService)
	log.Println("✅ Services initialized successfully")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize + formOverhead),
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

	handlers.Register(app, handlers.Handlers{
		Upload: handlers.NewUploadHandler(analyzerService, cfg.Storage.MaxFileSize),
		Result: handlers.NewResultHandler(analyzerService),
		Gemini: handlers.NewGeminiHandler(analyzerService),
		Chat:   handlers.NewChatHandler(chatService),
		Resume: handlers.NewResumeHandler(resumeService),
		Usage:  handlers.NewUsageHandler(cfg.Usage.Limit),
	})
	log.Println("✅ Handlers initialized")

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/upload",
				"GET /api/analysis/:id",
				"POST /api/gemini",
				"GET|POST|DELETE /api/chat",
				"POST /api/chat/ask",
				"GET|POST|PUT|DELETE /api/resumes",
				"GET /api/usage",
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
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func initStores(cfg *config.Config) (*stores, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory, "":
		return &stores{
			analyses: repositories.NewMemoryStore[models.Analysis](),
			chats:    repositories.NewMemoryStore[[]models.ChatMessage](),
			resumes:  repositories.NewMemoryStore[models.Resume](),
			close:    func() {},
		}, nil
	case config.StorePostgres, config.StoreSQLite:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			analyses: repositories.NewGormStore[models.Analysis](db, repositories.NamespaceAnalyses),
			chats:    repositories.NewGormStore[[]models.ChatMessage](db, repositories.NamespaceChats),
			resumes:  repositories.NewGormStore[models.Resume](db, repositories.NamespaceResumes),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	case config.StoreRedis:
		client, err := config.InitRedis(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			analyses: repositories.NewRedisStore[models.Analysis](client, repositories.NamespaceAnalyses),
			chats:    repositories.NewRedisStore[[]models.ChatMessage](client, repositories.NamespaceChats),
			resumes:  repositories.NewRedisStore[models.Resume](client, repositories.NamespaceResumes),
			close: func() {
				_ = client.Close()
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
