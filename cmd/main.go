package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead-rag-platform/internal/ai"
	"lead-rag-platform/internal/config"
	"lead-rag-platform/internal/database"
	"lead-rag-platform/internal/logger"
	"lead-rag-platform/middleware"
	"lead-rag-platform/routes"
	"lead-rag-platform/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg.GinMode != "release")

	// Connect to MongoDB
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	stores := database.NewCompanyStoreManager(mongoClient, cfg.ControlDBName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		stores.Teardown(ctx)
	}()

	// Redis is optional: it backs the delta-sync cache and rate limiting
	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb, err = config.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, continuing without sync cache", "error", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// AI clients
	embedder, err := ai.NewEmbedder(cfg.GeminiAPIKey, cfg.EmbeddingsModel, cfg.GeminiTier)
	if err != nil {
		log.Fatal("Failed to create embedder:", err)
	}
	defer embedder.Close()

	gemini, err := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTier)
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}
	defer gemini.Close()

	// Services
	syncCache := services.NewSyncCache(rdb, cfg.SyncCacheTTL)
	leadSvc, err := services.NewLeadService(cfg, stores, embedder, syncCache)
	if err != nil {
		log.Fatal("Failed to create lead service:", err)
	}
	searchSvc := services.NewSearchService(stores, embedder, cfg.SearchTopK)
	answerSvc := services.NewAnswerService(searchSvc, gemini)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	if rdb != nil {
		router.Use(middleware.RateLimitMiddleware(rdb, cfg))
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.AdminSecretHeader}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Setup routes
	routes.SetupLeadRoutes(router, cfg, leadSvc)
	routes.SetupAskRoutes(router, answerSvc, searchSvc)

	// Scheduled reindexing
	if cfg.ReindexCron != "" {
		scheduler := services.NewReindexScheduler(leadSvc)
		if err := scheduler.Start(cfg.ReindexCron); err != nil {
			log.Fatal("Failed to start reindex scheduler:", err)
		}
		defer scheduler.Stop()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("server exited")
}
