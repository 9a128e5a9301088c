package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"agency-support-chat/internal/ai"
	"agency-support-chat/internal/chat"
	"agency-support-chat/internal/config"
	"agency-support-chat/internal/corpus"
	"agency-support-chat/internal/logger"
	"agency-support-chat/internal/queue"
	"agency-support-chat/internal/respond"
	"agency-support-chat/internal/retrieval"
	"agency-support-chat/internal/session"
	"agency-support-chat/internal/telemetry"
	"agency-support-chat/internal/vectorstore"
	"agency-support-chat/internal/vectorstore/mongostore"
	"agency-support-chat/middleware"
	"agency-support-chat/routes"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Tracing is opt-in; the engine works without a collector.
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("agency-support-chat", cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("tracing disabled", "error", err.Error())
		} else {
			defer shutdown()
		}
	}
	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn("metrics disabled", "error", err.Error())
	}

	// Connect to MongoDB
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()
	store := mongostore.NewStore(mongoClient.Database(cfg.DBName))

	embedder := newEmbedder(cfg)

	var generator ai.Generator
	if cfg.GenerationConfigured() {
		generator = ai.NewGeminiGenerator(cfg.GeminiAPIKey, ai.GeneratorOptions{
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxOutputTokens,
			Timeout:     time.Duration(cfg.GenerateTimeout) * time.Second,
		})
		logger.Info("tier-1 generation enabled", "model", cfg.GeminiModel)
	} else {
		logger.Info("no generation credential configured, running fallback-only")
	}

	// Populate the vector store in the background; population is idempotent
	// and skips chunks that already carry embeddings.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := corpus.Populate(ctx, store, embedder); err != nil {
			logger.Error("corpus population failed", "error", err.Error())
		}
	}()

	sessions := session.NewStore(
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		time.Duration(cfg.SessionSweepMinutes)*time.Minute,
	)
	sessions.Start()
	defer sessions.Stop()

	retriever := retrieval.NewRetriever(embedder, store, cfg.RetrievalTopK)
	synth := respond.NewSynthesizer(generator, serviceCatalog(store))
	engine := chat.NewEngine(retriever, synth, sessions, metrics)

	// Asynq client for admin-triggered and scheduled reindexing. The client
	// connects lazily, so a missing Redis only fails those operations.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer asynqClient.Close()

	// Nightly reindex keeps newly added corpus entries embedded.
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.Every(24 * time.Hour).Do(func() {
		task, err := queue.NewReindexTask(false)
		if err == nil {
			_, err = asynqClient.Enqueue(task)
		}
		if err != nil {
			logger.Warn("scheduled reindex enqueue failed", "error", err.Error())
		}
	})
	scheduler.StartAsync()
	defer scheduler.Stop()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("agency-support-chat"))
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Rate limiting protects the public widget endpoint; fail open when
	// Redis is unavailable.
	if rdb, err := config.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled", "error", err.Error())
	} else {
		router.Use(middleware.RateLimitMiddleware(rdb, cfg))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	routes.SetupChatRoutes(router, engine, sessions)
	if cfg.AdminEnabled() {
		authMiddleware := middleware.NewAuthMiddleware(cfg)
		routes.SetupAdminRoutes(router, cfg, store, sessions, asynqClient, authMiddleware)
	} else {
		logger.Info("admin surface disabled (no ADMIN_PASSWORD_HASH configured)")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func newEmbedder(cfg *config.Config) ai.Embedder {
	if cfg.EmbeddingsProvider == "google" {
		return ai.NewGoogleEmbedder(cfg.GeminiAPIKey, cfg.GoogleEmbeddingsModel)
	}
	return ai.NewLocalEmbedder(cfg.LocalEmbeddingDim)
}

// serviceCatalog exposes the service chunks to the synthesizer's listing
// fallbacks, which are not similarity-gated.
func serviceCatalog(store vectorstore.Store) respond.Catalog {
	return func(ctx context.Context) []vectorstore.Record {
		records, err := store.All(ctx)
		if err != nil {
			logger.Error("catalog load failed", "error", err.Error())
			return nil
		}
		services := make([]vectorstore.Record, 0, len(records))
		for _, rec := range records {
			if rec.Type == vectorstore.TypeService {
				services = append(services, rec)
			}
		}
		return services
	}
}
