package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"agency-support-chat/internal/ai"
	"agency-support-chat/internal/config"
	"agency-support-chat/internal/logger"
	"agency-support-chat/internal/queue"
	"agency-support-chat/internal/vectorstore/mongostore"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

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

	var embedder ai.Embedder
	if cfg.EmbeddingsProvider == "google" {
		embedder = ai.NewGoogleEmbedder(cfg.GeminiAPIKey, cfg.GoogleEmbeddingsModel)
	} else {
		embedder = ai.NewLocalEmbedder(cfg.LocalEmbeddingDim)
	}

	// Redis options for Asynq
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			// Reindexing serializes writes to the store: concurrent runs
			// would race on the same chunk ids.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("Task failed: %s, error: %v", task.Type(), err)
			}),
		},
	)

	processor := queue.NewTaskProcessor(store, embedder)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskReindexCorpus, processor.Reindex)

	log.Println("Starting reindex worker...")
	log.Printf("   Redis: %s", redisOpt.Addr)

	if err := server.Run(mux); err != nil {
		log.Fatal("Failed to start worker:", err)
	}
}
