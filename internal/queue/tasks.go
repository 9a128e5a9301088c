// Package queue defines the background tasks processed by the worker
// binary. Corpus reindexing runs here so embedding costs never land on the
// request path.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"agency-support-chat/internal/ai"
	"agency-support-chat/internal/corpus"
	"agency-support-chat/internal/logger"
	"agency-support-chat/internal/vectorstore"
)

const TaskReindexCorpus = "corpus:reindex"

type ReindexPayload struct {
	// Force clears the store first, re-embedding every chunk. Used when the
	// embedding provider (and therefore dimensionality) changes.
	Force bool `json:"force"`
}

// NewReindexTask creates a corpus reindex task.
func NewReindexTask(force bool) (*asynq.Task, error) {
	payload, err := json.Marshal(ReindexPayload{Force: force})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReindexCorpus,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Queue("default"),
	), nil
}

// TaskProcessor handles queued tasks against the shared vector store.
type TaskProcessor struct {
	store    vectorstore.Store
	embedder ai.Embedder
}

func NewTaskProcessor(store vectorstore.Store, embedder ai.Embedder) *TaskProcessor {
	return &TaskProcessor{store: store, embedder: embedder}
}

func (p *TaskProcessor) Reindex(ctx context.Context, t *asynq.Task) error {
	var payload ReindexPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal failed: %w", asynq.SkipRetry)
	}

	logger.Info("reindex task started", "force", payload.Force)

	if payload.Force {
		if err := p.store.Clear(ctx); err != nil {
			return err
		}
	}

	stats, err := corpus.Populate(ctx, p.store, p.embedder)
	if err != nil {
		return err
	}

	logger.Info("reindex task finished",
		"embedded", stats.Embedded, "skipped", stats.Skipped)
	return nil
}
