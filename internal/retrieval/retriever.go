// Package retrieval embeds a query and finds the nearest corpus chunks.
package retrieval

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"agency-support-chat/internal/ai"
	"agency-support-chat/internal/logger"
	"agency-support-chat/internal/vectorstore"
)

type Retriever struct {
	embedder ai.Embedder
	store    vectorstore.Store
	topK     int
}

func NewRetriever(embedder ai.Embedder, store vectorstore.Store, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve returns the top-K chunks most similar to the query, all strictly
// above the similarity threshold. An embedding failure degrades to an empty
// result so a broken model never kills a chat turn; a store I/O failure
// propagates because it is not the same thing as "nothing matched".
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]vectorstore.Retrieved, error) {
	tracer := otel.Tracer("retriever")
	ctx, span := tracer.Start(ctx, "retrieval.retrieve")
	defer span.End()

	start := time.Now()

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		var embErr *ai.EmbeddingError
		if errors.As(err, &embErr) {
			logger.Warn("query embedding failed, retrieval degraded to empty context",
				"provider", embErr.Provider, "error", embErr.Err.Error())
			span.SetAttributes(attribute.Bool("retrieval.embedding_failed", true))
			return nil, nil
		}
		return nil, err
	}

	results, err := r.store.Search(ctx, vector, r.topK, "")
	if err != nil {
		span.SetAttributes(attribute.Bool("retrieval.store_error", true))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("retrieval.chunks", len(results)),
		attribute.Float64("retrieval.duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return results, nil
}
