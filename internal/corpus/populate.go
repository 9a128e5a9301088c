package corpus

import (
	"context"
	"fmt"

	"agency-support-chat/internal/ai"
	"agency-support-chat/internal/logger"
	"agency-support-chat/internal/vectorstore"
)

// Stats reports what a population run did.
type Stats struct {
	Embedded int
	Skipped  int
}

// Populate walks the corpus and upserts each chunk into the store. A chunk
// whose stored record already carries a non-empty embedding for unchanged
// text is skipped, so re-running on an unchanged corpus performs zero
// embedding calls. Embedding failure aborts the run; a corrupt record is
// never stored.
func Populate(ctx context.Context, store vectorstore.Store, embedder ai.Embedder) (Stats, error) {
	var stats Stats

	for _, chunk := range All() {
		existing, err := store.Get(ctx, chunk.ID)
		if err != nil {
			return stats, err
		}
		if existing != nil && len(existing.Embedding) > 0 && existing.Text == chunk.Text {
			stats.Skipped++
			continue
		}

		embedding, err := embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return stats, fmt.Errorf("populate aborted at chunk %s: %w", chunk.ID, err)
		}

		rec := vectorstore.Record{
			ID:        chunk.ID,
			Text:      chunk.Text,
			Type:      chunk.Type,
			Metadata:  chunk.Metadata,
			Embedding: embedding,
		}
		if err := store.Upsert(ctx, rec); err != nil {
			return stats, err
		}
		stats.Embedded++
	}

	logger.Info("corpus population finished",
		"embedded", stats.Embedded, "skipped", stats.Skipped)
	return stats, nil
}
