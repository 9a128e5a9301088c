package ai

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// EmbeddingError reports a failure to load the embedding model or to embed a
// text. Callers must not substitute a zero vector on failure - it would score
// spuriously high against other vectors.
type EmbeddingError struct {
	Provider string
	Err      error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed (provider=%s): %v", e.Provider, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// Embedder turns text into a fixed-length dense vector. Implementations are
// deterministic for a fixed model version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	Provider() string
}

// GoogleEmbedder generates embeddings via Google Generative AI
// (text-embedding-004). The genai client is expensive to create, so it is
// initialized once on first use and cached for the process lifetime.
// Concurrent first calls wait on the same initialization.
type GoogleEmbedder struct {
	apiKey string
	model  string
	dim    int

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGoogleEmbedder(apiKey, model string) *GoogleEmbedder {
	return &GoogleEmbedder{
		apiKey: apiKey,
		model:  model,
		dim:    768, // text-embedding-004 output dimensionality
	}
}

func (g *GoogleEmbedder) Provider() string { return "google" }

func (g *GoogleEmbedder) Dimension() int { return g.dim }

func (g *GoogleEmbedder) init(ctx context.Context) error {
	g.once.Do(func() {
		if g.apiKey == "" {
			g.initErr = fmt.Errorf("missing GEMINI_API_KEY for embeddings")
			return
		}
		g.client, g.initErr = genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	})
	return g.initErr
}

func (g *GoogleEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := g.init(ctx); err != nil {
		return nil, &EmbeddingError{Provider: "google", Err: err}
	}

	model := g.client.EmbeddingModel(g.model)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &EmbeddingError{Provider: "google", Err: err}
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &EmbeddingError{Provider: "google", Err: fmt.Errorf("no embedding returned")}
	}

	return resp.Embedding.Values, nil
}

func (g *GoogleEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := g.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (g *GoogleEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
