package ai

import (
	"context"
	"math"
	"testing"
)

func TestLocalEmbedderDeterministic(t *testing.T) {
	emb := NewLocalEmbedder(256)
	a, err := emb.Embed(context.Background(), "workflow automation for small businesses")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	b, err := emb.Embed(context.Background(), "workflow automation for small businesses")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at index %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestLocalEmbedderDimensionAndNorm(t *testing.T) {
	emb := NewLocalEmbedder(128)
	if emb.Dimension() != 128 {
		t.Fatalf("Dimension() = %d, want 128", emb.Dimension())
	}

	vec, err := emb.Embed(context.Background(), "document processing automation")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(vec) != 128 {
		t.Fatalf("len(vec) = %d, want 128", len(vec))
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	norm := math.Sqrt(sumSq)
	if math.Abs(norm-1.0) > 1e-5 {
		t.Errorf("vector not L2-normalized: norm = %f", norm)
	}
}

func TestLocalEmbedderEmptyTextIsZeroVector(t *testing.T) {
	emb := NewLocalEmbedder(64)
	vec, err := emb.Embed(context.Background(), "   ")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("expected zero vector, got %v at index %d", v, i)
		}
	}
}

func TestLocalEmbedderSimilarTextsScoreHigher(t *testing.T) {
	emb := NewLocalEmbedder(256)
	ctx := context.Background()

	query, _ := emb.Embed(ctx, "how long does implementation take")
	related, _ := emb.Embed(ctx, "implementation timeline: how long a project takes")
	unrelated, _ := emb.Embed(ctx, "grilled cheese sandwich recipes")

	simRelated := dot64(query, related)
	simUnrelated := dot64(query, unrelated)
	if simRelated <= simUnrelated {
		t.Errorf("related similarity %f not greater than unrelated %f", simRelated, simUnrelated)
	}
}

func TestLocalEmbedderBatch(t *testing.T) {
	emb := NewLocalEmbedder(64)
	vecs, err := emb.EmbedBatch(context.Background(), []string{"one thing", "another thing"})
	if err != nil {
		t.Fatalf("batch embed failed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vecs))
	}
}

func dot64(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
