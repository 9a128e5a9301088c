package vectorstore

import (
	"context"
	"fmt"
	"math"
)

// SimilarityThreshold is the minimum cosine similarity a stored record must
// score, strictly exceeded, to be returned from Search. Records at or below
// the cutoff are discarded, not merely ranked low.
const SimilarityThreshold = 0.3

// Chunk types (closed set).
const (
	TypeService = "service"
	TypeFAQ     = "faq"
	TypeProcess = "process"
	TypeCompany = "company"
	TypeUseCase = "usecase"
	TypeContact = "contact"
)

// Metadata holds the type-specific display fields of a chunk. It is never
// embedded; only the chunk text is.
type Metadata struct {
	Title       string   `bson:"title,omitempty" json:"title,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Features    []string `bson:"features,omitempty" json:"features,omitempty"`
	Question    string   `bson:"question,omitempty" json:"question,omitempty"`
	Answer      string   `bson:"answer,omitempty" json:"answer,omitempty"`
	Step        int      `bson:"step,omitempty" json:"step,omitempty"`
}

// Record is the persisted form of a corpus chunk plus its embedding. A record
// with an empty embedding is treated as not-yet-indexed: it is excluded from
// search results but never breaks a search.
type Record struct {
	ID        string    `bson:"chunk_id" json:"id"`
	Text      string    `bson:"text" json:"text"`
	Type      string    `bson:"type" json:"type"`
	Metadata  Metadata  `bson:"metadata" json:"metadata"`
	Embedding []float32 `bson:"embedding,omitempty" json:"-"`
}

// Retrieved is a Record plus its cosine similarity against a query vector.
type Retrieved struct {
	Record
	Similarity float64 `json:"similarity"`
}

// Store persists chunk records and supports brute-force similarity search.
// Search returns at most topK records ordered by descending similarity,
// ties broken by insertion order, filtered to similarity > 0.3 and
// optionally pre-filtered by type.
type Store interface {
	Upsert(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (*Record, error)
	All(ctx context.Context) ([]Record, error)
	Search(ctx context.Context, query []float32, topK int, typeFilter string) ([]Retrieved, error)
	IsPopulated(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
}

// StoreError marks a genuine backing-store I/O failure, distinguishable from
// the legitimate "no chunk passed the threshold" empty result.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vector store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Cosine computes true cosine similarity: dot product divided by the product
// of magnitudes. Robust against non-normalized inputs; returns 0 when either
// vector has zero norm or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores records against a query vector and returns the thresholded,
// stably sorted top-K slice. Both store implementations share this so the
// search contract cannot drift between them.
func Rank(records []Record, query []float32, topK int, typeFilter string) []Retrieved {
	if topK <= 0 {
		topK = 5
	}

	scored := make([]Retrieved, 0, len(records))
	for _, rec := range records {
		if typeFilter != "" && rec.Type != typeFilter {
			continue
		}
		sim := Cosine(query, rec.Embedding)
		if sim > SimilarityThreshold {
			scored = append(scored, Retrieved{Record: rec, Similarity: sim})
		}
	}

	// Insertion-order-stable descending sort.
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Similarity > scored[j-1].Similarity; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
