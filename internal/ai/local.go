package ai

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// LocalEmbedder is a deterministic hashed bag-of-words embedder. Each token
// is hashed into a fixed-size bucket vector, mean-pooled over tokens and
// L2-normalized, so cosine similarity between two embeddings reduces to a
// dot product of unit vectors. It needs no network and no model download,
// which makes it the default provider when no Gemini credential is set and
// the provider used in tests.
type LocalEmbedder struct {
	dim int
}

func NewLocalEmbedder(dim int) *LocalEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &LocalEmbedder{dim: dim}
}

func (l *LocalEmbedder) Provider() string { return "local" }

func (l *LocalEmbedder) Dimension() int { return l.dim }

func (l *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, l.dim)
	tokens := tokenize(text)
	if len(tokens) == 0 {
		// A valid all-zero vector: scores 0 against everything, so it can
		// never pass the similarity threshold.
		return vec, nil
	}

	for _, tok := range tokens {
		vec[bucket(tok, l.dim)] += 1
	}

	// Mean pooling, then L2 normalization.
	n := float32(len(tokens))
	var sumSq float64
	for i := range vec {
		vec[i] /= n
		sumSq += float64(vec[i]) * float64(vec[i])
	}
	norm := math.Sqrt(sumSq)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}

	return vec, nil
}

func (l *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := l.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func bucket(token string, dim int) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % uint32(dim))
}

// stopwords carry no retrieval signal and would otherwise let unrelated
// queries clear the similarity threshold on filler words alone.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "can": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"have": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "my": {},
	"of": {}, "on": {}, "or": {}, "our": {}, "that": {}, "the": {},
	"this": {}, "to": {}, "we": {}, "what": {}, "when": {}, "which": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, stem(f))
	}
	return tokens
}

// stem applies a crude suffix strip so that "implementation" and
// "implement", "services" and "service" land in the same bucket.
func stem(token string) string {
	for _, suffix := range []string{"ations", "ation", "ings", "ing", "s"} {
		if strings.HasSuffix(token, suffix) && len(token)-len(suffix) >= 4 {
			return token[:len(token)-len(suffix)]
		}
	}
	return token
}
