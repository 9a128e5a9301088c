// Package memory provides an in-memory vector store using brute-force cosine
// similarity. It backs tests and single-process deployments that can afford
// to re-embed the corpus on restart.
package memory

import (
	"context"
	"sync"

	"agency-support-chat/internal/vectorstore"
)

type Store struct {
	mu      sync.RWMutex
	records []vectorstore.Record
	index   map[string]int // id -> position in records
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

func (s *Store) Upsert(_ context.Context, rec vectorstore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos, ok := s.index[rec.ID]; ok {
		s.records[pos] = rec
		return nil
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*vectorstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index[id]
	if !ok {
		return nil, nil
	}
	rec := s.records[pos]
	return &rec, nil
}

func (s *Store) All(_ context.Context) ([]vectorstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]vectorstore.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Search(_ context.Context, query []float32, topK int, typeFilter string) ([]vectorstore.Retrieved, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return vectorstore.Rank(s.records, query, topK, typeFilter), nil
}

func (s *Store) IsPopulated(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) > 0, nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.index = make(map[string]int)
	return nil
}
