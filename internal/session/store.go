// Package session keeps ephemeral per-conversation message history. Nothing
// here survives a restart; durable transcripts are somebody else's problem.
package session

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"agency-support-chat/internal/logger"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Session struct {
	ID           string    `json:"id"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Store is a concurrency-safe session map with TTL eviction. A gocron job
// sweeps idle sessions; Stop cancels it so tests don't leak timers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl       time.Duration
	interval  time.Duration
	scheduler *gocron.Scheduler
}

func NewStore(ttl, sweepInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Minute
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		interval: sweepInterval,
	}
}

// Start launches the periodic sweep. Idempotent.
func (s *Store) Start() {
	if s.scheduler != nil {
		return
	}
	s.scheduler = gocron.NewScheduler(time.UTC)
	s.scheduler.Every(s.interval).Do(func() {
		removed := s.Sweep(time.Now())
		if removed > 0 {
			logger.Info("session sweep completed", "removed", removed)
		}
	})
	s.scheduler.StartAsync()
}

// Stop cancels the sweep job.
func (s *Store) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
		s.scheduler = nil
	}
}

// GetOrCreate returns the session for id, creating it lazily.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	now := time.Now()
	sess := &Session{ID: id, CreatedAt: now, LastActivity: now}
	s.sessions[id] = sess
	return sess
}

// Append adds one message to the session, creating the session if needed.
// The append is atomic: readers never observe a partially written turn.
func (s *Store) Append(id, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id, CreatedAt: now}
		s.sessions[id] = sess
	}
	sess.Messages = append(sess.Messages, Message{Role: role, Content: content, Timestamp: now})
	sess.LastActivity = now
}

// History returns a copy of the session's messages, or nil when the session
// does not exist.
func (s *Store) History(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	out := &Session{
		ID:           sess.ID,
		CreatedAt:    sess.CreatedAt,
		LastActivity: sess.LastActivity,
		Messages:     make([]Message, len(sess.Messages)),
	}
	copy(out.Messages, sess.Messages)
	return out
}

// Delete removes the session. Reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Sweep removes sessions whose last activity is older than the TTL relative
// to now, returning how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports how many sessions are live.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
