package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAppendAndHistory(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)

	s.Append("abc", RoleUser, "hello")
	s.Append("abc", RoleAssistant, "hi there")

	sess := s.History("abc")
	if sess == nil {
		t.Fatal("session should exist after append")
	}
	if len(sess.Messages) != 2 {
		t.Fatalf("history has %d messages, want 2", len(sess.Messages))
	}
	if sess.Messages[0].Role != RoleUser || sess.Messages[0].Content != "hello" {
		t.Errorf("first message = %+v", sess.Messages[0])
	}
	if sess.Messages[1].Role != RoleAssistant {
		t.Errorf("second message role = %q, want assistant", sess.Messages[1].Role)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)
	s.Append("abc", RoleUser, "original")

	sess := s.History("abc")
	sess.Messages[0].Content = "mutated"

	if got := s.History("abc").Messages[0].Content; got != "original" {
		t.Errorf("stored message mutated through a history copy: %q", got)
	}
}

func TestHistoryMissingSession(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)
	if s.History("nope") != nil {
		t.Error("history of an unknown session should be nil")
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)
	s.Append("abc", RoleUser, "hello")

	if !s.Delete("abc") {
		t.Error("delete should report the session existed")
	}
	if s.Delete("abc") {
		t.Error("second delete should report the session was gone")
	}
	if s.History("abc") != nil {
		t.Error("deleted session still readable")
	}
}

func TestSweepEvictsOnlyIdleSessions(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)

	s.Append("old", RoleUser, "first")
	s.Append("young", RoleUser, "second")

	// Age the first session past the TTL by hand.
	s.mu.Lock()
	s.sessions["old"].LastActivity = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()

	removed := s.Sweep(time.Now())
	if removed != 1 {
		t.Fatalf("sweep removed %d sessions, want 1", removed)
	}
	if s.History("old") != nil {
		t.Error("idle session survived the sweep")
	}
	if s.History("young") == nil {
		t.Error("active session was evicted")
	}
}

func TestSweepExactlyAtTTLKept(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)
	s.Append("edge", RoleUser, "hi")

	now := time.Now()
	s.mu.Lock()
	s.sessions["edge"].LastActivity = now.Add(-time.Hour)
	s.mu.Unlock()

	if removed := s.Sweep(now); removed != 0 {
		t.Errorf("session exactly at the TTL boundary was evicted")
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)

	const writers = 8
	const perWriter = 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Append("shared", RoleUser, fmt.Sprintf("w%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	if got := len(s.History("shared").Messages); got != writers*perWriter {
		t.Errorf("lost appends under concurrency: got %d, want %d", got, writers*perWriter)
	}
	if s.Len() != 1 {
		t.Errorf("store has %d sessions, want 1", s.Len())
	}
}

func TestStartStopIdempotent(t *testing.T) {
	s := NewStore(time.Hour, 30*time.Minute)
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
}
