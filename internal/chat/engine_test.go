package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"agency-support-chat/internal/ai"
	"agency-support-chat/internal/corpus"
	"agency-support-chat/internal/intent"
	"agency-support-chat/internal/respond"
	"agency-support-chat/internal/retrieval"
	"agency-support-chat/internal/session"
	"agency-support-chat/internal/vectorstore"
	"agency-support-chat/internal/vectorstore/memory"
)

// newTestEngine wires the full pipeline against the real corpus with the
// deterministic local embedder and an in-memory store.
func newTestEngine(t *testing.T) (*Engine, *session.Store) {
	t.Helper()

	store := memory.NewStore()
	embedder := ai.NewLocalEmbedder(0)
	if _, err := corpus.Populate(context.Background(), store, embedder); err != nil {
		t.Fatalf("populating corpus: %v", err)
	}

	catalog := func(ctx context.Context) []vectorstore.Record {
		all, err := store.All(ctx)
		if err != nil {
			return nil
		}
		var services []vectorstore.Record
		for _, rec := range all {
			if rec.Type == vectorstore.TypeService {
				services = append(services, rec)
			}
		}
		return services
	}

	sessions := session.NewStore(time.Hour, 30*time.Minute)
	retriever := retrieval.NewRetriever(embedder, store, 5)
	synth := respond.NewSynthesizer(nil, catalog)
	return NewEngine(retriever, synth, sessions, nil), sessions
}

func TestGroundedAnswerForKnownQuestion(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.HandleTurn(context.Background(),
		"How long does it take to implement an AI automation solution?", "")

	if !res.ContextUsed {
		t.Fatal("a question matching the corpus should retrieve context")
	}
	if !strings.Contains(res.Message, "2-4 weeks") {
		t.Errorf("answer should be grounded in the timeline chunk, got: %q", res.Message)
	}
}

func TestOffTopicQuestionGetsPoliteRefusal(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.HandleTurn(context.Background(), "what is the weather in Lahore", "")

	if res.ContextUsed {
		t.Error("an off-topic question should retrieve no context")
	}
	if res.Intent != intent.General {
		t.Errorf("intent = %s, want general", res.Intent)
	}
	if !strings.Contains(res.Message, "hello@auralis.ai") {
		t.Errorf("off-topic answer should redirect to the contact channel, got: %q", res.Message)
	}
}

func TestServiceEnumeration(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.HandleTurn(context.Background(), "what services do you offer", "")

	if res.Intent != intent.ServiceInquiry {
		t.Fatalf("intent = %s, want service_inquiry", res.Intent)
	}
	for _, chunk := range corpus.All() {
		if chunk.Type != vectorstore.TypeService {
			continue
		}
		if strings.Count(res.Message, chunk.Metadata.Title) != 1 {
			t.Errorf("service %q should appear exactly once in: %q", chunk.Metadata.Title, res.Message)
		}
	}
}

func TestSessionIDGeneratedWhenMissing(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.HandleTurn(context.Background(), "hello", "")
	if res.SessionID == "" {
		t.Fatal("engine should mint a session id when none is supplied")
	}
	if _, err := uuid.Parse(res.SessionID); err != nil {
		t.Errorf("generated session id %q is not a uuid: %v", res.SessionID, err)
	}
}

func TestTranscriptOrderAcrossTurns(t *testing.T) {
	engine, sessions := newTestEngine(t)

	first := engine.HandleTurn(context.Background(), "what services do you offer", "")
	second := engine.HandleTurn(context.Background(), "how much does it cost", first.SessionID)

	if second.SessionID != first.SessionID {
		t.Fatalf("session id changed across turns: %s vs %s", first.SessionID, second.SessionID)
	}

	sess := sessions.History(first.SessionID)
	if sess == nil {
		t.Fatal("session transcript missing")
	}
	if len(sess.Messages) != 4 {
		t.Fatalf("transcript has %d messages, want 4", len(sess.Messages))
	}
	wantRoles := []string{session.RoleUser, session.RoleAssistant, session.RoleUser, session.RoleAssistant}
	for i, want := range wantRoles {
		if sess.Messages[i].Role != want {
			t.Errorf("message %d role = %q, want %q", i, sess.Messages[i].Role, want)
		}
	}
	if sess.Messages[0].Content != "what services do you offer" {
		t.Errorf("first transcript message = %q", sess.Messages[0].Content)
	}
}

func TestTurnNeverReturnsEmptyMessage(t *testing.T) {
	engine, _ := newTestEngine(t)

	queries := []string{
		"what services do you offer",
		"how much does a chatbot cost",
		"what api do you integrate with",
		"how do we get started",
		"how can I contact you",
		"tell me a joke about penguins",
	}
	for _, q := range queries {
		res := engine.HandleTurn(context.Background(), q, "")
		if strings.TrimSpace(res.Message) == "" {
			t.Errorf("query %q produced an empty answer", q)
		}
	}
}
