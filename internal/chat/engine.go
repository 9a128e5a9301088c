// Package chat orchestrates one request/response turn of the support
// assistant: classify intent and retrieve context in parallel, synthesize an
// answer, and keep the session transcript in causal order.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"agency-support-chat/internal/intent"
	"agency-support-chat/internal/logger"
	"agency-support-chat/internal/respond"
	"agency-support-chat/internal/retrieval"
	"agency-support-chat/internal/session"
	"agency-support-chat/internal/telemetry"
	"agency-support-chat/internal/vectorstore"
)

type Engine struct {
	retriever *retrieval.Retriever
	synth     *respond.Synthesizer
	sessions  *session.Store
	metrics   *telemetry.Metrics // optional
}

func NewEngine(retriever *retrieval.Retriever, synth *respond.Synthesizer, sessions *session.Store, metrics *telemetry.Metrics) *Engine {
	return &Engine{
		retriever: retriever,
		synth:     synth,
		sessions:  sessions,
		metrics:   metrics,
	}
}

type TurnResult struct {
	Message     string
	SessionID   string
	Intent      intent.Intent
	ContextUsed bool
}

// HandleTurn runs one full chat turn. A missing session id gets a generated
// one so the client can resume the conversation. Even with the store and
// embedder both down, the turn ends in the professional unavailable message
// rather than an error: the widget has no good way to render failures.
func (e *Engine) HandleTurn(ctx context.Context, message, sessionID string) TurnResult {
	tracer := otel.Tracer("chat-engine")
	ctx, span := tracer.Start(ctx, "chat.turn")
	defer span.End()

	start := time.Now()

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("chat.session_id", sessionID))

	// The user message lands in the transcript before the synthesizer reads
	// recent history.
	e.sessions.Append(sessionID, session.RoleUser, message)
	history := historyMessages(e.sessions.History(sessionID))

	// Retrieval and intent classification are independent.
	var (
		wg           sync.WaitGroup
		chunks       []vectorstore.Retrieved
		it           intent.Intent
		retrievalSec float64
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		retStart := time.Now()
		var err error
		chunks, err = e.retriever.Retrieve(ctx, message)
		retrievalSec = time.Since(retStart).Seconds()
		if err != nil {
			// Store I/O failure. Distinguishable from "nothing matched",
			// logged as such, but the turn still degrades gracefully.
			logger.Error("retrieval failed, continuing without context", "error", err.Error())
			chunks = nil
		}
	}()
	go func() {
		defer wg.Done()
		it = intent.Classify(message)
	}()
	wg.Wait()

	answer, tier := e.synth.Respond(ctx, message, chunks, it, history)

	e.sessions.Append(sessionID, session.RoleAssistant, answer)

	contextUsed := len(chunks) > 0
	span.SetAttributes(
		attribute.String("chat.intent", string(it)),
		attribute.Bool("chat.context_used", contextUsed),
		attribute.String("chat.tier", tier),
	)
	if e.metrics != nil {
		e.metrics.RecordTurn(string(it), contextUsed, time.Since(start).Seconds())
		e.metrics.RecordTier(tier)
		e.metrics.RecordRetrieval(retrievalSec, len(chunks))
	}

	return TurnResult{
		Message:     answer,
		SessionID:   sessionID,
		Intent:      it,
		ContextUsed: contextUsed,
	}
}

func historyMessages(sess *session.Session) []respond.Message {
	if sess == nil {
		return nil
	}
	out := make([]respond.Message, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		out = append(out, respond.Message{Role: m.Role, Content: m.Content})
	}
	return out
}
