// Package respond composes the final answer for a chat turn. Tier 1 is an
// optional external generation call; tier 2 is the deterministic template
// cascade that is the system's designed default, not a degraded mode.
package respond

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"agency-support-chat/internal/ai"
	"agency-support-chat/internal/intent"
	"agency-support-chat/internal/logger"
	"agency-support-chat/internal/vectorstore"
)

// Message is one prior turn of the conversation, newest last.
type Message struct {
	Role    string
	Content string
}

// Catalog supplies the full service-chunk list for the listing fallbacks.
// The retriever only returns chunks above the similarity threshold, so the
// synthesizer needs its own way to reach the catalog.
type Catalog func(ctx context.Context) []vectorstore.Record

type Synthesizer struct {
	gen     ai.Generator // nil when no generation credential is configured
	catalog Catalog
}

func NewSynthesizer(gen ai.Generator, catalog Catalog) *Synthesizer {
	return &Synthesizer{gen: gen, catalog: catalog}
}

// Respond returns the answer text and the name of the strategy that produced
// it. It never panics and never returns an empty string: an internal failure
// anywhere in tier 1 falls through to tier 2, and tier 2 terminates in the
// unavailable message.
func (s *Synthesizer) Respond(ctx context.Context, query string, chunks []vectorstore.Retrieved, it intent.Intent, history []Message) (answer, tier string) {
	tracer := otel.Tracer("synthesizer")
	ctx, span := tracer.Start(ctx, "respond.synthesize")
	defer span.End()
	span.SetAttributes(
		attribute.String("respond.intent", string(it)),
		attribute.Int("respond.context_chunks", len(chunks)),
	)

	if s.gen != nil && s.gen.Available() {
		if text, err := s.tier1(ctx, query, chunks, history); err == nil {
			span.SetAttributes(attribute.String("respond.tier", "generated"))
			return text, "generated"
		} else {
			// Provider errors are never surfaced to the end user.
			logger.Debug("tier-1 generation unusable, using fallback", "error", err.Error())
		}
	}

	var services []vectorstore.Record
	if s.catalog != nil {
		services = s.catalog(ctx)
	}

	answer, tier = runCascade(input{
		query:    query,
		chunks:   chunks,
		intent:   it,
		services: services,
	})
	span.SetAttributes(attribute.String("respond.tier", tier))
	return answer, tier
}

// tier1 builds a grounded prompt and calls the external generator. Any
// panic inside the provider SDK is converted into an error so tier 2 remains
// the final defense.
func (s *Synthesizer) tier1(ctx context.Context, query string, chunks []vectorstore.Retrieved, history []Message) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("generation panicked: %v", r)
		}
	}()

	return s.gen.Generate(ctx, buildPrompt(query, chunks, history))
}

const systemInstructions = "You are the support assistant for Auralis AI, an AI automation agency. " +
	"Answer using only the provided business context. Be concise and friendly. " +
	"If the context does not cover the question, say so and point the user to hello@auralis.ai."

func buildPrompt(query string, chunks []vectorstore.Retrieved, history []Message) string {
	var sb strings.Builder
	sb.WriteString(systemInstructions)
	sb.WriteString("\n\n")

	if len(chunks) > 0 {
		top := chunks
		if len(top) > 3 {
			top = top[:3]
		}
		for i, c := range top {
			sb.WriteString(fmt.Sprintf("Context %d:\n%s\n\n", i+1, c.Text))
		}
	}

	if len(history) > 0 {
		recent := history
		if len(recent) > 6 {
			recent = recent[len(recent)-6:]
		}
		sb.WriteString("Recent conversation:\n")
		for _, m := range recent {
			sb.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Please answer this question: ")
	sb.WriteString(query)
	return sb.String()
}
