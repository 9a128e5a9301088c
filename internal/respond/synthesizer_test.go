package respond

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agency-support-chat/internal/intent"
	"agency-support-chat/internal/vectorstore"
)

func faqChunk(id, answer string, sim float64) vectorstore.Retrieved {
	return vectorstore.Retrieved{
		Record: vectorstore.Record{
			ID:       id,
			Text:     "Q: something A: " + answer,
			Type:     vectorstore.TypeFAQ,
			Metadata: vectorstore.Metadata{Answer: answer},
		},
		Similarity: sim,
	}
}

func serviceRecord(id, title, desc string) vectorstore.Record {
	return vectorstore.Record{
		ID:       id,
		Text:     title + ": " + desc,
		Type:     vectorstore.TypeService,
		Metadata: vectorstore.Metadata{Title: title, Description: desc},
	}
}

func testCatalog(records ...vectorstore.Record) Catalog {
	return func(context.Context) []vectorstore.Record { return records }
}

func TestHighQualityAnswer(t *testing.T) {
	s := NewSynthesizer(nil, nil)
	chunks := []vectorstore.Retrieved{
		faqChunk("faq-1", "A focused automation typically ships in 2-4 weeks.", 0.82),
	}

	answer, tier := s.Respond(context.Background(), "how long does it take", chunks, intent.Process, nil)
	if tier != "high_quality" {
		t.Fatalf("tier = %q, want high_quality", tier)
	}
	if !strings.Contains(answer, "2-4 weeks") {
		t.Errorf("answer does not contain the grounded content: %q", answer)
	}
	if !strings.Contains(answer, closings[intent.Process]) {
		t.Errorf("answer missing the process closing: %q", answer)
	}
}

func TestSecondStrongChunkAppended(t *testing.T) {
	s := NewSynthesizer(nil, nil)
	chunks := []vectorstore.Retrieved{
		faqChunk("faq-1", "First answer about discovery calls.", 0.80),
		faqChunk("faq-2", "Second answer about implementation scope.", 0.60),
	}

	answer, _ := s.Respond(context.Background(), "tell me about projects", chunks, intent.General, nil)
	if !strings.Contains(answer, "First answer") || !strings.Contains(answer, "Second answer") {
		t.Errorf("both strong chunks should appear, got: %q", answer)
	}
}

func TestSecondChunkBelowCutoffIgnored(t *testing.T) {
	s := NewSynthesizer(nil, nil)
	chunks := []vectorstore.Retrieved{
		faqChunk("faq-1", "First answer.", 0.80),
		faqChunk("faq-2", "Second answer that is only moderately related.", 0.52),
	}

	answer, _ := s.Respond(context.Background(), "question", chunks, intent.General, nil)
	if strings.Contains(answer, "moderately related") {
		t.Errorf("chunk at 0.52 must not be appended, got: %q", answer)
	}
}

func TestDuplicateSecondChunkSkipped(t *testing.T) {
	s := NewSynthesizer(nil, nil)
	shared := "We start every engagement with a free discovery call to map your workflows."
	chunks := []vectorstore.Retrieved{
		faqChunk("faq-1", shared, 0.80),
		faqChunk("faq-2", shared, 0.70),
	}

	answer, _ := s.Respond(context.Background(), "how do we start", chunks, intent.Process, nil)
	if strings.Count(answer, "free discovery call to map") != 1 {
		t.Errorf("duplicated chunk content appended twice: %q", answer)
	}
}

func TestMediumQualityServiceListing(t *testing.T) {
	s := NewSynthesizer(nil, nil)
	chunks := []vectorstore.Retrieved{
		{Record: serviceRecord("service-1", "Workflow Automation", "Automate repetitive tasks."), Similarity: 0.42},
		{Record: serviceRecord("service-2", "Data Analytics & Insights", "Turn data into decisions."), Similarity: 0.38},
	}

	answer, tier := s.Respond(context.Background(), "can you help my business", chunks, intent.General, nil)
	if tier != "medium_services" {
		t.Fatalf("tier = %q, want medium_services", tier)
	}
	if !strings.Contains(answer, "Workflow Automation") || !strings.Contains(answer, "Data Analytics & Insights") {
		t.Errorf("listing missing retrieved services: %q", answer)
	}
}

func TestServiceEnumerationFromCatalog(t *testing.T) {
	titles := []string{
		"AI Chatbots & Virtual Assistants",
		"Workflow Automation",
		"Data Analytics & Insights",
		"AI-Powered Lead Generation",
		"Document Processing Automation",
		"Custom AI Integrations",
	}
	records := make([]vectorstore.Record, len(titles))
	for i, title := range titles {
		records[i] = serviceRecord("service-"+string(rune('1'+i)), title, "desc")
	}
	s := NewSynthesizer(nil, testCatalog(records...))

	answer, tier := s.Respond(context.Background(), "what services do you offer", nil, intent.ServiceInquiry, nil)
	if tier != "any_services" {
		t.Fatalf("tier = %q, want any_services", tier)
	}
	for _, title := range titles {
		if strings.Count(answer, title) != 1 {
			t.Errorf("service %q should appear exactly once, got: %q", title, answer)
		}
	}
}

func TestOffTopicGetsUnavailableMessage(t *testing.T) {
	catalog := testCatalog(serviceRecord("service-1", "Workflow Automation", "desc"))
	s := NewSynthesizer(nil, catalog)

	answer, tier := s.Respond(context.Background(), "what is the weather in Lahore", nil, intent.General, nil)
	if tier != "unavailable" {
		t.Fatalf("tier = %q, want unavailable", tier)
	}
	if answer != unavailable[intent.General] {
		t.Errorf("off-topic answer = %q, want the general unavailable message", answer)
	}
}

func TestGeneralKnowledgeFallback(t *testing.T) {
	s := NewSynthesizer(nil, nil)

	answer, tier := s.Respond(context.Background(), "how long does a project usually take", nil, intent.General, nil)
	if tier != "general_knowledge" {
		t.Fatalf("tier = %q, want general_knowledge", tier)
	}
	if !strings.Contains(answer, "2-4 weeks") {
		t.Errorf("canned timeline answer expected, got: %q", answer)
	}
}

func TestRespondNeverEmpty(t *testing.T) {
	s := NewSynthesizer(nil, nil)
	for _, it := range intent.Order {
		answer, tier := s.Respond(context.Background(), "zzz qqq", nil, it, nil)
		if answer == "" {
			t.Errorf("intent %s produced an empty answer (tier %s)", it, tier)
		}
	}
}

// panickyGenerator stands in for a provider SDK blowing up mid-call.
type panickyGenerator struct{}

func (panickyGenerator) Available() bool { return true }

func (panickyGenerator) Generate(context.Context, string) (string, error) {
	panic("sdk internal fault")
}

func TestGeneratorPanicFallsThroughToCascade(t *testing.T) {
	s := NewSynthesizer(panickyGenerator{}, nil)

	answer, tier := s.Respond(context.Background(), "what is ai automation", nil, intent.General, nil)
	if tier == "generated" {
		t.Fatal("panicking generator must not produce a generated tier")
	}
	if answer == "" {
		t.Fatal("cascade must still produce an answer after a provider panic")
	}
}

// failingGenerator returns an error for every call.
type failingGenerator struct{}

func (failingGenerator) Available() bool { return true }

func (failingGenerator) Generate(context.Context, string) (string, error) {
	return "", errors.New("quota exhausted")
}

func TestGeneratorErrorFallsThroughToCascade(t *testing.T) {
	s := NewSynthesizer(failingGenerator{}, nil)

	answer, tier := s.Respond(context.Background(), "weather report please", nil, intent.General, nil)
	if tier != "unavailable" {
		t.Fatalf("tier = %q, want unavailable", tier)
	}
	if !strings.Contains(answer, "hello@auralis.ai") {
		t.Errorf("unavailable message should point at the contact channel: %q", answer)
	}
}

func TestBuildPromptTruncatesContextAndHistory(t *testing.T) {
	chunks := []vectorstore.Retrieved{
		faqChunk("a", "one", 0.9), faqChunk("b", "two", 0.8),
		faqChunk("c", "three", 0.7), faqChunk("d", "four", 0.6),
	}
	history := []Message{
		{Role: "user", Content: "m1"}, {Role: "assistant", Content: "m2"},
		{Role: "user", Content: "m3"}, {Role: "assistant", Content: "m4"},
		{Role: "user", Content: "m5"}, {Role: "assistant", Content: "m6"},
		{Role: "user", Content: "m7"}, {Role: "assistant", Content: "m8"},
	}

	prompt := buildPrompt("question", chunks, history)
	if strings.Contains(prompt, "Context 4") {
		t.Error("prompt should carry at most three context chunks")
	}
	if strings.Contains(prompt, "m1") || strings.Contains(prompt, "m2") {
		t.Error("prompt should carry only the six most recent history messages")
	}
	if !strings.Contains(prompt, "m8") {
		t.Error("most recent history message missing from prompt")
	}
}
