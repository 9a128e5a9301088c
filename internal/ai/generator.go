package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

// Generator is the optional tier-1 text generation capability. The engine is
// fully functional without one; any error here is recovered by the
// deterministic fallback and never surfaced to the end user.
type Generator interface {
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator wraps gemini-2.0-flash with a circuit breaker, a
// client-side RPM limiter and a per-call timeout.
type GeminiGenerator struct {
	apiKey      string
	model       string
	temperature float32
	maxTokens   int32
	timeout     time.Duration

	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter

	once    sync.Once
	client  *genai.Client
	initErr error
}

type GeneratorOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func NewGeminiGenerator(apiKey string, opts GeneratorOptions) *GeminiGenerator {
	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 500
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	// Free-tier RPM with some buffer
	limiter := rate.NewLimiter(rate.Limit(10*0.9/60.0), 2)

	return &GeminiGenerator{
		apiKey:      apiKey,
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		maxTokens:   int32(opts.MaxTokens),
		timeout:     opts.Timeout,
		breaker:     breaker,
		limiter:     limiter,
	}
}

func (g *GeminiGenerator) Available() bool {
	return len(strings.TrimSpace(g.apiKey)) >= 20
}

func (g *GeminiGenerator) init(ctx context.Context) error {
	g.once.Do(func() {
		g.client, g.initErr = genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	})
	return g.initErr
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("gemini-generator")
	ctx, span := tracer.Start(ctx, "gemini.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("gemini.model", g.model),
		attribute.Int("gemini.prompt_chars", len(prompt)),
	)

	if err := g.init(ctx); err != nil {
		span.SetAttributes(attribute.Bool("gemini.error", true))
		return "", err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("gemini.rate_limited", true))
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.breaker.Execute(func() (interface{}, error) {
		model := g.client.GenerativeModel(g.model)
		model.SetTemperature(g.temperature)
		model.SetMaxOutputTokens(g.maxTokens)

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return nil, err
		}
		return extractText(resp), nil
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("gemini.error", true))
		span.SetAttributes(attribute.String("gemini.error_message", err.Error()))
		return "", err
	}

	text := strings.TrimSpace(result.(string))
	// Anything this short is a refusal or an empty candidate, not an answer.
	if len(text) <= 10 {
		span.SetAttributes(attribute.Bool("gemini.too_short", true))
		return "", fmt.Errorf("generation returned unusable output (%d chars)", len(text))
	}

	span.SetAttributes(attribute.Bool("gemini.success", true))
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
