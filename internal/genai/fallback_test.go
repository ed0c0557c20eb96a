package genai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubGenerator scripts a sequence of results for Generate calls.
type stubGenerator struct {
	provider Provider
	results  []stubResult
	calls    int
}

type stubResult struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ IdeasRequest) (string, error) {
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	r := s.results[idx]
	return r.text, r.err
}

func (s *stubGenerator) Provider() Provider { return s.provider }
func (s *stubGenerator) Close() error       { return nil }

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestFallbackGeneratorPrimarySucceeds(t *testing.T) {
	primary := &stubGenerator{provider: ProviderGemini, results: []stubResult{{text: "- idea"}}}
	fallback := &stubGenerator{provider: ProviderGroq, results: []stubResult{{text: "unused"}}}

	gen := NewFallbackIdeasGenerator(primary, fallback, fastRetry())
	got, err := gen.Generate(context.Background(), IdeasRequest{ProgramName: "Arte Bayamo"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "- idea" {
		t.Errorf("Expected primary result, got %q", got)
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback should not be called, got %d calls", fallback.calls)
	}
}

func TestFallbackGeneratorRetriesThenFallsBack(t *testing.T) {
	boom := errors.New("rate limited")
	primary := &stubGenerator{provider: ProviderGemini, results: []stubResult{{err: boom}}}
	fallback := &stubGenerator{provider: ProviderGroq, results: []stubResult{{text: "- plan b"}}}

	gen := NewFallbackIdeasGenerator(primary, fallback, fastRetry())
	got, err := gen.Generate(context.Background(), IdeasRequest{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "- plan b" {
		t.Errorf("Expected fallback result, got %q", got)
	}
	if primary.calls != 2 {
		t.Errorf("Expected 2 primary attempts, got %d", primary.calls)
	}
}

func TestFallbackGeneratorBothFail(t *testing.T) {
	boom := errors.New("down")
	primary := &stubGenerator{provider: ProviderGemini, results: []stubResult{{err: boom}}}
	fallback := &stubGenerator{provider: ProviderGroq, results: []stubResult{{err: boom}}}

	gen := NewFallbackIdeasGenerator(primary, fallback, fastRetry())
	if _, err := gen.Generate(context.Background(), IdeasRequest{}); !errors.Is(err, boom) {
		t.Errorf("Expected final error, got %v", err)
	}
}

func TestFallbackGeneratorContextCancelled(t *testing.T) {
	boom := errors.New("slow")
	primary := &stubGenerator{provider: ProviderGemini, results: []stubResult{{err: boom}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewFallbackIdeasGenerator(primary, nil, fastRetry())
	if _, err := gen.Generate(ctx, IdeasRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context error, got %v", err)
	}
}

func TestCalculateBackoff(t *testing.T) {
	if got := CalculateBackoff(0, time.Second, time.Minute); got != 0 {
		t.Errorf("Expected no delay on first attempt, got %v", got)
	}

	for attempt := 1; attempt <= 5; attempt++ {
		max := 2 * time.Second
		got := CalculateBackoff(attempt, 100*time.Millisecond, max)
		if got < 0 || got > max {
			t.Errorf("Attempt %d: backoff %v out of [0, %v]", attempt, got, max)
		}
	}
}

func TestIdeasPrompt(t *testing.T) {
	prompt := IdeasPrompt(IdeasRequest{
		ProgramName:  "RCM Noticias",
		DayName:      "Jueves",
		Month:        "Octubre",
		Theme:        "Inicio de las Guerras de Independencia",
		Instructions: "Cobertura informativa.",
		Events:       []string{"1868", "Himno Nacional"},
	})

	for _, want := range []string{"RCM Noticias", "Jueves", "Octubre", "Inicio de las Guerras", "1868; Himno Nacional"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestNewIdeasGeneratorDisabledWithoutKeys(t *testing.T) {
	gen, err := NewIdeasGenerator(context.Background(), FactoryConfig{
		PrimaryProvider:  "gemini",
		FallbackProvider: "groq",
	})
	if err != nil {
		t.Fatalf("NewIdeasGenerator failed: %v", err)
	}
	if gen != nil {
		t.Error("Expected nil generator without API keys")
	}
}
