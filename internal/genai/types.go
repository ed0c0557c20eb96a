// Package genai generates editorial idea lists for program slots using
// LLM APIs, with cross-provider failover.
//
// Architecture:
//   - Gemini: google.golang.org/genai (official SDK)
//   - Groq: github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Fallback strategy: the primary provider is retried with exponential
// backoff, then the fallback provider gets the same treatment. When both
// fail, the caller keeps the slot's ideas field empty for manual editing.
package genai

import "context"

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API.
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's OpenAI-compatible API.
	ProviderGroq Provider = "groq"
)

// GroqBaseURL is the OpenAI-compatible endpoint for Groq.
const GroqBaseURL = "https://api.groq.com/openai/v1/"

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// IdeasRequest carries the editorial context for one program slot.
type IdeasRequest struct {
	ProgramName  string
	DayName      string
	Month        string
	Theme        string
	Instructions string
	Events       []string // efeméride labels recorded for the day
}

// IdeasGenerator produces a short idea list for a program slot.
type IdeasGenerator interface {
	// Generate returns newline-separated content ideas for the slot.
	Generate(ctx context.Context, req IdeasRequest) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the generator.
	Close() error
}
