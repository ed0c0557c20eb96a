package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// groqIdeasGenerator implements IdeasGenerator on Groq's OpenAI-compatible
// API.
type groqIdeasGenerator struct {
	client openai.Client
	model  string
}

// newGroqIdeasGenerator creates a Groq-backed generator. Returns nil when
// apiKey is empty (feature disabled).
func newGroqIdeasGenerator(_ context.Context, apiKey, model string) (*groqIdeasGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // feature disabled without API key
	}

	if model == "" {
		model = DefaultGroqModel
	}

	client := openai.NewClient(
		option.WithBaseURL(GroqBaseURL),
		option.WithAPIKey(apiKey),
	)

	return &groqIdeasGenerator{client: client, model: model}, nil
}

// Generate produces the ideas list for the slot.
func (g *groqIdeasGenerator) Generate(ctx context.Context, req IdeasRequest) (string, error) {
	if g == nil {
		return "", nil
	}

	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(IdeasPrompt(req)),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(400),
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "ideas generation API call failed",
			"provider", "groq",
			"model", g.model,
			"program", req.ProgramName,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", nil
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Provider returns the provider type for this generator.
func (g *groqIdeasGenerator) Provider() Provider {
	return ProviderGroq
}

// Close releases client resources.
func (g *groqIdeasGenerator) Close() error {
	return nil
}
