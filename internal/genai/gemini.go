package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiIdeasGenerator implements IdeasGenerator on the Gemini API.
type geminiIdeasGenerator struct {
	client *genai.Client
	model  string
}

// newGeminiIdeasGenerator creates a Gemini-backed generator. Returns nil
// when apiKey is empty (feature disabled).
func newGeminiIdeasGenerator(ctx context.Context, apiKey, model string) (*geminiIdeasGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // feature disabled without API key
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiIdeasGenerator{client: client, model: model}, nil
}

// Generate produces the ideas list for the slot.
func (g *geminiIdeasGenerator) Generate(ctx context.Context, req IdeasRequest) (string, error) {
	if g == nil || g.client == nil {
		return "", nil
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 400,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(IdeasPrompt(req)), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "ideas generation API call failed",
			"provider", "gemini",
			"model", g.model,
			"program", req.ProgramName,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var ideas strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			ideas.WriteString(part.Text)
		}
	}

	result := strings.TrimSpace(ideas.String())

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "ideas generation completed",
			"provider", "gemini",
			"model", g.model,
			"total_tokens", resp.UsageMetadata.TotalTokenCount,
			"duration_ms", duration.Milliseconds())
	}

	return result, nil
}

// Provider returns the provider type for this generator.
func (g *geminiIdeasGenerator) Provider() Provider {
	return ProviderGemini
}

// Close releases client resources.
func (g *geminiIdeasGenerator) Close() error {
	return nil
}
