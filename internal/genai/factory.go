package genai

import (
	"context"
	"fmt"
)

// FactoryConfig selects and configures the providers.
type FactoryConfig struct {
	GeminiAPIKey     string
	GroqAPIKey       string
	GeminiModel      string
	GroqModel        string
	PrimaryProvider  string // "gemini" or "groq"
	FallbackProvider string
	Retry            RetryConfig
}

// NewIdeasGenerator builds the fallback-wrapped generator from the
// configuration. Returns nil (disabled) when no provider has a key.
func NewIdeasGenerator(ctx context.Context, cfg FactoryConfig) (IdeasGenerator, error) {
	primary, err := buildProvider(ctx, cfg, cfg.PrimaryProvider)
	if err != nil {
		return nil, fmt.Errorf("primary provider: %w", err)
	}

	var fallback IdeasGenerator
	if cfg.FallbackProvider != cfg.PrimaryProvider {
		fallback, err = buildProvider(ctx, cfg, cfg.FallbackProvider)
		if err != nil {
			return nil, fmt.Errorf("fallback provider: %w", err)
		}
	}

	// The configured primary may lack a key while the fallback has one;
	// promote the fallback rather than running headless.
	if primary == nil {
		primary, fallback = fallback, nil
	}
	if primary == nil {
		return nil, nil //nolint:nilnil // feature disabled without any API key
	}

	return NewFallbackIdeasGenerator(primary, fallback, cfg.Retry), nil
}

func buildProvider(ctx context.Context, cfg FactoryConfig, name string) (IdeasGenerator, error) {
	switch Provider(name) {
	case ProviderGemini:
		gen, err := newGeminiIdeasGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil || gen == nil {
			return nil, err
		}
		return gen, nil
	case ProviderGroq:
		gen, err := newGroqIdeasGenerator(ctx, cfg.GroqAPIKey, cfg.GroqModel)
		if err != nil || gen == nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
