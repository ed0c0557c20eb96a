package genai

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// FallbackIdeasGenerator wraps a primary and a fallback IdeasGenerator.
// The primary is retried with backoff; on exhaustion the fallback gets
// the same treatment. Context cancellation stops everything.
type FallbackIdeasGenerator struct {
	primary     IdeasGenerator
	fallback    IdeasGenerator
	retryConfig RetryConfig
}

// NewFallbackIdeasGenerator creates a fallback-enabled generator. With a
// nil fallback only retry logic applies to the primary.
func NewFallbackIdeasGenerator(primary, fallback IdeasGenerator, cfg RetryConfig) *FallbackIdeasGenerator {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig
	}
	return &FallbackIdeasGenerator{
		primary:     primary,
		fallback:    fallback,
		retryConfig: cfg,
	}
}

// Generate tries the primary generator with retry, then the fallback.
func (f *FallbackIdeasGenerator) Generate(ctx context.Context, req IdeasRequest) (string, error) {
	if f == nil || f.primary == nil {
		return "", errors.New("ideas generator not configured")
	}

	start := time.Now()
	result, err := f.generateWithRetry(ctx, f.primary, req)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if f.fallback == nil {
		return "", err
	}

	slog.InfoContext(ctx, "falling back to secondary ideas provider",
		"from", f.primary.Provider(),
		"to", f.fallback.Provider(),
		"primary_error", err,
		"elapsed", time.Since(start))

	return f.generateWithRetry(ctx, f.fallback, req)
}

func (f *FallbackIdeasGenerator) generateWithRetry(ctx context.Context, gen IdeasGenerator, req IdeasRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt < f.retryConfig.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := CalculateBackoff(attempt, f.retryConfig.InitialDelay, f.retryConfig.MaxDelay)
			if err := Sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		result, err := gen.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		slog.DebugContext(ctx, "ideas generation attempt failed",
			"provider", gen.Provider(),
			"attempt", attempt+1,
			"error", err)
	}
	return "", lastErr
}

// Provider returns the primary provider type.
func (f *FallbackIdeasGenerator) Provider() Provider {
	if f.primary != nil {
		return f.primary.Provider()
	}
	return ""
}

// Close releases both generators.
func (f *FallbackIdeasGenerator) Close() error {
	var errs []error
	if f.primary != nil {
		errs = append(errs, f.primary.Close())
	}
	if f.fallback != nil {
		errs = append(errs, f.fallback.Close())
	}
	return errors.Join(errs...)
}
