package ai

import (
	"context"
	"strings"
	"time"

	"hermes/internal/adapters/config"
	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// ProviderOptions carries tuning shared by all provider constructors.
type ProviderOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Limiter     *Limiter
}

// Compile-time check
var _ Completer = (*Client)(nil)

// Client adapts a Provider to the engine-facing Completer contract: provider
// failures are absorbed and replaced with role-specific fallback reports so
// the caller always receives text.
type Client struct {
	provider Provider
	fallback FallbackFunc
	log      *logger.Logger
}

// NewClient wraps a provider with the fallback strategy.
func NewClient(provider Provider, fallback FallbackFunc) *Client {
	if fallback == nil {
		fallback = DefaultFallback
	}
	return &Client{
		provider: provider,
		fallback: fallback,
		log:      logger.Get().With("component", "completion_client", "provider", string(provider.Name())),
	}
}

// Complete returns generated text for the role, or fallback text on failure.
func (c *Client) Complete(ctx context.Context, role, systemPrompt, userPrompt string) string {
	start := time.Now()

	text, err := c.provider.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		metrics.CompletionCalls.WithLabelValues(string(c.provider.Name()), role, "error").Inc()
		c.log.Warnf("Completion failed for %s stage: %v; substituting fallback report", role, err)
		return c.fallback(role, ExtractAssetPair(userPrompt))
	}

	metrics.CompletionCalls.WithLabelValues(string(c.provider.Name()), role, "success").Inc()
	metrics.CompletionLatency.WithLabelValues(string(c.provider.Name()), role).Observe(time.Since(start).Seconds())

	return text
}

// NormalizeProviderName makes provider lookup more forgiving.
func NormalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildClient constructs a Completer for the requested provider and API key.
// Well-known test keys select demo mode regardless of provider.
func BuildClient(ctx context.Context, cfg config.AIConfig, providerName, apiKey string) (*Client, error) {
	if IsDemoKey(apiKey) {
		return NewClient(NewDemoProvider(DefaultFallback), DefaultFallback), nil
	}

	opts := ProviderOptions{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.RequestTimeout,
	}

	switch NormalizeProviderName(providerName) {
	case string(ProviderNameOpenAI):
		opts.Limiter = NewLimiter(ProviderNameOpenAI, cfg.ReqPerMinute, cfg.Burst)
		provider, err := NewOpenAIProvider(apiKey, opts)
		if err != nil {
			return nil, err
		}
		return NewClient(provider, DefaultFallback), nil

	case string(ProviderNameGemini):
		opts.Limiter = NewLimiter(ProviderNameGemini, cfg.ReqPerMinute, cfg.Burst)
		provider, err := NewGeminiProvider(ctx, apiKey, opts)
		if err != nil {
			return nil, err
		}
		return NewClient(provider, DefaultFallback), nil

	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown ai provider %q", providerName)
	}
}
