package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"hermes/pkg/errors"
)

// Compile-time check
var _ Provider = (*GeminiProvider)(nil)

// GeminiProvider implements text completion using the Google GenAI SDK
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	limiter     *Limiter
}

// NewGeminiProvider creates a new Gemini completion provider
func NewGeminiProvider(ctx context.Context, apiKey string, opts ProviderOptions) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	model := opts.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiProvider{
		client:      client,
		model:       model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		limiter:     opts.Limiter,
	}, nil
}

// Name returns the provider identifier
func (p *GeminiProvider) Name() ProviderName { return ProviderNameGemini }

// Complete sends a generation request and returns the generated text
func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(p.temperature)),
		MaxOutputTokens: int32(p.maxTokens),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", errors.Wrap(err, "gemini generate content")
	}

	text := resp.Text()
	if text == "" {
		return "", errors.Wrap(errors.ErrProviderUnavailable, "gemini returned no content")
	}

	return text, nil
}
