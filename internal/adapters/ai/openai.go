package ai

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"hermes/pkg/errors"
)

// Compile-time check
var _ Provider = (*OpenAIProvider)(nil)

// OpenAIProvider implements text completion using the official OpenAI Go SDK
type OpenAIProvider struct {
	client      openai.Client
	model       openai.ChatModel
	maxTokens   int
	temperature float64
	timeout     time.Duration
	limiter     *Limiter
}

// NewOpenAIProvider creates a new OpenAI completion provider
func NewOpenAIProvider(apiKey string, opts ProviderOptions) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "openai API key is required")
	}

	model := openai.ChatModel(opts.Model)
	if opts.Model == "" {
		model = openai.ChatModelGPT4
	}

	return &OpenAIProvider{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		limiter:     opts.Limiter,
	}, nil
}

// Name returns the provider identifier
func (p *OpenAIProvider) Name() ProviderName { return ProviderNameOpenAI }

// Complete sends a chat completion request and returns the generated text
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
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

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   openai.Int(int64(p.maxTokens)),
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		return "", errors.Wrap(err, "openai chat completion")
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.Wrap(errors.ErrProviderUnavailable, "openai returned no content")
	}

	return resp.Choices[0].Message.Content, nil
}
