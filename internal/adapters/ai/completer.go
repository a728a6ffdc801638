package ai

import "context"

// ProviderName identifies a completion backend.
type ProviderName string

const (
	ProviderNameOpenAI ProviderName = "openai"
	ProviderNameGemini ProviderName = "gemini"
	ProviderNameDemo   ProviderName = "demo"
)

// Provider is a text-completion backend: one system instruction, one user
// prompt, one generated text back.
type Provider interface {
	Name() ProviderName
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Completer is the contract the orchestration engine consumes. It never
// returns an error: on any internal failure the implementation substitutes a
// clearly marked fallback report so the pipeline cannot stall on one stage.
type Completer interface {
	Complete(ctx context.Context, role, systemPrompt, userPrompt string) string
}

// FallbackFunc produces placeholder report text for a role when the backend
// call fails. Kept as an injectable strategy so orchestration tests can run
// without any real provider.
type FallbackFunc func(role, assetPair string) string
