package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/config"
	"hermes/pkg/errors"
)

func TestBuildClient_DemoKeySelectsDemoMode(t *testing.T) {
	client, err := BuildClient(context.Background(), config.AIConfig{}, "openai", "sk-test123456789")
	require.NoError(t, err)

	report := client.Complete(context.Background(), "researcher", "You are a financial researcher.", "Analyze BTC/USD with the following market data: x")
	assert.Contains(t, report, "BTC/USD")
}

func TestBuildClient_UnknownProvider(t *testing.T) {
	_, err := BuildClient(context.Background(), config.AIConfig{}, "oracle", "sk-live-key")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestNormalizeProviderName(t *testing.T) {
	assert.Equal(t, "openai", NormalizeProviderName("  OpenAI "))
	assert.Equal(t, "gemini", NormalizeProviderName("GEMINI"))
}
