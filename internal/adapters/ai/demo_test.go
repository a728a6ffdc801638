package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDemoKey(t *testing.T) {
	assert.True(t, IsDemoKey("sk-test123456789"))
	assert.True(t, IsDemoKey("demo-anything"))
	assert.False(t, IsDemoKey("sk-live-abcdef"))
	assert.False(t, IsDemoKey(""))
}

func TestExtractAssetPair(t *testing.T) {
	assert.Equal(t, "ETH/USD", ExtractAssetPair("Analyze ETH/USD with the following market data"))
	assert.Equal(t, "DOGE/USDT", ExtractAssetPair("something about DOGE/USDT today"))
	assert.Equal(t, "BTC/USD", ExtractAssetPair("no pair mentioned here"), "defaults when no pair is present")
}

func TestRoleFromSystemPrompt_CompositePersonas(t *testing.T) {
	// The trader persona mentions research, sentiment, and news; it must
	// still resolve to trader.
	trader := "You are a hedge fund trader weighing research, sentiment analysis, and news."
	assert.Equal(t, "trader", roleFromSystemPrompt(trader))

	bull := "You are a bullish trading analyst. Use the research and sentiment provided."
	assert.Equal(t, "bull", roleFromSystemPrompt(bull))

	sentiment := "You are a sentiment analysis expert for financial markets."
	assert.Equal(t, "sentiment", roleFromSystemPrompt(sentiment))
}

func TestDemoProvider_Complete(t *testing.T) {
	p := NewDemoProvider(nil)

	report, err := p.Complete(context.Background(), "You are a financial researcher.", "Analyze SOL/USDT with the following market data: x")
	require.NoError(t, err)
	assert.Contains(t, report, "SOL/USDT")
	assert.Contains(t, report, "Technical Analysis")
}

func TestDefaultFallback_TraderCarriesDecisionMarker(t *testing.T) {
	report := DefaultFallback("trader", "BTC/USD")
	assert.Contains(t, report, "FINAL RECOMMENDATION: HOLD")
	assert.Contains(t, report, "predicted price range for the asset for the next 7-14 days:")
}

type errProvider struct{}

func (errProvider) Name() ProviderName { return "err" }
func (errProvider) Complete(context.Context, string, string) (string, error) {
	return "", assert.AnError
}

func TestClient_FallsBackOnProviderError(t *testing.T) {
	client := NewClient(errProvider{}, DefaultFallback)

	report := client.Complete(context.Background(), "news", "system", "Analyze ETH/USD with the following market data: y")
	assert.Equal(t, DefaultFallback("news", "ETH/USD"), report)
}
