package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDecisionValid(t *testing.T) {
	assert.True(t, DecisionBuy.Valid())
	assert.True(t, DecisionSell.Valid())
	assert.True(t, DecisionHold.Valid())
	assert.False(t, Decision("MAYBE").Valid())
	assert.False(t, Decision("").Valid())
}

func TestCompleted(t *testing.T) {
	var nilRec *Analysis
	assert.False(t, nilRec.Completed())

	assert.False(t, (&Analysis{}).Completed())
	assert.False(t, (&Analysis{TraderReport: strPtr("")}).Completed())
	assert.True(t, (&Analysis{TraderReport: strPtr("done")}).Completed())
}

func TestPromptContext(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	rec := &Analysis{
		AssetPair:           "BTC/USD",
		TraderReport:        strPtr("trader says hold"),
		FinalDecision:       strPtr("HOLD"),
		PredictedPriceRange: strPtr("sideways"),
		CreatedAt:           created,
	}

	ctx := rec.PromptContext()
	assert.Contains(t, ctx, "BTC/USD")
	assert.Contains(t, ctx, "2026-03-14")
	assert.Contains(t, ctx, "Decision: HOLD")
	assert.Contains(t, ctx, "Predicted price range: sideways")
	assert.Contains(t, ctx, "trader says hold")
}

func TestPromptContext_NilReceiver(t *testing.T) {
	var rec *Analysis
	assert.Equal(t, "", rec.PromptContext())
}

func TestPromptContext_SkipsEmptyFields(t *testing.T) {
	rec := &Analysis{AssetPair: "ETH/USD", CreatedAt: time.Now()}

	ctx := rec.PromptContext()
	assert.Contains(t, ctx, "ETH/USD")
	assert.NotContains(t, ctx, "Decision:")
	assert.NotContains(t, ctx, "Trader report:")
}
