package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/domain/analysis"
)

func TestPrompts_SystemPerStage(t *testing.T) {
	p := NewPrompts(nil)

	for _, stage := range AllStages {
		system, err := p.System(stage)
		require.NoError(t, err, "stage %s", stage)
		assert.NotEmpty(t, system)
	}
}

func TestPrompts_ResearchJoinsSnippets(t *testing.T) {
	p := NewPrompts(nil)

	prompt, err := p.Research(StageResearcher, "BTC/USD", []string{"price broke out", "volume rising"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "BTC/USD")
	assert.Contains(t, prompt, "price broke out. volume rising")
}

func TestPrompts_ResearchRejectsNonResearchStage(t *testing.T) {
	p := NewPrompts(nil)

	_, err := p.Research(StageBull, "BTC/USD", nil)
	require.Error(t, err)
}

func TestPrompts_OpinionSubstitutesPlaceholders(t *testing.T) {
	p := NewPrompts(nil)

	prompt, err := p.Opinion(StageBull, &analysis.State{
		AssetPair:        "BTC/USD",
		ResearcherReport: "research text",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "bullish case")
	assert.Contains(t, prompt, "research text")
	assert.Contains(t, prompt, NotAvailable)
	assert.NotContains(t, prompt, "HISTORICAL ANALYSIS")
}

func TestPrompts_TraderEmbedsEverything(t *testing.T) {
	p := NewPrompts(nil)

	st := &analysis.State{
		AssetPair:        "ETH/USD",
		ResearcherReport: "r1",
		SentimentReport:  "r2",
		NewsReport:       "r3",
		MacroReport:      "r4",
		BullReport:       "r5",
		BearReport:       "r6",
	}

	prompt, err := p.Trader(st)
	require.NoError(t, err)

	for _, report := range []string{"r1", "r2", "r3", "r4", "r5", "r6"} {
		assert.Contains(t, prompt, report)
	}
	assert.Contains(t, prompt, "ETH/USD")
}
