package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/domain/analysis"
	"hermes/pkg/errors"
)

func TestRunState_SetReportWriteOnce(t *testing.T) {
	rs := newRunState(&analysis.State{AssetPair: "BTC/USD"})

	require.NoError(t, rs.setReport(StageResearcher, "first"))

	err := rs.setReport(StageResearcher, "second")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrReportExists))

	assert.Equal(t, "first", rs.snapshot().ResearcherReport)
}

func TestRunState_ReadyTracksDependencies(t *testing.T) {
	rs := newRunState(&analysis.State{})

	assert.True(t, rs.ready(StageResearcher), "research stages have no predecessors")
	assert.False(t, rs.ready(StageBull))
	assert.False(t, rs.ready(StageTrader))

	for _, stage := range ResearchStages {
		require.NoError(t, rs.setReport(stage, "r"))
	}

	assert.True(t, rs.ready(StageBull))
	assert.True(t, rs.ready(StageBear))
	assert.False(t, rs.ready(StageTrader), "trader needs both opinion reports")

	require.NoError(t, rs.setReport(StageBull, "b"))
	assert.False(t, rs.ready(StageTrader))
	require.NoError(t, rs.setReport(StageBear, "b"))
	assert.True(t, rs.ready(StageTrader))
}

func TestRunState_SnapshotIsolation(t *testing.T) {
	rs := newRunState(&analysis.State{AssetPair: "BTC/USD"})
	require.NoError(t, rs.setReport(StageResearcher, "before"))

	snap := rs.snapshot()
	require.NoError(t, rs.setReport(StageSentiment, "after"))

	assert.Equal(t, "before", snap.ResearcherReport)
	assert.Empty(t, snap.SentimentReport, "later writes must not leak into an earlier snapshot")
}

func TestRunState_SetDecision(t *testing.T) {
	rs := newRunState(&analysis.State{})
	rs.setDecision(analysis.DecisionSell, "lower band")

	snap := rs.snapshot()
	assert.Equal(t, analysis.DecisionSell, snap.FinalDecision)
	assert.Equal(t, "lower band", snap.PredictedPriceRange)
}
