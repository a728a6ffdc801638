package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/config"
	"hermes/internal/domain/analysis"
	"hermes/pkg/errors"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=1 to run")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", cfg.Postgres.DSN())
	require.NoError(t, err, "Failed to connect to database")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func TestAnalysisRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	sessionID := uuid.NewString()
	require.NoError(t, repo.Create(ctx, sessionID, "BTC/USD"))

	rec, err := repo.GetBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, sessionID, rec.SessionID)
	assert.Equal(t, "BTC/USD", rec.AssetPair)
	assert.Nil(t, rec.TraderReport)
}

func TestAnalysisRepository_GetUnknownSession(t *testing.T) {
	db := testDB(t)
	repo := NewAnalysisRepository(db)

	_, err := repo.GetBySession(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSessionNotFound))
}

func TestAnalysisRepository_SaveReport(t *testing.T) {
	db := testDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	sessionID := uuid.NewString()
	require.NoError(t, repo.Create(ctx, sessionID, "ETH/USD"))

	require.NoError(t, repo.SaveReport(ctx, sessionID, "researcher", "report text"))

	rec, err := repo.GetBySession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, rec.ResearcherReport)
	assert.Equal(t, "report text", *rec.ResearcherReport)

	err = repo.SaveReport(ctx, sessionID, "astrologer", "x")
	require.Error(t, err, "unknown stage must not reach SQL")
}

func TestAnalysisRepository_SaveStateIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	sessionID := uuid.NewString()
	require.NoError(t, repo.Create(ctx, sessionID, "BTC/USD"))

	st := &analysis.State{
		AssetPair:           "BTC/USD",
		ResearcherReport:    "r",
		SentimentReport:     "s",
		NewsReport:          "n",
		MacroReport:         "m",
		BullReport:          "bu",
		BearReport:          "be",
		TraderReport:        "FINAL RECOMMENDATION: BUY",
		FinalDecision:       analysis.DecisionBuy,
		PredictedPriceRange: "up 5%",
	}

	require.NoError(t, repo.SaveState(ctx, sessionID, st))

	second := *st
	second.TraderReport = "FINAL RECOMMENDATION: SELL"
	second.FinalDecision = analysis.DecisionSell
	second.PredictedPriceRange = ""
	require.NoError(t, repo.SaveState(ctx, sessionID, &second), "second save overwrites, never merges")

	rec, err := repo.GetBySession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, rec.FinalDecision)
	assert.Equal(t, "SELL", *rec.FinalDecision)
	require.NotNil(t, rec.TraderReport)
	assert.Equal(t, "FINAL RECOMMENDATION: SELL", *rec.TraderReport)
	assert.Nil(t, rec.PredictedPriceRange, "empty range clears the column, no stale value survives")

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM analyses WHERE session_id = $1", sessionID))
	assert.Equal(t, 1, count)
}

func TestAnalysisRepository_LatestCompletedByAsset(t *testing.T) {
	db := testDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	// Unique pair per test run keeps lookups isolated.
	pair := "ZZZ/" + uuid.NewString()[:4]

	_, err := repo.LatestCompletedByAsset(ctx, pair)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	// An incomplete session never counts as memory.
	incomplete := uuid.NewString()
	require.NoError(t, repo.Create(ctx, incomplete, pair))

	_, err = repo.LatestCompletedByAsset(ctx, pair)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	completed := uuid.NewString()
	require.NoError(t, repo.Create(ctx, completed, pair))
	require.NoError(t, repo.SaveState(ctx, completed, &analysis.State{
		AssetPair:     pair,
		TraderReport:  "FINAL RECOMMENDATION: HOLD",
		FinalDecision: analysis.DecisionHold,
	}))

	rec, err := repo.LatestCompletedByAsset(ctx, pair)
	require.NoError(t, err)
	assert.Equal(t, completed, rec.SessionID)
}
