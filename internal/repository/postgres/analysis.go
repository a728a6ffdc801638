package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"hermes/internal/domain/analysis"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// Compile-time check
var _ analysis.Repository = (*AnalysisRepository)(nil)

// reportColumns whitelists the stage name to column mapping used by SaveReport.
var reportColumns = map[string]string{
	"researcher": "researcher_report",
	"sentiment":  "sentiment_report",
	"news":       "news_report",
	"macro":      "macro_report",
	"bull":       "bull_report",
	"bear":       "bear_report",
	"trader":     "trader_report",
}

// AnalysisRepository implements analysis.Repository using PostgreSQL
type AnalysisRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewAnalysisRepository creates a new PostgreSQL analysis repository
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{
		db:  db,
		log: logger.Get().With("component", "analysis_repository"),
	}
}

// Create inserts a fresh session row
func (r *AnalysisRepository) Create(ctx context.Context, sessionID, assetPair string) error {
	query := `
		INSERT INTO analyses (session_id, asset_pair)
		VALUES ($1, $2)
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, assetPair); err != nil {
		return errors.Wrap(err, "failed to create analysis session")
	}

	return nil
}

// GetBySession retrieves the analysis row for a session identifier
func (r *AnalysisRepository) GetBySession(ctx context.Context, sessionID string) (*analysis.Analysis, error) {
	query := `
		SELECT id, session_id, asset_pair,
		       researcher_report, sentiment_report, news_report, macro_report,
		       bull_report, bear_report, trader_report,
		       final_decision, predicted_price_range,
		       created_at, updated_at
		FROM analyses
		WHERE session_id = $1
	`

	var a analysis.Analysis
	err := r.db.GetContext(ctx, &a, query, sessionID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get analysis session")
	}

	return &a, nil
}

// SaveReport writes a single stage report column and stamps updated_at
func (r *AnalysisRepository) SaveReport(ctx context.Context, sessionID, stage, report string) error {
	column, ok := reportColumns[stage]
	if !ok {
		return errors.Wrapf(errors.ErrUnknownStage, "stage %q", stage)
	}

	// Column name comes from the whitelist above, never from input.
	query := `
		UPDATE analyses
		SET ` + column + ` = $1, updated_at = CURRENT_TIMESTAMP
		WHERE session_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, report, sessionID)
	if err != nil {
		return errors.Wrapf(err, "failed to save %s report", stage)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrSessionNotFound
	}

	return nil
}

// SaveDecision writes the extracted decision and price range for a session
func (r *AnalysisRepository) SaveDecision(ctx context.Context, sessionID string, decision analysis.Decision, priceRange string) error {
	query := `
		UPDATE analyses
		SET final_decision = NULLIF($1, ''),
		    predicted_price_range = NULLIF($2, ''),
		    updated_at = CURRENT_TIMESTAMP
		WHERE session_id = $3
	`

	res, err := r.db.ExecContext(ctx, query, string(decision), priceRange, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to save decision")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrSessionNotFound
	}

	return nil
}

// SaveState persists the full run state, last write wins per field
func (r *AnalysisRepository) SaveState(ctx context.Context, sessionID string, st *analysis.State) error {
	query := `
		UPDATE analyses
		SET researcher_report = $1,
		    sentiment_report = $2,
		    news_report = $3,
		    macro_report = $4,
		    bull_report = $5,
		    bear_report = $6,
		    trader_report = $7,
		    final_decision = NULLIF($8, ''),
		    predicted_price_range = NULLIF($9, ''),
		    updated_at = CURRENT_TIMESTAMP
		WHERE session_id = $10
	`

	res, err := r.db.ExecContext(ctx, query,
		st.ResearcherReport,
		st.SentimentReport,
		st.NewsReport,
		st.MacroReport,
		st.BullReport,
		st.BearReport,
		st.TraderReport,
		string(st.FinalDecision),
		st.PredictedPriceRange,
		sessionID,
	)
	if err != nil {
		return errors.Wrap(errors.ErrPersistFailed, err.Error())
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrSessionNotFound
	}

	r.log.Debugf("Persisted analysis state for session %s", sessionID)
	return nil
}

// LatestCompletedByAsset returns the newest completed session for the exact asset pair
func (r *AnalysisRepository) LatestCompletedByAsset(ctx context.Context, assetPair string) (*analysis.Analysis, error) {
	query := `
		SELECT id, session_id, asset_pair,
		       researcher_report, sentiment_report, news_report, macro_report,
		       bull_report, bear_report, trader_report,
		       final_decision, predicted_price_range,
		       created_at, updated_at
		FROM analyses
		WHERE asset_pair = $1
		  AND trader_report IS NOT NULL
		  AND trader_report != ''
		ORDER BY created_at DESC
		LIMIT 1
	`

	var a analysis.Analysis
	err := r.db.GetContext(ctx, &a, query, assetPair)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up prior analysis")
	}

	return &a, nil
}
