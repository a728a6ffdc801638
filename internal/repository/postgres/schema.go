package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hermes/pkg/errors"
)

const analysesSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id SERIAL PRIMARY KEY,
	session_id VARCHAR(255) UNIQUE NOT NULL,
	asset_pair VARCHAR(50) NOT NULL,
	researcher_report TEXT,
	sentiment_report TEXT,
	news_report TEXT,
	macro_report TEXT,
	bull_report TEXT,
	bear_report TEXT,
	trader_report TEXT,
	final_decision VARCHAR(10),
	predicted_price_range TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analyses_asset_pair_created
	ON analyses (asset_pair, created_at DESC);
`

// EnsureSchema creates the analyses table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, analysesSchema); err != nil {
		return errors.Wrap(err, "failed to ensure analyses schema")
	}
	return nil
}
