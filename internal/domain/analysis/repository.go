package analysis

import "context"

// Repository is the persistence boundary for analysis sessions.
type Repository interface {
	// Create inserts a fresh session row holding only identity fields.
	Create(ctx context.Context, sessionID, assetPair string) error

	// GetBySession returns the row for sessionID or errors.ErrSessionNotFound.
	GetBySession(ctx context.Context, sessionID string) (*Analysis, error)

	// SaveReport writes a single stage report column and stamps updated_at.
	SaveReport(ctx context.Context, sessionID, stage, report string) error

	// SaveDecision writes the extracted decision and price range for a
	// session. An empty priceRange clears the column.
	SaveDecision(ctx context.Context, sessionID string, decision Decision, priceRange string) error

	// SaveState persists every report field plus the extracted decision and
	// price range under sessionID, overwriting prior values (last write wins).
	SaveState(ctx context.Context, sessionID string, st *State) error

	// LatestCompletedByAsset returns the most recently created session for the
	// exact assetPair string that has a non-empty trader report, or
	// errors.ErrNotFound when no such session exists.
	LatestCompletedByAsset(ctx context.Context, assetPair string) (*Analysis, error)
}
