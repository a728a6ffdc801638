package analysis

import (
	"fmt"
	"strings"
	"time"
)

// Decision is the final trading recommendation extracted from the trader report.
type Decision string

const (
	DecisionBuy  Decision = "BUY"
	DecisionSell Decision = "SELL"
	DecisionHold Decision = "HOLD"
)

// Valid reports whether d is one of the known decision tokens.
func (d Decision) Valid() bool {
	return d == DecisionBuy || d == DecisionSell || d == DecisionHold
}

// Analysis is one persisted analysis session row.
type Analysis struct {
	ID                  int64     `db:"id" json:"id"`
	SessionID           string    `db:"session_id" json:"sessionId"`
	AssetPair           string    `db:"asset_pair" json:"assetPair"`
	ResearcherReport    *string   `db:"researcher_report" json:"researcherReport"`
	SentimentReport     *string   `db:"sentiment_report" json:"sentimentReport"`
	NewsReport          *string   `db:"news_report" json:"newsReport"`
	MacroReport         *string   `db:"macro_report" json:"macroReport"`
	BullReport          *string   `db:"bull_report" json:"bullReport"`
	BearReport          *string   `db:"bear_report" json:"bearReport"`
	TraderReport        *string   `db:"trader_report" json:"traderReport"`
	FinalDecision       *string   `db:"final_decision" json:"finalDecision"`
	PredictedPriceRange *string   `db:"predicted_price_range" json:"predictedPriceRange"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// Completed reports whether the session reached the trader stage.
func (a *Analysis) Completed() bool {
	return a != nil && a.TraderReport != nil && *a.TraderReport != ""
}

// PromptContext renders the record as plain text for embedding into prompts
// of a later session on the same asset pair.
func (a *Analysis) PromptContext() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Asset: %s (analyzed %s)\n", a.AssetPair, a.CreatedAt.Format("2006-01-02"))
	if a.FinalDecision != nil && *a.FinalDecision != "" {
		fmt.Fprintf(&sb, "Decision: %s\n", *a.FinalDecision)
	}
	if a.PredictedPriceRange != nil && *a.PredictedPriceRange != "" {
		fmt.Fprintf(&sb, "Predicted price range: %s\n", *a.PredictedPriceRange)
	}
	if a.TraderReport != nil && *a.TraderReport != "" {
		fmt.Fprintf(&sb, "Trader report:\n%s\n", *a.TraderReport)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// State is the per-run mutable record accumulating stage outputs.
// The engine owns the only mutable instance during a run; stages never
// write to it directly.
type State struct {
	AssetPair  string
	Historical *Analysis

	ResearcherReport string
	SentimentReport  string
	NewsReport       string
	MacroReport      string
	BullReport       string
	BearReport       string
	TraderReport     string

	FinalDecision       Decision
	PredictedPriceRange string
}
