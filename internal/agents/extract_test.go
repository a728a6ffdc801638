package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hermes/internal/adapters/ai"
	"hermes/internal/domain/analysis"
)

func TestExtractDecision_MarkerWins(t *testing.T) {
	report := `The bull case suggests a buy on dips, but positioning is
stretched and the buy-side flow is fading.

FINAL RECOMMENDATION: SELL

Buy back lower if support holds.`

	assert.Equal(t, analysis.DecisionSell, ExtractDecision(report))
}

func TestExtractDecision_SubstringFallback(t *testing.T) {
	cases := []struct {
		name   string
		report string
		want   analysis.Decision
	}{
		{"plain buy", "We should BUY this dip.", analysis.DecisionBuy},
		{"plain sell", "Momentum is gone, time to sell.", analysis.DecisionSell},
		{"buy beats sell", "Sell-side pressure is fading; buy.", analysis.DecisionBuy},
		{"neither word", "Stay flat and wait for confirmation.", analysis.DecisionHold},
		{"empty report", "", analysis.DecisionHold},
		// The scan is blind to negation. This is long-standing behavior.
		{"negated buy still classifies buy", "Do not buy here.", analysis.DecisionBuy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractDecision(tc.report))
		})
	}
}

func TestExtractDecision_MarkerCaseSensitive(t *testing.T) {
	// The marker must be upper case; a lower-case variant falls through to
	// the substring scan.
	assert.Equal(t, analysis.DecisionBuy, ExtractDecision("final recommendation: hold, or maybe buy"))
}

func TestExtractPriceRange(t *testing.T) {
	report := "Outlook stable. The predicted price range for the asset for the next 7-14 days: $60,000 - $65,000. Revisit after CPI."
	assert.Equal(t, "$60,000 - $65,000", ExtractPriceRange(report))
}

func TestExtractPriceRange_CaseInsensitive(t *testing.T) {
	report := "PREDICTED PRICE RANGE FOR THE ASSET FOR THE NEXT 7-14 DAYS: ROUGHLY UNCHANGED. End."
	assert.Equal(t, "ROUGHLY UNCHANGED", ExtractPriceRange(report))
}

func TestExtractPriceRange_StopsAtFirstPeriod(t *testing.T) {
	// A decimal point inside the range terminates the capture. The pattern
	// matches up to the first period after the marker.
	report := "The predicted price range for the asset for the next 7-14 days: 1.05 to 1.12 EUR."
	assert.Equal(t, "1", ExtractPriceRange(report))
}

func TestExtractPriceRange_Absent(t *testing.T) {
	assert.Equal(t, "", ExtractPriceRange("No forecast offered."))
}

// The trader fallback report must satisfy both extraction markers itself, so
// a demo-mode or failed-trader run still yields a decision and a range. The
// marker sentence has to sit on a single line: the capture group stops at the
// first period and never crosses a newline.
func TestExtract_TraderFallbackSatisfiesMarkers(t *testing.T) {
	report := ai.DefaultFallback("trader", "BTC/USD")

	assert.Equal(t, analysis.DecisionHold, ExtractDecision(report))
	assert.Equal(t,
		"roughly unchanged, within one average true range of spot",
		ExtractPriceRange(report),
	)
}
