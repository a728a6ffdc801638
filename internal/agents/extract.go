package agents

import (
	"regexp"
	"strings"

	"hermes/internal/domain/analysis"
)

// Extraction over free-form model text is inherently heuristic. Both patterns
// below are kept as an isolated, swappable strategy so a stricter parser (or
// structured model output) can replace them without touching the engine.

var (
	decisionPattern = regexp.MustCompile(`FINAL RECOMMENDATION: (BUY|SELL|HOLD)`)

	// Captures up to the next sentence terminator after the marker phrase.
	priceRangePattern = regexp.MustCompile(`(?i)predicted price range for the asset for the next 7-14 days: *(.*?)\.`)
)

// ExtractDecision pulls the trading decision out of a trader report. The
// explicit marker wins; otherwise a case-insensitive substring scan checks
// "buy" before "sell", defaulting to HOLD.
//
// Known limitation: the fallback scan cannot see negation, so a report that
// merely says "do not buy" still classifies as BUY. This mirrors long-standing
// behavior that downstream consumers rely on; do not tighten it silently.
func ExtractDecision(report string) analysis.Decision {
	if m := decisionPattern.FindStringSubmatch(report); m != nil {
		return analysis.Decision(m[1])
	}

	lower := strings.ToLower(report)
	if strings.Contains(lower, "buy") {
		return analysis.DecisionBuy
	}
	if strings.Contains(lower, "sell") {
		return analysis.DecisionSell
	}

	return analysis.DecisionHold
}

// ExtractPriceRange pulls the predicted 7-14 day price range out of a trader
// report, or returns "" when the marker phrase is absent.
func ExtractPriceRange(report string) string {
	if m := priceRangePattern.FindStringSubmatch(report); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
