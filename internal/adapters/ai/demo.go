package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Demo mode lets the pipeline run end to end without a real provider. It is
// triggered by well-known test keys and reuses the fallback report strategy.

const demoTestKey = "sk-test123456789"

// IsDemoKey reports whether the supplied API key selects demo mode.
func IsDemoKey(apiKey string) bool {
	return apiKey == demoTestKey || strings.HasPrefix(apiKey, "demo-")
}

var assetPairPattern = regexp.MustCompile(`([A-Z]{3,4}/[A-Z]{3,4})`)

// ExtractAssetPair pulls the first asset-pair token out of a prompt so demo
// reports can reference it. Defaults to BTC/USD.
func ExtractAssetPair(prompt string) string {
	if m := assetPairPattern.FindString(prompt); m != "" {
		return m
	}
	return "BTC/USD"
}

// Compile-time check
var _ Provider = (*DemoProvider)(nil)

// DemoProvider returns canned role reports without calling any backend.
type DemoProvider struct {
	fallback FallbackFunc
}

// NewDemoProvider creates a provider backed by the given fallback strategy.
func NewDemoProvider(fallback FallbackFunc) *DemoProvider {
	if fallback == nil {
		fallback = DefaultFallback
	}
	return &DemoProvider{fallback: fallback}
}

// Name returns the provider identifier
func (p *DemoProvider) Name() ProviderName { return ProviderNameDemo }

// Complete renders a canned report for the role inferred from the system prompt
func (p *DemoProvider) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.fallback(roleFromSystemPrompt(systemPrompt), ExtractAssetPair(userPrompt)), nil
}

// roleFromSystemPrompt maps a system instruction back to its role via its
// persona phrase. The composite personas (trader, bull, bear) mention other
// roles' keywords, so they must be matched on their own distinctive phrases.
func roleFromSystemPrompt(systemPrompt string) string {
	switch {
	case strings.Contains(systemPrompt, "hedge fund trader"):
		return "trader"
	case strings.Contains(systemPrompt, "bullish trading analyst"):
		return "bull"
	case strings.Contains(systemPrompt, "bearish trading analyst"):
		return "bear"
	case strings.Contains(systemPrompt, "financial researcher"):
		return "researcher"
	case strings.Contains(systemPrompt, "sentiment analysis expert"):
		return "sentiment"
	case strings.Contains(systemPrompt, "financial news analyst"):
		return "news"
	case strings.Contains(systemPrompt, "macroeconomic analyst"):
		return "macro"
	default:
		return ""
	}
}

// DefaultFallback is the placeholder report strategy substituted when a
// provider call fails, and the content source for demo mode.
func DefaultFallback(role, assetPair string) string {
	switch role {
	case "researcher":
		return fmt.Sprintf(`# Technical Analysis Report for %s

Price action shows bullish momentum with higher highs and higher lows.
Key support near recent swing lows, resistance at the prior range high.
RSI in the mid-60s, MACD bullish crossover confirmed, price above the
20, 50, and 200 period moving averages. Above-average volume on recent
breakouts suggests accumulation.

Risk: medium, owing to market volatility. A stop below support is advised.

(Placeholder analysis: live provider response was unavailable.)`, assetPair)

	case "sentiment":
		return fmt.Sprintf(`# Sentiment Analysis for %s

Overall sentiment: BULLISH (7/10). Social media discussion is
predominantly positive, news tone constructive, and the Fear & Greed
index sits in greed territory. Retail engagement is elevated, which
historically precedes increased volatility.

(Placeholder analysis: live provider response was unavailable.)`, assetPair)

	case "news":
		return fmt.Sprintf(`# Latest News Analysis for %s

Recent headlines skew positive: institutional adoption announcements,
clearer regulatory guidance, and continued network development. Watch
items include global economic uncertainty and pending stablecoin
regulation discussions. Short-term impact assessment: supportive.

(Placeholder analysis: live provider response was unavailable.)`, assetPair)

	case "macro":
		return fmt.Sprintf(`# Macroeconomic Analysis for %s

Monetary policy is steady with rates on hold; inflation is trending
down while real yields remain low, favoring alternative assets.
Correlation with tech equities remains elevated; dollar strength is the
main headwind. Upcoming FOMC and CPI releases may add volatility.

(Placeholder analysis: live provider response was unavailable.)`, assetPair)

	case "bull":
		return fmt.Sprintf(`# BULL CASE for %s

Technical breakout above key resistance with volume confirmation,
favorable positioning across major moving averages, growing
institutional adoption, and a supportive macro backdrop of low real
yields. Risk/reward is favorable with a defined invalidation level
below support.

(Placeholder analysis: live provider response was unavailable.)`, assetPair)

	case "bear":
		return fmt.Sprintf(`# BEAR CASE for %s

Multiple timeframes approach overbought readings, volume is declining
on rallies, and sentiment at greed extremes often precedes corrections.
Regulatory risk and potential dollar strength add downside pressure.
Risk/reward is unfavorable at current levels.

(Placeholder analysis: live provider response was unavailable.)`, assetPair)

	case "trader":
		return fmt.Sprintf(`# HEDGE FUND TRADING DECISION for %s

FINAL RECOMMENDATION: HOLD

The research, sentiment, news, and macro teams lean constructive while
the bear case flags stretched positioning; on balance the edge is
insufficient for a new position at current levels.
The predicted price range for the asset for the next 7-14 days: roughly unchanged, within one average true range of spot.
Re-evaluate on a confirmed breakout or a pullback to support.

(Placeholder analysis: live provider response was unavailable.)`, assetPair)

	default:
		return fmt.Sprintf("Analysis for %s is unavailable: the provider call failed and no role-specific placeholder exists.", assetPair)
	}
}
