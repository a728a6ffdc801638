package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const resultPage = `
<html><body>
<div class="g"><div class="VwiC3b">BTC breaks above resistance on strong volume</div></div>
<div class="g"><div class="VwiC3b">  Analysts split on near-term direction  </div></div>
<div class="g"><div class="VwiC3b"></div></div>
<div class="g"><div class="VwiC3b">ETF inflows continue for a third week</div></div>
</body></html>`

func TestParseSnippets(t *testing.T) {
	snippets := parseSnippets(resultPage, 5)

	assert.Equal(t, []string{
		"BTC breaks above resistance on strong volume",
		"Analysts split on near-term direction",
		"ETF inflows continue for a third week",
	}, snippets)
}

func TestParseSnippets_RespectsLimit(t *testing.T) {
	snippets := parseSnippets(resultPage, 2)
	assert.Len(t, snippets, 2)
}

func TestParseSnippets_EmptyPage(t *testing.T) {
	assert.Empty(t, parseSnippets("<html><body>nothing here</body></html>", 5))
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "BTC/USD technical analysis price chart", BuildQuery("researcher", "BTC/USD"))
	assert.Equal(t, "BTC/USD sentiment analysis social media", BuildQuery("sentiment", "BTC/USD"))
	assert.Equal(t, "BTC/USD latest news today", BuildQuery("news", "BTC/USD"))
	assert.Equal(t, "BTC/USD macroeconomic factors interest rates", BuildQuery("macro", "BTC/USD"))
	assert.Equal(t, "BTC/USD", BuildQuery("trader", "BTC/USD"))
}
