package search

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"hermes/internal/adapters/config"
	"hermes/internal/metrics"
	"hermes/pkg/logger"
)

const (
	searchURL = "https://www.google.com/search"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Lookup returns short text snippets for a query. It never fails the caller:
// any transport or parse error yields an empty slice.
type Lookup interface {
	Search(ctx context.Context, query string) []string
}

// Cache is an optional snippet cache (Redis-backed in production).
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// Compile-time check
var _ Lookup = (*Service)(nil)

// Service scrapes search result snippets for research-stage prompts.
type Service struct {
	client     *resty.Client
	cache      Cache
	maxResults int
	log        *logger.Logger
}

// NewService creates a snippet lookup service. cache may be nil.
func NewService(cfg config.SearchConfig, cache Cache) *Service {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("User-Agent", userAgent)

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	return &Service{
		client:     client,
		cache:      cache,
		maxResults: maxResults,
		log:        logger.Get().With("component", "snippet_lookup"),
	}
}

// Search fetches up to maxResults snippets for the query.
func (s *Service) Search(ctx context.Context, query string) []string {
	cacheKey := "search:" + query

	if s.cache != nil {
		var cached []string
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
			metrics.SearchLookups.WithLabelValues("cache_hit").Inc()
			return cached
		}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", query+" crypto forex trading news").
		Get(searchURL)
	if err != nil {
		s.log.Warnf("Snippet lookup failed for %q: %v", query, err)
		metrics.SearchLookups.WithLabelValues("empty").Inc()
		return nil
	}

	snippets := parseSnippets(resp.String(), s.maxResults)
	if len(snippets) == 0 {
		metrics.SearchLookups.WithLabelValues("empty").Inc()
		return nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, snippets); err != nil {
			s.log.Debugf("Snippet cache write failed for %q: %v", query, err)
		}
	}

	metrics.SearchLookups.WithLabelValues("success").Inc()
	return snippets
}

// parseSnippets extracts result snippet text from a search result page.
func parseSnippets(html string, limit int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var snippets []string
	doc.Find(".g .VwiC3b").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			snippets = append(snippets, text)
		}
		return len(snippets) < limit
	})

	return snippets
}

// BuildQuery renders the role-specific search query for an asset pair.
func BuildQuery(stage, assetPair string) string {
	switch stage {
	case "researcher":
		return assetPair + " technical analysis price chart"
	case "sentiment":
		return assetPair + " sentiment analysis social media"
	case "news":
		return assetPair + " latest news today"
	case "macro":
		return assetPair + " macroeconomic factors interest rates"
	default:
		return assetPair
	}
}
