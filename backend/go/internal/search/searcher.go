package search

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/models"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"sort"
	"strings"
	"time"
	"unicode"
)

// stopwords are dropped during query normalization; they add noise to the
// provider query without narrowing the evidence.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "of": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "and": {}, "or": {}, "that": {}, "this": {}, "it": {}, "with": {},
	"as": {}, "by": {}, "from": {}, "has": {}, "have": {}, "had": {},
}

// EvidenceSearcher turns a query into a ranked set of trusted documents with
// fetched body content. It composes the cache-fronted provider, the trust
// filter, and the content fetcher.
type EvidenceSearcher struct {
	log         *logger.Logger
	cache       *EvidenceCache
	filter      *TrustFilter
	fetcher     *ContentFetcher
	resultCount int
	fetchWait   time.Duration
}

// NewEvidenceSearcher wires the search pipeline together.
func NewEvidenceSearcher(log *logger.Logger, cfg config.SearchConfig, cache *EvidenceCache, filter *TrustFilter, fetcher *ContentFetcher) *EvidenceSearcher {
	return &EvidenceSearcher{
		log:         log,
		cache:       cache,
		filter:      filter,
		fetcher:     fetcher,
		resultCount: cfg.ResultCount,
		fetchWait:   time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
	}
}

// Search runs the full evidence pipeline for one query. A provider-level
// failure yields status "error"; zero trusted hits yields "no_results";
// individual fetch failures only drop the affected source.
func (s *EvidenceSearcher) Search(ctx context.Context, query string) models.SearchResult {
	normalized := normalizeQuery(query)

	hits, err := s.cache.GetOrFetch(ctx, normalized, s.resultCount)
	if err != nil {
		s.log.WithPayload(map[string]interface{}{
			"query": normalized,
			"error": err.Error(),
		}).Error("evidence search failed")
		return models.SearchResult{Status: models.SearchError, Query: normalized}
	}

	ranked := s.filter.Rank(hits)
	if len(ranked) == 0 {
		return models.SearchResult{Status: models.SearchNoResults, Query: normalized, ProviderHits: len(hits)}
	}

	docs := s.fetchAll(ctx, ranked)
	if len(docs) == 0 {
		// Trusted hits existed but no page could be fetched. ProviderHits
		// stays zero: this is a failed search, not untrustworthy evidence.
		return models.SearchResult{Status: models.SearchNoResults, Query: normalized}
	}

	return models.SearchResult{
		Status:       models.SearchSuccess,
		Query:        normalized,
		Results:      docs,
		ProviderHits: len(hits),
	}
}

// fetchAll downloads the body of every ranked hit concurrently. Hits whose
// fetch or validation fails are dropped; the survivors keep the relevance
// ordering produced by the trust filter.
func (s *EvidenceSearcher) fetchAll(ctx context.Context, hits []models.RawResult) []models.Document {
	type fetched struct {
		index int
		doc   models.Document
		ok    bool
	}

	results := make(chan fetched, len(hits))
	for i, hit := range hits {
		go func(index int, hit models.RawResult) {
			fetchCtx, cancel := context.WithTimeout(ctx, s.fetchWait)
			defer cancel()

			content, err := s.fetcher.Fetch(fetchCtx, hit.URL)
			if err != nil {
				s.log.WithPayload(map[string]interface{}{
					"url":   hit.URL,
					"error": err.Error(),
				}).Warn("dropping source, fetch failed")
				results <- fetched{index: index}
				return
			}

			doc, err := models.NewDocument(hit.Title, hit.Snippet, hit.URL, content, hit.RelevanceScore)
			if err != nil {
				results <- fetched{index: index}
				return
			}
			results <- fetched{index: index, doc: doc, ok: true}
		}(i, hit)
	}

	collected := make([]fetched, 0, len(hits))
	for range hits {
		if f := <-results; f.ok {
			collected = append(collected, f)
		}
	}

	// Restore the trust filter's ordering, which the concurrent joins lost.
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	docs := make([]models.Document, 0, len(collected))
	for _, f := range collected {
		docs = append(docs, f.doc)
	}
	return docs
}

// normalizeQuery lowercases the query, strips punctuation, and removes
// stopwords so that near-identical claims share a cache key.
func normalizeQuery(query string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(query) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	words := strings.Fields(sb.String())
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
