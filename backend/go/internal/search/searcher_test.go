package search

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/models"
	httpclient "Sceptre/backend/go/pkg/http"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestSearcher(t *testing.T, provider Provider) *EvidenceSearcher {
	t.Helper()

	cfg := config.SearchConfig{
		ResultCount:         5,
		FetchTimeoutSeconds: 5,
		CacheTTLSeconds:     3600,
		CacheCapacity:       100,
	}

	cache, err := NewEvidenceCache(cfg, provider)
	if err != nil {
		t.Fatalf("NewEvidenceCache() error = %v", err)
	}
	filter, err := NewTrustFilter(nil)
	if err != nil {
		t.Fatalf("NewTrustFilter() error = %v", err)
	}
	client, err := httpclient.NewClient(config.CircuitBreakerConfig{}, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	return NewEvidenceSearcher(logger.New("test", "", ""), cfg, cache, filter, NewContentFetcher(client))
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Moon is made of CHEESE!", "moon made cheese"},
		{"  vaccines cause autism?  ", "vaccines cause autism"},
		{"a an the of", ""},
	}

	for _, tt := range tests {
		if got := normalizeQuery(tt.in); got != tt.want {
			t.Errorf("normalizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEvidenceSearcher_ProviderError(t *testing.T) {
	searcher := newTestSearcher(t, &countingProvider{err: errors.New("network down")})

	result := searcher.Search(context.Background(), "some claim")
	if result.Status != models.SearchError {
		t.Errorf("Status = %s, want %s", result.Status, models.SearchError)
	}
	if len(result.Results) != 0 {
		t.Errorf("Results length = %d, want 0", len(result.Results))
	}
}

func TestEvidenceSearcher_NoProviderHits(t *testing.T) {
	searcher := newTestSearcher(t, &countingProvider{})

	result := searcher.Search(context.Background(), "obscure claim")
	if result.Status != models.SearchNoResults {
		t.Errorf("Status = %s, want %s", result.Status, models.SearchNoResults)
	}
	if result.ProviderHits != 0 {
		t.Errorf("ProviderHits = %d, want 0", result.ProviderHits)
	}
}

func TestEvidenceSearcher_AllHitsUntrusted(t *testing.T) {
	provider := &countingProvider{hits: []models.RawResult{
		{Title: "Hot take", URL: "https://randomblog.com/post"},
	}}
	searcher := newTestSearcher(t, provider)

	result := searcher.Search(context.Background(), "claim")
	if result.Status != models.SearchNoResults {
		t.Errorf("Status = %s, want %s", result.Status, models.SearchNoResults)
	}
	if result.ProviderHits != 1 {
		t.Errorf("ProviderHits = %d, want 1", result.ProviderHits)
	}
}

func TestEvidenceSearcher_AllFetchesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := &countingProvider{hits: []models.RawResult{
		{Title: "University finding", Snippet: "s1", URL: server.URL + "/a"},
		{Title: "University retraction", Snippet: "s2", URL: server.URL + "/b"},
	}}
	searcher := newTestSearcher(t, provider)

	result := searcher.Search(context.Background(), "claim about research")
	if result.Status != models.SearchNoResults {
		t.Errorf("Status = %s, want %s", result.Status, models.SearchNoResults)
	}
	// Trusted hits existed but none could be fetched; that must not be
	// reported the same way as hits rejected by the trust filter.
	if result.ProviderHits != 0 {
		t.Errorf("ProviderHits = %d, want 0", result.ProviderHits)
	}
}

func TestEvidenceSearcher_BuildsDocumentsAndDropsFailedFetches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good":
			w.Write([]byte("<html><body><p>Paragraph one.</p><script>ignored()</script><p>Paragraph two.</p></body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	// Titles carry a trust keyword so the local test server passes the
	// allow-list check.
	provider := &countingProvider{hits: []models.RawResult{
		{Title: "University finding", Snippet: "s1", URL: server.URL + "/good"},
		{Title: "University retraction", Snippet: "s2", URL: server.URL + "/missing"},
	}}
	searcher := newTestSearcher(t, provider)

	result := searcher.Search(context.Background(), "claim about research")
	if result.Status != models.SearchSuccess {
		t.Fatalf("Status = %s, want %s", result.Status, models.SearchSuccess)
	}
	if len(result.Results) != 1 {
		t.Fatalf("Results length = %d, want 1 (the 404 hit must be dropped)", len(result.Results))
	}

	doc := result.Results[0]
	if doc.Title != "University finding" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Content != "Paragraph one. Paragraph two." {
		t.Errorf("Content = %q, want the extracted paragraph text", doc.Content)
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}
