package search

import (
	"Sceptre/backend/go/internal/models"
	"testing"
)

func newFilter(t *testing.T, patterns ...string) *TrustFilter {
	t.Helper()
	filter, err := NewTrustFilter(patterns)
	if err != nil {
		t.Fatalf("NewTrustFilter() error = %v", err)
	}
	return filter
}

func TestTrustFilter_Score(t *testing.T) {
	filter := newFilter(t)

	tests := []struct {
		url  string
		want float64
	}{
		{"https://news.mit.edu/article", 0.8},        // .edu boost
		{"https://www.cdc.gov/flu", 0.8},             // .gov boost
		{"https://example.com/post", 0.5},            // baseline
		{"https://en.wikipedia.org/wiki/Mars", 0.6},  // .org boost minus wiki penalty
		{"https://www.reddit.com/r/science", 0.3},    // aggregator penalty
	}

	for _, tt := range tests {
		if got := filter.Score(tt.url); got != tt.want {
			t.Errorf("Score(%s) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestTrustFilter_ScoreHonorsExtraPatterns(t *testing.T) {
	filter := newFilter(t, "*.ac.uk")

	if got := filter.Score("https://www.cam.ac.uk/research"); got != 0.8 {
		t.Errorf("Score(cam.ac.uk) = %v, want 0.8", got)
	}
}

func TestTrustFilter_InvalidPattern(t *testing.T) {
	if _, err := NewTrustFilter([]string{"[invalid"}); err == nil {
		t.Fatal("expected an error for a malformed pattern")
	}
}

func TestTrustFilter_Trusted(t *testing.T) {
	filter := newFilter(t)

	tests := []struct {
		url   string
		title string
		want  bool
	}{
		{"https://www.reuters.com/world", "Report", true},          // allow-listed outlet
		{"https://www.cdc.gov/vaccines", "Guidance", true},         // .gov suffix
		{"https://randomblog.com/post", "My hot take", false},      // nothing trusted
		{"https://randomblog.com/post", "University study", true},  // keyword in title
		{"https://research.example.com/x", "Findings", true},       // keyword in url
	}

	for _, tt := range tests {
		if got := filter.Trusted(tt.url, tt.title); got != tt.want {
			t.Errorf("Trusted(%s, %q) = %v, want %v", tt.url, tt.title, got, tt.want)
		}
	}
}

func TestTrustFilter_RankDropsAndSorts(t *testing.T) {
	filter := newFilter(t)

	hits := []models.RawResult{
		{Title: "Wire report", URL: "https://www.reuters.com/article"},
		{Title: "Agency guidance", URL: "https://www.cdc.gov/page"},
		{Title: "Blog post", URL: "https://randomblog.com/post"},
		{Title: "Encyclopedia entry", URL: "https://en.wikipedia.org/wiki/Mars"},
	}

	ranked := filter.Rank(hits)

	if len(ranked) != 3 {
		t.Fatalf("Rank() kept %d results, want 3", len(ranked))
	}
	// cdc.gov 0.8, wikipedia.org 0.6, reuters.com 0.5.
	wantOrder := []string{
		"https://www.cdc.gov/page",
		"https://en.wikipedia.org/wiki/Mars",
		"https://www.reuters.com/article",
	}
	for i, want := range wantOrder {
		if ranked[i].URL != want {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].URL, want)
		}
	}
	for _, hit := range ranked {
		if hit.URL == "https://randomblog.com/post" {
			t.Error("untrusted hit survived ranking")
		}
		if hit.RelevanceScore < 0 || hit.RelevanceScore > 1 {
			t.Errorf("relevance score %v out of range", hit.RelevanceScore)
		}
	}
}
