package service

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/knowledge"
	"Sceptre/backend/go/internal/models"
	"context"
	"math"
	"testing"
	"time"
)

// scriptedSearcher returns pre-arranged results, one per Search call.
type scriptedSearcher struct {
	results []models.SearchResult
	queries []string
}

func (s *scriptedSearcher) Search(ctx context.Context, query string) models.SearchResult {
	s.queries = append(s.queries, query)
	if len(s.results) == 0 {
		return models.SearchResult{Status: models.SearchNoResults, Query: query}
	}
	result := s.results[0]
	s.results = s.results[1:]
	return result
}

func successResult(urls ...string) models.SearchResult {
	docs := make([]models.Document, 0, len(urls))
	for i, url := range urls {
		docs = append(docs, models.Document{
			Title:          url,
			URL:            url,
			RelevanceScore: 1 - float64(i)*0.1,
			CreatedAt:      time.Now(),
		})
	}
	return models.SearchResult{
		Status:       models.SearchSuccess,
		Results:      docs,
		ProviderHits: len(urls),
	}
}

func newTestService(oracle *fakeOracle, searcher Searcher, km *knowledge.Manager) *Service {
	log := testLogger()
	return NewService(
		log,
		config.VerificationConfig{MaxClaims: 5, EvidencePerClaim: 5, SourcesPerClaim: 3, MaxSources: 10},
		config.SearchConfig{QueryTimeoutSeconds: 5},
		config.LLMConfig{TimeoutSeconds: 5},
		NewClaimExtractor(log, oracle, 5),
		NewClaimVerifier(log, oracle, 5),
		NewScoreAggregator(10),
		searcher,
		km,
		nil,
	)
}

func newKM() *knowledge.Manager {
	return knowledge.NewManager(config.KnowledgeConfig{MaxDocuments: 100, MaxAgeHours: 24})
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		claim string
		want  string
	}{
		{
			"According to studies show the vaccine reduces transmission by 80 percent",
			"vaccine reduces transmission percent",
		},
		{"It is claimed that they won", ""},
	}

	for _, tt := range tests {
		if got := buildSearchQuery(tt.claim); got != tt.want {
			t.Errorf("buildSearchQuery(%q) = %q, want %q", tt.claim, got, tt.want)
		}
	}
}

func TestService_NoClaims(t *testing.T) {
	oracle := &fakeOracle{responses: []string{"NO_CLAIMS"}}
	searcher := &scriptedSearcher{}
	svc := newTestService(oracle, searcher, newKM())

	result := svc.VerifyClaims(context.Background(), "s1", "a pure opinion")

	if result.OverallScore != 0.5 {
		t.Errorf("OverallScore = %v, want 0.5", result.OverallScore)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Sources length = %d, want 0", len(result.Sources))
	}
	if len(searcher.queries) != 0 {
		t.Error("search ran even though no claims were extracted")
	}
}

func TestService_SearchErrorForEveryClaim(t *testing.T) {
	oracle := &fakeOracle{responses: []string{
		"1. The first checkable claim here\n2. The second checkable claim here",
	}}
	searcher := &scriptedSearcher{results: []models.SearchResult{
		{Status: models.SearchError},
		{Status: models.SearchError},
	}}
	svc := newTestService(oracle, searcher, newKM())

	result := svc.VerifyClaims(context.Background(), "s1", "content")

	if result.OverallScore != 0.3 {
		t.Errorf("OverallScore = %v, want 0.3", result.OverallScore)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Sources length = %d, want 0", len(result.Sources))
	}
	// Only the extraction call reached the oracle.
	if oracle.calls != 1 {
		t.Errorf("oracle called %d times, want 1", oracle.calls)
	}
}

func TestService_SingleVerifiedClaim(t *testing.T) {
	oracle := &fakeOracle{responses: []string{
		"1. The Eiffel Tower is 330 meters tall",
		"SCORE: 0.9 - Confirmed by the source",
	}}
	searcher := &scriptedSearcher{results: []models.SearchResult{
		successResult("https://www.toureiffel.paris/en"),
	}}
	km := newKM()
	svc := newTestService(oracle, searcher, km)

	result := svc.VerifyClaims(context.Background(), "s1", "content")

	if result.OverallScore != 0.9 {
		t.Errorf("OverallScore = %v, want 0.9", result.OverallScore)
	}
	if len(result.Sources) != 1 {
		t.Fatalf("Sources length = %d, want 1", len(result.Sources))
	}
	if result.Sources[0].Claim != "The Eiffel Tower is 330 meters tall" {
		t.Errorf("source claim tag = %q", result.Sources[0].Claim)
	}

	// The searched documents must land in the session knowledge base.
	if km.Base("s1").IsEmpty() {
		t.Error("knowledge base was not fed by verification")
	}
}

func TestService_MixedOutcomes(t *testing.T) {
	oracle := &fakeOracle{responses: []string{
		"1. First claim with enough length\n2. Second claim with enough length\n3. Third claim with enough length",
		"SCORE: 0.8 - Mostly supported",
		"SCORE: 0.6 - Partially supported",
	}}
	searcher := &scriptedSearcher{results: []models.SearchResult{
		// Hits existed but none were trusted: contributes 0.2.
		{Status: models.SearchNoResults, ProviderHits: 4},
		successResult("https://a.gov"),
		successResult("https://b.org"),
	}}
	svc := newTestService(oracle, searcher, newKM())

	result := svc.VerifyClaims(context.Background(), "s1", "content")

	want := (0.2 + 0.8 + 0.6) / 3
	if math.Abs(result.OverallScore-want) > 1e-9 {
		t.Errorf("OverallScore = %v, want %v", result.OverallScore, want)
	}
	if len(result.Sources) != 2 {
		t.Errorf("Sources length = %d, want 2", len(result.Sources))
	}
}

func TestService_EmptySearchVersusUntrusted(t *testing.T) {
	oracle := &fakeOracle{responses: []string{
		"1. First claim with enough length\n2. Second claim with enough length",
	}}
	searcher := &scriptedSearcher{results: []models.SearchResult{
		{Status: models.SearchNoResults, ProviderHits: 0}, // nothing found: 0.3
		{Status: models.SearchNoResults, ProviderHits: 3}, // untrusted only: 0.2
	}}
	svc := newTestService(oracle, searcher, newKM())

	result := svc.VerifyClaims(context.Background(), "s1", "content")

	want := (0.3 + 0.2) / 2
	if math.Abs(result.OverallScore-want) > 1e-9 {
		t.Errorf("OverallScore = %v, want %v", result.OverallScore, want)
	}
}

func TestService_UnfetchableEvidenceScoresAsSearchFailure(t *testing.T) {
	oracle := &fakeOracle{responses: []string{
		"1. A claim whose sources are all unreachable",
	}}
	// The searcher reports no_results without ProviderHits when trusted
	// hits existed but every page fetch failed. Being unable to read the
	// evidence is a failed search, not proof the claim lacks trustworthy
	// coverage.
	searcher := &scriptedSearcher{results: []models.SearchResult{
		{Status: models.SearchNoResults},
	}}
	svc := newTestService(oracle, searcher, newKM())

	result := svc.VerifyClaims(context.Background(), "s1", "content")

	if result.OverallScore != 0.3 {
		t.Errorf("OverallScore = %v, want 0.3", result.OverallScore)
	}
}

func TestService_SourcesPerClaimCap(t *testing.T) {
	oracle := &fakeOracle{responses: []string{
		"1. A single claim with enough length",
		"SCORE: 0.7 - Supported",
	}}
	searcher := &scriptedSearcher{results: []models.SearchResult{
		successResult("https://a.gov", "https://b.gov", "https://c.gov", "https://d.gov", "https://e.gov"),
	}}
	svc := newTestService(oracle, searcher, newKM())

	result := svc.VerifyClaims(context.Background(), "s1", "content")

	if len(result.Sources) != 3 {
		t.Errorf("Sources length = %d, want the per-claim cap of 3", len(result.Sources))
	}
}

func TestService_SearchDocumentsFeedsKnowledgeBase(t *testing.T) {
	searcher := &scriptedSearcher{results: []models.SearchResult{
		successResult("https://a.gov"),
	}}
	km := newKM()
	svc := newTestService(&fakeOracle{}, searcher, km)

	result := svc.SearchDocuments(context.Background(), "s1", "some topic")

	if result.Status != models.SearchSuccess {
		t.Errorf("Status = %s, want %s", result.Status, models.SearchSuccess)
	}
	if km.Base("s1").IsEmpty() {
		t.Error("knowledge base was not fed by the standalone search")
	}
}
