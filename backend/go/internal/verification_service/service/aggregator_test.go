package service

import (
	"Sceptre/backend/go/internal/models"
	"math"
	"testing"
)

func TestScoreAggregator_NoClaimsIsNeutral(t *testing.T) {
	aggregator := NewScoreAggregator(10)

	result := aggregator.Aggregate(nil)
	if result.OverallScore != 0.5 {
		t.Errorf("OverallScore = %v, want the fixed neutral 0.5", result.OverallScore)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Sources length = %d, want 0", len(result.Sources))
	}
	if result.Timestamp.IsZero() {
		t.Error("Timestamp was not set")
	}
}

func TestScoreAggregator_MeanOfClaimScores(t *testing.T) {
	aggregator := NewScoreAggregator(10)

	// One unverifiable claim and two scored ones.
	result := aggregator.Aggregate([]ClaimOutcome{
		{Claim: "c1", Score: 0.2},
		{Claim: "c2", Score: 0.8},
		{Claim: "c3", Score: 0.6},
	})

	want := (0.2 + 0.8 + 0.6) / 3
	if math.Abs(result.OverallScore-want) > 1e-9 {
		t.Errorf("OverallScore = %v, want %v", result.OverallScore, want)
	}
}

func TestScoreAggregator_SingleClaim(t *testing.T) {
	aggregator := NewScoreAggregator(10)

	result := aggregator.Aggregate([]ClaimOutcome{
		{
			Claim: "c1",
			Score: 0.9,
			Sources: []models.ClaimSource{
				{Title: "A", URL: "https://a.gov", Claim: "c1", RelevanceScore: 0.8},
			},
		},
	})

	if result.OverallScore != 0.9 {
		t.Errorf("OverallScore = %v, want 0.9", result.OverallScore)
	}
	if len(result.Sources) != 1 {
		t.Errorf("Sources length = %d, want 1", len(result.Sources))
	}
}

func TestScoreAggregator_DedupKeepsFirstSeen(t *testing.T) {
	aggregator := NewScoreAggregator(10)

	result := aggregator.Aggregate([]ClaimOutcome{
		{
			Claim: "c1",
			Score: 0.7,
			Sources: []models.ClaimSource{
				{Title: "First", URL: "https://shared.org", Claim: "c1", RelevanceScore: 0.5},
				{Title: "Unique", URL: "https://unique.gov", Claim: "c1", RelevanceScore: 0.9},
			},
		},
		{
			Claim: "c2",
			Score: 0.6,
			Sources: []models.ClaimSource{
				// Same URL with a higher score: first occurrence wins.
				{Title: "Second", URL: "https://shared.org", Claim: "c2", RelevanceScore: 0.8},
			},
		},
	})

	if len(result.Sources) != 2 {
		t.Fatalf("Sources length = %d, want 2", len(result.Sources))
	}

	var shared *models.ClaimSource
	for i := range result.Sources {
		if result.Sources[i].URL == "https://shared.org" {
			shared = &result.Sources[i]
		}
	}
	if shared == nil {
		t.Fatal("shared URL missing from sources")
	}
	if shared.Title != "First" || shared.RelevanceScore != 0.5 {
		t.Errorf("dedup kept %q (%v), want the first occurrence", shared.Title, shared.RelevanceScore)
	}

	// After dedup the set is re-sorted by relevance.
	if result.Sources[0].URL != "https://unique.gov" {
		t.Errorf("top source = %s, want the most relevant one", result.Sources[0].URL)
	}
}

func TestScoreAggregator_CapsSources(t *testing.T) {
	aggregator := NewScoreAggregator(10)

	outcome := ClaimOutcome{Claim: "c1", Score: 0.5}
	for i := 0; i < 15; i++ {
		outcome.Sources = append(outcome.Sources, models.ClaimSource{
			URL:            "https://example.org/" + string(rune('a'+i)),
			RelevanceScore: float64(i) / 15,
		})
	}

	result := aggregator.Aggregate([]ClaimOutcome{outcome})
	if len(result.Sources) != 10 {
		t.Errorf("Sources length = %d, want the cap of 10", len(result.Sources))
	}
}

func TestScoreAggregator_DetailString(t *testing.T) {
	aggregator := NewScoreAggregator(10)

	result := aggregator.Aggregate([]ClaimOutcome{
		{Claim: "c1", Score: 0.5, Sources: []models.ClaimSource{{URL: "https://a.org"}}},
		{Claim: "c2", Score: 0.5},
	})

	want := "Analyzed 2 claims against 1 trusted sources."
	if result.Details != want {
		t.Errorf("Details = %q, want %q", result.Details, want)
	}
}

func TestCredibility(t *testing.T) {
	tests := []struct {
		score   float64
		sources int
		want    string
	}{
		{0.9, 0, VerdictUnverifiable},
		{0.9, 2, VerdictLimitedVerification},
		{0.9, 5, VerdictLowRisk},
		{0.5, 5, VerdictModerateRisk},
		{0.2, 5, VerdictHighRisk},
	}

	for _, tt := range tests {
		if got := Credibility(tt.score, tt.sources); got != tt.want {
			t.Errorf("Credibility(%v, %d) = %s, want %s", tt.score, tt.sources, got, tt.want)
		}
	}
}
