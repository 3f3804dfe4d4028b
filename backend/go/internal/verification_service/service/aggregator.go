package service

import (
	"Sceptre/backend/go/internal/models"
	"fmt"
	"sort"
	"time"
)

// defaultMaxSources caps the deduplicated source list in the final result.
const defaultMaxSources = 10

// Credibility verdict labels derived from the aggregate score and the
// amount of supporting evidence.
const (
	VerdictUnverifiable        = "UNVERIFIABLE"
	VerdictLimitedVerification = "LIMITED_VERIFICATION"
	VerdictLowRisk             = "LOW_RISK"
	VerdictModerateRisk        = "MODERATE_RISK"
	VerdictHighRisk            = "HIGH_RISK"
)

// ClaimOutcome carries one claim through aggregation: its score and the
// sources that contributed to it, already capped per claim.
type ClaimOutcome struct {
	Claim   string
	Score   float64
	Sources []models.ClaimSource
}

// ScoreAggregator folds per-claim outcomes into a single verification
// result. It never fails: degraded claims arrive pre-scored per the
// fallback policy and simply pull the mean down.
type ScoreAggregator struct {
	maxSources int
}

// NewScoreAggregator creates an aggregator with the given source cap.
func NewScoreAggregator(maxSources int) *ScoreAggregator {
	if maxSources <= 0 {
		maxSources = defaultMaxSources
	}
	return &ScoreAggregator{maxSources: maxSources}
}

// Aggregate computes the mean of the per-claim scores and assembles the
// deduplicated source list. With no claims at all the result is a fixed
// neutral 0.5, which is distinct from the low mean produced when claims
// exist but none could be verified.
func (a *ScoreAggregator) Aggregate(outcomes []ClaimOutcome) models.VerificationResult {
	if len(outcomes) == 0 {
		return models.VerificationResult{
			OverallScore: 0.5,
			Sources:      []models.ClaimSource{},
			Details:      "No verifiable claims found in content.",
			Timestamp:    time.Now(),
		}
	}

	var sum float64
	var all []models.ClaimSource
	for _, outcome := range outcomes {
		sum += outcome.Score
		all = append(all, outcome.Sources...)
	}

	unique := dedupeSources(all)
	capped := unique
	if len(capped) > a.maxSources {
		capped = capped[:a.maxSources]
	}
	if capped == nil {
		capped = []models.ClaimSource{}
	}

	return models.VerificationResult{
		OverallScore: clampScore(sum / float64(len(outcomes))),
		Sources:      capped,
		Details:      fmt.Sprintf("Analyzed %d claims against %d trusted sources.", len(outcomes), len(unique)),
		Timestamp:    time.Now(),
	}
}

// dedupeSources removes duplicate URLs, keeping the first occurrence in
// claim-processing order, then re-sorts the survivors by relevance.
func dedupeSources(sources []models.ClaimSource) []models.ClaimSource {
	seen := make(map[string]struct{}, len(sources))
	unique := make([]models.ClaimSource, 0, len(sources))
	for _, src := range sources {
		if _, dup := seen[src.URL]; dup {
			continue
		}
		seen[src.URL] = struct{}{}
		unique = append(unique, src)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].RelevanceScore > unique[j].RelevanceScore
	})

	return unique
}

// Credibility maps a verification score and its evidence volume to a
// verdict label. Evidence volume dominates: without sources no score is
// trustworthy enough to band on.
func Credibility(score float64, sourceCount int) string {
	if sourceCount == 0 {
		return VerdictUnverifiable
	}
	if sourceCount < 3 {
		return VerdictLimitedVerification
	}

	switch {
	case score >= 0.7:
		return VerdictLowRisk
	case score >= 0.4:
		return VerdictModerateRisk
	default:
		return VerdictHighRisk
	}
}
