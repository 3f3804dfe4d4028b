package service

import (
	"regexp"
	"strconv"
	"strings"
)

// Degradation names the failure classes a claim can hit on its way through
// the pipeline. Each class maps to a fixed fallback score; the mapping is
// kept as data so the policy is visible in one place.
type Degradation string

const (
	// DegradeNoTrustedEvidence: the provider returned hits but none survived
	// the trust filter.
	DegradeNoTrustedEvidence Degradation = "no_trusted_evidence"
	// DegradeSearchEmpty: the search found nothing at all, or failed.
	DegradeSearchEmpty Degradation = "search_empty"
	// DegradeVerifierError: the oracle call for this claim failed.
	DegradeVerifierError Degradation = "verifier_error"
	// DegradeUnparsableScore: the oracle answered but no score could be read.
	DegradeUnparsableScore Degradation = "unparsable_score"
)

// degradedScores is the per-claim fallback policy. An unverifiable claim
// scores lower than a failed search: absence of trusted evidence is a
// stronger negative signal than not being able to look.
var degradedScores = map[Degradation]float64{
	DegradeNoTrustedEvidence: 0.2,
	DegradeSearchEmpty:       0.3,
	DegradeVerifierError:     0.3,
	DegradeUnparsableScore:   0.5,
}

// DegradedScore returns the fallback score for a failure class.
func DegradedScore(d Degradation) float64 {
	return degradedScores[d]
}

// scoreMarker is the fixed prefix the oracle is instructed to put before
// its numeric rating.
const scoreMarker = "SCORE:"

// scorePattern matches the first numeric token after the marker, sign
// included, so out-of-range answers can still be read and clamped.
var scorePattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// parseScore extracts the numeric rating from the oracle's free-text answer.
// It returns false when the marker is missing or no number follows it.
func parseScore(text string) (float64, bool) {
	_, after, found := strings.Cut(text, scoreMarker)
	if !found {
		return 0, false
	}

	token := scorePattern.FindString(after)
	if token == "" {
		return 0, false
	}

	score, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}

	return clampScore(score), true
}

// clampScore bounds a score to [0, 1].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
