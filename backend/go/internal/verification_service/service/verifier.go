package service

import (
	"Sceptre/backend/go/internal/llm"
	"Sceptre/backend/go/internal/models"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// defaultEvidencePerClaim bounds how many sources feed one oracle prompt.
const defaultEvidencePerClaim = 5

// evidenceContentLimit truncates each source's body in the digest so the
// prompt stays within a predictable size.
const evidenceContentLimit = 500

const verifyPrompt = `Evaluate the following claim against the provided evidence from trusted sources.

Claim to verify: %q

Evidence from trusted sources:
%s

Based on the evidence, rate the claim's accuracy on a scale of 0.0 to 1.0 where:
- 1.0 = Completely true and well-supported by evidence
- 0.8 = Mostly true with minor inaccuracies
- 0.6 = Partially true but missing context or oversimplified
- 0.4 = Mixed evidence, some truth but significant issues
- 0.2 = Mostly false or misleading
- 0.0 = Completely false or no supporting evidence

Respond with ONLY a number between 0.0 and 1.0, followed by a brief explanation.
Format: "SCORE: X.X - Brief explanation"`

// ClaimVerifier scores a single claim against its evidence bundle by asking
// the reasoning oracle for a numeric rating.
type ClaimVerifier struct {
	log              *logger.Logger
	oracle           llm.LLM
	evidencePerClaim int
}

// NewClaimVerifier creates a verifier backed by the given oracle.
func NewClaimVerifier(log *logger.Logger, oracle llm.LLM, evidencePerClaim int) *ClaimVerifier {
	if evidencePerClaim <= 0 {
		evidencePerClaim = defaultEvidencePerClaim
	}
	return &ClaimVerifier{log: log, oracle: oracle, evidencePerClaim: evidencePerClaim}
}

// Score rates one claim against its trusted evidence. An oracle-call failure
// and an unparsable answer are different failure classes with different
// fallback scores, so callers and tests can tell them apart.
func (v *ClaimVerifier) Score(ctx context.Context, claim string, evidence []models.Document) float64 {
	text, err := llm.Complete(ctx, v.oracle, fmt.Sprintf(verifyPrompt, claim, v.evidenceDigest(evidence)))
	if err != nil {
		v.log.WithPayload(map[string]interface{}{
			"claim": claim,
			"error": err.Error(),
		}).Error("claim verification call failed")
		return DegradedScore(DegradeVerifierError)
	}

	score, ok := parseScore(text)
	if !ok {
		v.log.WithPayload(map[string]interface{}{
			"claim": claim,
		}).Warn("oracle answer carried no parsable score")
		return DegradedScore(DegradeUnparsableScore)
	}

	return score
}

// evidenceDigest renders the top sources as a compact prompt section, one
// block per source with a truncated body.
func (v *ClaimVerifier) evidenceDigest(evidence []models.Document) string {
	if len(evidence) > v.evidencePerClaim {
		evidence = evidence[:v.evidencePerClaim]
	}

	blocks := make([]string, 0, len(evidence))
	for _, doc := range evidence {
		content := doc.Content
		if len(content) > evidenceContentLimit {
			content = truncateAtRune(content, evidenceContentLimit) + "..."
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\nContent: %s", doc.Title, content))
	}

	return strings.Join(blocks, "\n\n")
}

// truncateAtRune cuts s to at most limit bytes without splitting a UTF-8
// sequence.
func truncateAtRune(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
