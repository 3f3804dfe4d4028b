package service

import (
	"Sceptre/backend/go/internal/llm"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"fmt"
	"regexp"
	"strings"
)

// noClaimsSentinel is the marker the oracle emits when the content holds
// nothing verifiable.
const noClaimsSentinel = "NO_CLAIMS"

// defaultMaxClaims caps how many extracted claims one verification will
// process when no limit is configured.
const defaultMaxClaims = 5

// minClaimLength discards fragments too short to be a verifiable statement.
const minClaimLength = 10

var (
	numberingPattern = regexp.MustCompile(`^\d+\.?\s*`)
	bulletPattern    = regexp.MustCompile(`^[-*•]\s*`)
)

const extractPrompt = `Analyze the following content and extract specific, factual claims that can be verified.
Focus on:
1. Statements of fact (statistics, dates, events)
2. Claims about people, organizations, or entities
3. Assertions about scientific, medical, or technical information
4. Any controversial or disputed statements

Return ONLY the claims, one per line, without explanations or commentary.
If no verifiable claims are found, return "NO_CLAIMS".

Content to analyze:
%s`

// ClaimExtractor asks the reasoning oracle to pull verifiable claims out of
// free text.
type ClaimExtractor struct {
	log       *logger.Logger
	oracle    llm.LLM
	maxClaims int
}

// NewClaimExtractor creates an extractor backed by the given oracle.
func NewClaimExtractor(log *logger.Logger, oracle llm.LLM, maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = defaultMaxClaims
	}
	return &ClaimExtractor{log: log, oracle: oracle, maxClaims: maxClaims}
}

// Extract returns up to five cleaned claims in the order the oracle produced
// them. An oracle failure or an empty response yields an empty list, never an
// error: verification degrades instead of failing.
func (e *ClaimExtractor) Extract(ctx context.Context, content string) []string {
	text, err := llm.Complete(ctx, e.oracle, fmt.Sprintf(extractPrompt, content))
	if err != nil {
		e.log.WithPayload(map[string]interface{}{
			"error": err.Error(),
		}).Error("claim extraction call failed")
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" || text == noClaimsSentinel {
		return nil
	}

	var claims []string
	for _, line := range strings.Split(text, "\n") {
		cleaned := strings.TrimSpace(line)
		cleaned = numberingPattern.ReplaceAllString(cleaned, "")
		cleaned = bulletPattern.ReplaceAllString(cleaned, "")
		if len(cleaned) <= minClaimLength {
			continue
		}
		claims = append(claims, cleaned)
		if len(claims) == e.maxClaims {
			break
		}
	}

	return claims
}
