package service

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/knowledge"
	"Sceptre/backend/go/internal/models"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// defaultSourcesPerClaim caps how many sources one claim contributes to the
// final source list.
const defaultSourcesPerClaim = 3

// queryPrefixes are hedging phrases stripped from a claim before it is
// turned into a search query.
var queryPrefixes = []string{
	"according to", "studies show", "research indicates",
	"it is claimed that", "reports suggest", "allegedly",
}

// queryFillerWords never make a search query more selective.
var queryFillerWords = map[string]struct{}{
	"that": {}, "this": {}, "these": {}, "those": {},
	"they": {}, "them": {}, "their": {},
}

// maxQueryWords bounds the generated search query length.
const maxQueryWords = 8

// Searcher is the evidence pipeline the service verifies claims against.
type Searcher interface {
	Search(ctx context.Context, query string) models.SearchResult
}

// AuditPublisher receives a record of every completed verification.
type AuditPublisher interface {
	Publish(ctx context.Context, audit models.VerificationAudit) error
}

// Service orchestrates the full verification pipeline: claim extraction,
// per-claim evidence search and scoring, aggregation, and the session
// knowledge base feed.
type Service struct {
	log             *logger.Logger
	extractor       *ClaimExtractor
	verifier        *ClaimVerifier
	aggregator      *ScoreAggregator
	searcher        Searcher
	knowledge       *knowledge.Manager
	auditor         AuditPublisher
	sourcesPerClaim int
	searchTimeout   time.Duration
	oracleTimeout   time.Duration
}

// NewService wires the pipeline together. auditor may be nil, in which case
// no audit records are emitted.
func NewService(
	log *logger.Logger,
	cfg config.VerificationConfig,
	searchCfg config.SearchConfig,
	llmCfg config.LLMConfig,
	extractor *ClaimExtractor,
	verifier *ClaimVerifier,
	aggregator *ScoreAggregator,
	searcher Searcher,
	km *knowledge.Manager,
	auditor AuditPublisher,
) *Service {
	sourcesPerClaim := cfg.SourcesPerClaim
	if sourcesPerClaim <= 0 {
		sourcesPerClaim = defaultSourcesPerClaim
	}
	searchTimeout := time.Duration(searchCfg.QueryTimeoutSeconds) * time.Second
	if searchTimeout <= 0 {
		searchTimeout = 10 * time.Second
	}
	oracleTimeout := time.Duration(llmCfg.TimeoutSeconds) * time.Second
	if oracleTimeout <= 0 {
		oracleTimeout = 10 * time.Second
	}

	return &Service{
		log:             log,
		extractor:       extractor,
		verifier:        verifier,
		aggregator:      aggregator,
		searcher:        searcher,
		knowledge:       km,
		auditor:         auditor,
		sourcesPerClaim: sourcesPerClaim,
		searchTimeout:   searchTimeout,
		oracleTimeout:   oracleTimeout,
	}
}

// VerifyClaims runs the complete pipeline on one piece of content. It always
// returns a well-formed result: every internal failure has been converted
// into a degraded score upstream, and anything unexpected is caught here at
// the boundary and reported as a low-confidence result.
func (s *Service) VerifyClaims(ctx context.Context, sessionID, content string) (result models.VerificationResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithPayload(map[string]interface{}{
				"panic": fmt.Sprint(r),
			}).Error("verification aborted unexpectedly")
			result = models.VerificationResult{
				OverallScore: 0.3,
				Sources:      []models.ClaimSource{},
				Details:      fmt.Sprintf("Error during verification: %v", r),
				Timestamp:    time.Now(),
			}
		}
	}()

	extractCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	claims := s.extractor.Extract(extractCtx, content)
	cancel()

	outcomes := make([]ClaimOutcome, 0, len(claims))
	for _, claim := range claims {
		outcomes = append(outcomes, s.processClaim(ctx, sessionID, claim))
	}

	result = s.aggregator.Aggregate(outcomes)
	s.publishAudit(ctx, sessionID, len(claims), result)
	return result
}

// processClaim searches for evidence for one claim and scores it. Every
// failure path maps to a fixed degraded score; the claim is never dropped.
func (s *Service) processClaim(ctx context.Context, sessionID, claim string) ClaimOutcome {
	outcome := ClaimOutcome{Claim: claim}

	searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	found := s.searcher.Search(searchCtx, buildSearchQuery(claim))
	cancel()

	// Every search feeds the session knowledge base, verified or not.
	if len(found.Results) > 0 {
		s.knowledge.Base(sessionID).AddDocuments(found.Results)
	}

	switch found.Status {
	case models.SearchError:
		outcome.Score = DegradedScore(DegradeSearchEmpty)
		return outcome
	case models.SearchNoResults:
		if found.ProviderHits > 0 {
			// Hits existed but none survived the trust filter.
			outcome.Score = DegradedScore(DegradeNoTrustedEvidence)
		} else {
			outcome.Score = DegradedScore(DegradeSearchEmpty)
		}
		return outcome
	}

	oracleCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	outcome.Score = s.verifier.Score(oracleCtx, claim, found.Results)
	cancel()

	contributed := found.Results
	if len(contributed) > s.sourcesPerClaim {
		contributed = contributed[:s.sourcesPerClaim]
	}
	for _, doc := range contributed {
		outcome.Sources = append(outcome.Sources, models.ClaimSource{
			Title:          doc.Title,
			URL:            doc.URL,
			Snippet:        doc.Snippet,
			Claim:          claim,
			RelevanceScore: doc.RelevanceScore,
		})
	}

	return outcome
}

// SearchDocuments runs one evidence search outside of verification and
// feeds the results into the session knowledge base.
func (s *Service) SearchDocuments(ctx context.Context, sessionID, query string) models.SearchResult {
	searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	found := s.searcher.Search(searchCtx, query)
	if len(found.Results) > 0 {
		s.knowledge.Base(sessionID).AddDocuments(found.Results)
	}
	return found
}

// publishAudit emits a record of a completed verification. Audit delivery
// is best effort and never affects the verification outcome.
func (s *Service) publishAudit(ctx context.Context, sessionID string, claimCount int, result models.VerificationResult) {
	if s.auditor == nil {
		return
	}

	audit := models.VerificationAudit{
		TraceID:      uuid.New().String(),
		SessionID:    sessionID,
		Timestamp:    time.Now(),
		Status:       models.AuditCompleted,
		ClaimCount:   claimCount,
		SourceCount:  len(result.Sources),
		OverallScore: result.OverallScore,
		Verdict:      Credibility(result.OverallScore, len(result.Sources)),
	}
	if err := s.auditor.Publish(ctx, audit); err != nil {
		s.log.WithPayload(map[string]interface{}{
			"error": err.Error(),
		}).Warn("failed to publish verification audit")
	}
}

// buildSearchQuery reduces a claim to its key terms: hedging prefixes and
// filler words go, and the query is capped at a handful of words.
func buildSearchQuery(claim string) string {
	query := strings.ToLower(claim)
	for _, prefix := range queryPrefixes {
		query = strings.ReplaceAll(query, prefix, "")
	}

	words := strings.Fields(query)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 3 {
			continue
		}
		if _, filler := queryFillerWords[word]; filler {
			continue
		}
		kept = append(kept, word)
		if len(kept) == maxQueryWords {
			break
		}
	}

	return strings.Join(kept, " ")
}
