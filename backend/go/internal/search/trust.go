package search

import (
	"Sceptre/backend/go/internal/models"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// trustedSuffixes are host suffixes that raise the relevance heuristic.
var trustedSuffixes = []string{".edu", ".gov", ".org", ".news"}

// penalizedHosts are domains whose hits are kept but scored down, because
// their content is user-generated and routinely disputed.
var penalizedHosts = []string{"wikipedia.org", "reddit.com"}

// trustedDomains is the allow-list of hosts and host suffixes whose evidence
// may contribute to a verification score.
var trustedDomains = []string{
	".gov", ".edu", ".org",
	"reuters.com", "apnews.com", "bbc.com", "npr.org",
	"factcheck.org", "snopes.com", "politifact.com",
	"who.int", "cdc.gov", "nih.gov", "nasa.gov",
}

// trustKeywords admit a source whose URL or title signals an institutional
// origin even when the domain is not on the allow-list.
var trustKeywords = []string{
	"university", "journal", "academic", "research",
	"government", "official", "institute",
}

// TrustFilter scores raw search hits for relevance and discards the ones
// that come from untrusted sources.
type TrustFilter struct {
	patterns []glob.Glob
}

// NewTrustFilter compiles the optional extra domain patterns and returns a
// filter. Patterns use glob syntax and match against the bare host, so
// "*.ac.uk" admits every UK academic domain.
func NewTrustFilter(patterns []string) (*TrustFilter, error) {
	filter := &TrustFilter{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted domain pattern %q: %w", p, err)
		}
		filter.patterns = append(filter.patterns, g)
	}
	return filter, nil
}

// Score computes the relevance heuristic for a single hit: a 0.5 baseline,
// +0.3 for a trusted host suffix or configured pattern, -0.2 for hosts with
// user-generated content, clamped to [0, 1].
func (f *TrustFilter) Score(rawURL string) float64 {
	host := hostOf(rawURL)
	score := 0.5

	boosted := false
	for _, suffix := range trustedSuffixes {
		if strings.HasSuffix(host, suffix) {
			boosted = true
			break
		}
	}
	if !boosted {
		for _, g := range f.patterns {
			if g.Match(host) {
				boosted = true
				break
			}
		}
	}
	if boosted {
		score += 0.3
	}

	for _, penalized := range penalizedHosts {
		if host == penalized || strings.HasSuffix(host, "."+penalized) {
			score -= 0.2
			break
		}
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Trusted reports whether a hit may contribute evidence. A hit passes when
// its host is on the domain allow-list (or matches a configured pattern), or
// when its URL or title contains an institutional keyword.
func (f *TrustFilter) Trusted(rawURL, title string) bool {
	host := hostOf(rawURL)

	for _, domain := range trustedDomains {
		if strings.HasPrefix(domain, ".") {
			if strings.HasSuffix(host, domain) {
				return true
			}
		} else if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	for _, g := range f.patterns {
		if g.Match(host) {
			return true
		}
	}

	haystack := strings.ToLower(rawURL + " " + title)
	for _, kw := range trustKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}

	return false
}

// Rank scores every hit, drops the untrusted ones, and returns the rest
// ordered by relevance, highest first.
func (f *TrustFilter) Rank(hits []models.RawResult) []models.RawResult {
	ranked := make([]models.RawResult, 0, len(hits))
	for _, hit := range hits {
		if !f.Trusted(hit.URL, hit.Title) {
			continue
		}
		hit.RelevanceScore = f.Score(hit.URL)
		ranked = append(ranked, hit)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	return ranked
}

// hostOf extracts the lowercase host from a URL, tolerating bare hosts
// without a scheme.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.SplitN(rawURL, "/", 2)[0])
	}
	return strings.ToLower(u.Hostname())
}
