package search

import (
	httpclient "Sceptre/backend/go/pkg/http"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const fetcherUserAgent = "Mozilla/5.0 (compatible; SceptreBot/1.0)"

// maxContentBytes caps how much of a page body the extractor will read.
const maxContentBytes = 1 << 20

// ContentFetcher downloads a page and reduces it to the paragraph text the
// verifier can reason over.
type ContentFetcher struct {
	client *httpclient.Client
}

// NewContentFetcher creates a fetcher that performs all downloads through
// the given client, inheriting its timeout and circuit breaker.
func NewContentFetcher(client *httpclient.Client) *ContentFetcher {
	return &ContentFetcher{client: client}
}

// Fetch downloads url and returns its paragraph text. A non-2xx status is
// reported as an error so the caller can drop the source rather than feed
// an error page to the verifier.
func (f *ContentFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fetcherUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	return extractParagraphText(io.LimitReader(resp.Body, maxContentBytes))
}

// extractParagraphText parses an HTML document and collects the text inside
// paragraph tags, which carry the article body on most news and reference
// sites. Script and style content is skipped.
func extractParagraphText(body io.Reader) (string, error) {
	z := html.NewTokenizer(body)
	var sb strings.Builder
	var inParagraph, inScript, inStyle bool

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return strings.TrimSpace(sb.String()), nil
			}
			return "", z.Err()
		case html.StartTagToken, html.EndTagToken:
			tn, _ := z.TagName()
			switch string(tn) {
			case "p":
				inParagraph = (tt == html.StartTagToken)
			case "script":
				inScript = (tt == html.StartTagToken)
			case "style":
				inStyle = (tt == html.StartTagToken)
			}
		case html.TextToken:
			if inParagraph && !inScript && !inStyle {
				text := strings.TrimSpace(string(z.Text()))
				if len(text) > 0 {
					sb.WriteString(text)
					sb.WriteString(" ")
				}
			}
		}
	}
}
