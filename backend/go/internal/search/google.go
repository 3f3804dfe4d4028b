package search

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/models"
	httpclient "Sceptre/backend/go/pkg/http"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const googleSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleProvider implements Provider using the Google Custom Search JSON API.
type GoogleProvider struct {
	client   *httpclient.Client
	apiKey   string
	engineID string
}

// NewGoogleProvider creates a provider backed by the Custom Search API.
func NewGoogleProvider(cfg config.GoogleSearchConfig, client *httpclient.Client) (*GoogleProvider, error) {
	if cfg.APIKey == "" || cfg.EngineID == "" {
		return nil, fmt.Errorf("google search requires both api_key and engine_id")
	}
	return &GoogleProvider{
		client:   client,
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
	}, nil
}

// googleSearchResponse mirrors the subset of the Custom Search JSON payload
// that the pipeline consumes.
type googleSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search runs a query against the Custom Search API and returns the raw hits.
func (p *GoogleProvider) Search(ctx context.Context, query string, count int) ([]models.RawResult, error) {
	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("cx", p.engineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", count))

	req, err := http.NewRequestWithContext(ctx, "GET", googleSearchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var payload googleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]models.RawResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, models.RawResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}

	return results, nil
}
