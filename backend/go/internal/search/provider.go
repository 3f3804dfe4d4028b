package search

import (
	"Sceptre/backend/go/internal/models"
	"context"
)

// Provider abstracts a web search backend. Implementations return raw,
// unranked hits; trust filtering and relevance scoring happen downstream.
type Provider interface {
	// Search runs a query and returns up to count raw results.
	Search(ctx context.Context, query string, count int) ([]models.RawResult, error)
}
