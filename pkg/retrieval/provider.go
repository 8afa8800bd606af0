package retrieval

import (
	"context"

	"market-research-be/pkg/store"
)

// Provider defines the contract for any encyclopedia search backend.
// Results come back in the backend's own relevance order, which is
// passed through unmodified.
type Provider interface {
	// Search returns up to topK documents for the query. Fewer than
	// topK results is not an error; zero results yields an empty slice.
	Search(ctx context.Context, query string, topK int) ([]store.Document, error)
}
