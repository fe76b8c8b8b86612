package retrieval

import (
	"context"

	"robot/models"
)

// EmptySearcher is the capability used when no knowledge base is configured.
// Every search finds nothing, so retrieval degrades to the NoContext sentinel.
type EmptySearcher struct{}

// Search returns no documents.
func (EmptySearcher) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.Document, error) {
	return nil, nil
}
