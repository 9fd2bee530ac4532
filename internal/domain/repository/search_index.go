package repository

import "context"

// SearchIndex is a full-text index over one document type. Search returns ids
// in relevance order.
type SearchIndex interface {
	Index(ctx context.Context, id string, doc any) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}
