package ports

import (
	"context"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

// Embedder turns text into a vector. The embedding capability is an external
// collaborator; implementations may cache.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SnippetIndex is the nearest-neighbour lookup behind semantic search.
// Search never fails on an empty index; it returns an empty slice.
type SnippetIndex interface {
	Add(ctx context.Context, snippet domain.Snippet) error
	Search(ctx context.Context, query, language string, limit int) ([]domain.SearchMatch, error)
}
