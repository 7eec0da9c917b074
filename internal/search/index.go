// Package search implements the in-process vector index behind semantic
// search. Snippets are embedded once on insert; queries are embedded and
// ranked by cosine similarity. The index is a nearest-neighbour lookup, not
// a generative call.
package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/devcopilot/assistant-api/internal/core/domain"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

const defaultLimit = 5

type entry struct {
	snippet domain.Snippet
	vector  []float32
}

// Index is an in-memory vector index over stored snippets.
type Index struct {
	embedder ports.Embedder
	log      zerolog.Logger

	mu      sync.RWMutex
	entries []entry
}

func NewIndex(embedder ports.Embedder, log zerolog.Logger) *Index {
	return &Index{embedder: embedder, log: log}
}

var _ ports.SnippetIndex = (*Index)(nil)

// Add embeds and indexes a snippet. The searchable text combines the
// description and the code, matching what queries are ranked against.
func (ix *Index) Add(ctx context.Context, snippet domain.Snippet) error {
	vec, err := ix.embedder.Embed(ctx, snippet.Prompt+"\n\n"+snippet.Code)
	if err != nil {
		return fmt.Errorf("embed snippet: %w", err)
	}

	ix.mu.Lock()
	ix.entries = append(ix.entries, entry{snippet: snippet, vector: vec})
	ix.mu.Unlock()
	return nil
}

// Warm bulk-loads previously stored snippets, typically at startup. Snippets
// that fail to embed are skipped, not fatal.
func (ix *Index) Warm(ctx context.Context, snippets []domain.Snippet) {
	for _, sn := range snippets {
		if err := ix.Add(ctx, sn); err != nil {
			ix.log.Warn().Err(err).Str("snippet_id", sn.ID).Msg("skipping snippet during index warm-up")
		}
	}
	ix.log.Info().Int("indexed", ix.Len()).Msg("search index warmed")
}

// Len returns the number of indexed snippets.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Search ranks indexed snippets against the query by cosine similarity.
// An empty index yields an empty slice, never an error.
func (ix *Index) Search(ctx context.Context, query, language string, limit int) ([]domain.SearchMatch, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	ix.mu.RLock()
	empty := len(ix.entries) == 0
	ix.mu.RUnlock()
	if empty {
		return []domain.SearchMatch{}, nil
	}

	qv, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	ix.mu.RLock()
	matches := make([]domain.SearchMatch, 0, len(ix.entries))
	for _, e := range ix.entries {
		if language != "" && e.snippet.Language != language {
			continue
		}
		matches = append(matches, domain.SearchMatch{
			Code:        e.snippet.Code,
			Description: e.snippet.Prompt,
			Language:    e.snippet.Language,
			Score:       cosine(qv, e.vector),
		})
	}
	ix.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// cosine returns the cosine similarity of two vectors, 0 on dimension
// mismatch or zero magnitude.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
