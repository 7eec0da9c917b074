package ports

import (
	"context"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

// SnippetRepository persists generated code snippets.
type SnippetRepository interface {
	Insert(ctx context.Context, snippet *domain.Snippet) (string, error)
	All(ctx context.Context) ([]domain.Snippet, error)
}

// DebugSessionRepository persists debug invocations.
type DebugSessionRepository interface {
	Insert(ctx context.Context, session *domain.DebugSession) (string, error)
}

// ScanRepository persists completed security scans.
type ScanRepository interface {
	Insert(ctx context.Context, record *domain.SecurityScanRecord) (string, error)
}

// PreferenceRepository persists per-user assistant defaults.
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*domain.Preferences, error)
	Upsert(ctx context.Context, prefs *domain.Preferences) error
}

// HistoryRecord is the DTO passed from the transport layer to the history
// dispatcher. Exactly one of Snippet, Debug or Scan is set.
type HistoryRecord struct {
	UserID  string
	Snippet *domain.Snippet
	Debug   *domain.DebugSession
	Scan    *domain.SecurityScanRecord
}

// HistoryService persists completed task records and feeds the search index.
type HistoryService interface {
	Record(ctx context.Context, rec HistoryRecord) error
}
