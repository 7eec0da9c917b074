package service

import (
	"context"
	"fmt"
	"time"

	"github.com/devcopilot/assistant-api/internal/core/ports"
)

// HistoryService persists completed task records for authenticated users and
// feeds freshly generated snippets into the search index. It runs behind the
// dispatcher, off the request path.
type HistoryService struct {
	snippets ports.SnippetRepository
	debug    ports.DebugSessionRepository
	scans    ports.ScanRepository
	index    ports.SnippetIndex
}

func NewHistoryService(
	snippets ports.SnippetRepository,
	debug ports.DebugSessionRepository,
	scans ports.ScanRepository,
	index ports.SnippetIndex,
) *HistoryService {
	return &HistoryService{snippets: snippets, debug: debug, scans: scans, index: index}
}

func (s *HistoryService) Record(ctx context.Context, rec ports.HistoryRecord) error {
	switch {
	case rec.Snippet != nil:
		rec.Snippet.UserID = rec.UserID
		if rec.Snippet.CreatedAt.IsZero() {
			rec.Snippet.CreatedAt = time.Now().UTC()
		}
		id, err := s.snippets.Insert(ctx, rec.Snippet)
		if err != nil {
			return fmt.Errorf("insert snippet: %w", err)
		}
		rec.Snippet.ID = id
		if err := s.index.Add(ctx, *rec.Snippet); err != nil {
			return fmt.Errorf("index snippet: %w", err)
		}
		return nil

	case rec.Debug != nil:
		rec.Debug.UserID = rec.UserID
		if rec.Debug.CreatedAt.IsZero() {
			rec.Debug.CreatedAt = time.Now().UTC()
		}
		if _, err := s.debug.Insert(ctx, rec.Debug); err != nil {
			return fmt.Errorf("insert debug session: %w", err)
		}
		return nil

	case rec.Scan != nil:
		rec.Scan.UserID = rec.UserID
		if rec.Scan.CreatedAt.IsZero() {
			rec.Scan.CreatedAt = time.Now().UTC()
		}
		if _, err := s.scans.Insert(ctx, rec.Scan); err != nil {
			return fmt.Errorf("insert scan record: %w", err)
		}
		return nil
	}

	return fmt.Errorf("history record carries no payload")
}
