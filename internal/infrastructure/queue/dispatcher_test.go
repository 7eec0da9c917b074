package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcopilot/assistant-api/internal/core/domain"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

type stubHistoryService struct {
	records chan ports.HistoryRecord
}

func (s *stubHistoryService) Record(ctx context.Context, rec ports.HistoryRecord) error {
	s.records <- rec
	return nil
}

func TestDispatcher_DeliversRecords(t *testing.T) {
	stub := &stubHistoryService{records: make(chan ports.HistoryRecord, 8)}
	d := NewDispatcher(2, stub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.HistoryRecord{
		UserID:  "user-1",
		Snippet: &domain.Snippet{Prompt: "p", Code: "c"},
	})

	select {
	case rec := <-stub.records:
		if rec.UserID != "user-1" || rec.Snippet == nil {
			t.Fatalf("unexpected record: %+v", rec)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("record was not processed")
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &stubHistoryService{records: make(chan ports.HistoryRecord, 1)}, zerolog.Nop())

	first := d.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("user-42"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	// No workers started: channels fill up and further records are dropped
	// without blocking the caller.
	stub := &stubHistoryService{records: make(chan ports.HistoryRecord, 1)}
	d := NewDispatcher(1, stub, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(ports.HistoryRecord{UserID: "u", Snippet: &domain.Snippet{}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &stubHistoryService{records: make(chan ports.HistoryRecord, 1)}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
