package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/devcopilot/assistant-api/internal/api/metrics"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes history records to a fixed set of workers using
// consistent hashing on the user id, so per-user history is persisted in
// arrival order while task handlers never block on storage.
type Dispatcher struct {
	workers []chan ports.HistoryRecord
	service ports.HistoryService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.HistoryService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.HistoryRecord, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.HistoryRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its user. When the
// worker channel is full the record is dropped rather than stalling the
// request path; history is best-effort.
func (d *Dispatcher) Enqueue(rec ports.HistoryRecord) {
	i := d.shardIndex(rec.UserID)
	select {
	case d.workers[i] <- rec:
		metrics.HistoryQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		metrics.HistoryErrorsTotal.Inc()
		d.log.Warn().Str("user_id", rec.UserID).Int("worker_id", i).Msg("history queue full, record dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.HistoryRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			metrics.HistoryQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Record(ctx, rec); err != nil {
				metrics.HistoryErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("user_id", rec.UserID).
					Int("worker_id", id).
					Msg("history record failed")
			}
		}
	}
}
