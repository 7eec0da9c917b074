// Package metrics defines and registers all custom Prometheus metrics for the
// DevCopilot assistant API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devcopilot"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksTotal counts assistant task invocations.
// Labels:
//   - kind: the task kind (e.g. "generate", "security-scan")
//   - outcome: "ok", "degraded" (unparseable provider reply) or "error"
var TasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_total",
		Help:      "Total number of assistant tasks, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// ProviderRequestDuration measures the latency of one outbound model call.
// Label:
//   - provider: "gemini" or "openai"
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of outbound model provider calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
	},
	[]string{"provider"},
)

// ProviderRetriesTotal counts retried provider calls.
// Label:
//   - provider: "gemini" or "openai"
var ProviderRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_retries_total",
		Help:      "Total number of retried model provider calls.",
	},
	[]string{"provider"},
)

// ── Realtime metrics ──────────────────────────────────────────────────────────

// RealtimeConnections tracks the number of currently open realtime connections.
var RealtimeConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections",
		Help:      "Number of currently open realtime WebSocket connections.",
	},
)

// RealtimeFramesTotal counts processed inbound realtime frames.
// Label:
//   - action: the requested action ("generate", "debug", "security", "invalid")
var RealtimeFramesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_frames_total",
		Help:      "Total number of inbound realtime frames, by action.",
	},
	[]string{"action"},
)

// ── History metrics ───────────────────────────────────────────────────────────

// HistoryQueueDepth tracks the number of records waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var HistoryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "history_queue_depth",
		Help:      "Current number of history records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// HistoryErrorsTotal counts history records that failed to persist.
var HistoryErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_errors_total",
		Help:      "Total number of history records that failed to persist.",
	},
)
