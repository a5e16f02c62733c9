// Package metrics defines and registers all custom Prometheus metrics
// for the campus chat API. It is the single source of truth for metric
// names, labels, and help strings; metrics self-register with the
// default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campuschat"

// ── Platform client metrics ───────────────────────────────────────────────────

// PlatformRequestDuration measures each round trip to the remote chat
// platform. Labels:
//   - operation: client operation name (e.g. "create_channel")
//   - outcome: "ok" or "error"
var PlatformRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "platform_request_duration_seconds",
		Help:      "Duration of requests to the remote chat platform.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChannelsCreatedTotal counts created channels by resolved type.
var ChannelsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "channels_created_total",
		Help:      "Total number of channels created, by channel type.",
	},
	[]string{"channel_type"},
)

// MessagesSentTotal counts messages relayed to the platform. Label:
//   - transport: "rest" or "ws"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages relayed to the platform, by transport.",
	},
	[]string{"transport"},
)

// ── Live gateway metrics ──────────────────────────────────────────────────────

// WSConnectionsActive tracks currently registered live connections.
var WSConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Number of currently connected WebSocket clients.",
	},
)

// BroadcastQueueDepth tracks pending broadcasts per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var BroadcastQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "broadcast_queue_depth",
		Help:      "Current number of broadcasts pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
