// Package metrics defines all custom Prometheus metrics for the exam-board
// portal API. It is the single source of truth for metric names, labels, and
// help strings; metrics are registered with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts.
// Labels:
//   - flow: "user" or "admin" (which login endpoint was hit)
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// TokenVerificationsTotal counts bearer token verifications.
// Label:
//   - result: "ok", "expired", "signature_invalid", or "malformed"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by outcome.",
	},
	[]string{"result"},
)

// GuardRejectionsTotal counts requests short-circuited by the edge guard.
// Labels:
//   - surface: "page" or "api"
//   - reason: "missing", "expired", "signature_invalid", or "malformed"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the edge router guard.",
	},
	[]string{"surface", "reason"},
)

// UploadsTotal counts attachment uploads to blob storage.
// Label:
//   - result: "ok" or "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of attachment uploads, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks events pending in each audit dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// channel was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to full worker channels.",
	},
)
