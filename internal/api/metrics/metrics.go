// Package metrics defines and registers the custom Prometheus metrics of the
// business API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics are registered with the default Prometheus registry at package
// init via promauto. HTTP request metrics come from echoprometheus and are
// wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "business_api"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing", "malformed", "expired" or "invalid"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by bearer token authentication.",
	},
	[]string{"reason"},
)

// ── Routing metrics ───────────────────────────────────────────────────────────

// RouteMountsTotal counts resource module mount attempts at startup.
// Label:
//   - result: "mounted" or "failed"
var RouteMountsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_mounts_total",
		Help:      "Total number of resource module mount attempts, by result.",
	},
	[]string{"result"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceOperationsTotal counts successful CRUD operations.
// Labels:
//   - resource: resource name (e.g. "tenders", "dolg_table")
//   - op: "list", "get", "create", "update" or "delete"
var ResourceOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_operations_total",
		Help:      "Total number of successful resource operations.",
	},
	[]string{"resource", "op"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
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

// AuditEventsDroppedTotal counts audit events discarded because their shard was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker queue.",
	},
)

// AuditWriteDuration measures how long persisting one audit event takes.
// Label:
//   - result: "ok" or "error"
var AuditWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit event persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
