// Package metrics defines the custom Prometheus metrics of the task manager
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Collectors are plain values so that every registry built by NewRegistry
// (one per router, so tests can build several) exposes the same series.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "taskmanager"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksWrittenTotal counts task mutations.
// Labels:
//   - op: "create", "update" or "delete"
//   - result: "ok", "not_found" or "error"
var TasksWrittenTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_written_total",
		Help:      "Total number of task mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts registration attempts.
// Label:
//   - result: "ok", "exists" or "error"
var UsersRegisteredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "not_registered", "wrong_password" or "error"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListCacheTotal counts list cache lookups.
// Labels:
//   - scope: "tasks" or "users"
//   - result: "hit", "miss" or "error"
var ListCacheTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_total",
		Help:      "Total number of list cache lookups, by scope and result.",
	},
	[]string{"scope", "result"},
)

// ListQueryDuration measures how long a listing takes against the store.
// Label:
//   - scope: "tasks" or "users"
var ListQueryDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "list_query_duration_seconds",
		Help:      "Duration of paginated list queries against the database.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"scope"},
)

// All returns every custom collector.
func All() []prometheus.Collector {
	return []prometheus.Collector{
		TasksWrittenTotal,
		UsersRegisteredTotal,
		LoginsTotal,
		ListCacheTotal,
		ListQueryDuration,
	}
}

// NewRegistry returns a registry holding the Go runtime, process and custom
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(All()...)
	return reg
}
