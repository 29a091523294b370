// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - action: "register", "login" or "logout"
//   - result: "ok", "conflict", "invalid_credentials", "invalid" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// PostMutationsTotal counts post writes.
// Labels:
//   - op: "create", "update" or "delete"
//   - result: "ok", "forbidden", "unauthenticated", "conflict", "not_found", "invalid" or "error"
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of post create/update/delete calls, by outcome.",
	},
	[]string{"op", "result"},
)

// CommentsTotal counts comment submissions.
// Label:
//   - result: same values as PostMutationsTotal
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment submissions, by outcome.",
	},
	[]string{"result"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsDroppedTotal counts blog events discarded because a dispatcher
// worker queue was full.
// Label:
//   - type: the event type (e.g. "post.created")
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of blog events dropped on a full dispatcher queue.",
	},
	[]string{"type"},
)
