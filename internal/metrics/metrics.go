// Package metrics defines all custom Prometheus metrics for the TaskFlow
// client. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at import time; the
// mock API exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskflow"

// SessionInitTotal counts boot-time session resolutions.
// Label:
//   - outcome: "no_credential", "authenticated", or "rejected"
var SessionInitTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_init_total",
		Help:      "Total number of session initialisations, by resolution outcome.",
	},
	[]string{"outcome"},
)

// SessionLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "rejected"
var SessionLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionLogoutsTotal counts logouts.
// Label:
//   - server: "ok" or "failed", the server call's outcome; local teardown
//     always completes either way.
var SessionLogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logouts_total",
		Help:      "Total number of logouts, by server-side call outcome.",
	},
	[]string{"server"},
)

// TokenRefreshTotal counts automatic token refreshes triggered by 401 responses.
// Label:
//   - result: "success" or "failure"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of automatic access-token refreshes, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route-guard evaluations.
// Label:
//   - decision: "render", "loading", "redirect_login", or "redirect_default"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard evaluations, by decision.",
	},
	[]string{"decision"},
)
