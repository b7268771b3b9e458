// Package metrics defines and registers the custom Prometheus metrics for
// the Display Dynamix Studio API. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics alongside the HTTP middleware metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studio"

// LoginsTotal counts credential exchanges on the /token and /login
// endpoints.
// Label:
//   - result: "success" or "failure" (all failure causes collapse into one
//     value, mirroring the API's refusal to distinguish them)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenResolutionsTotal counts bearer-token resolutions by the auth
// middleware.
// Label:
//   - result: "success" or "unauthenticated"
var TokenResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_resolutions_total",
		Help:      "Total number of bearer token resolutions, labelled by result.",
	},
	[]string{"result"},
)

// PasswordChangesTotal counts change-password attempts.
// Label:
//   - result: "success" or "rejected" (wrong current password)
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password change attempts, labelled by result.",
	},
	[]string{"result"},
)

// ForbiddenTotal counts authorization refusals after successful
// authentication.
// Label:
//   - resource: "users" (role gate) or "templates" (ownership gate)
var ForbiddenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_total",
		Help:      "Total number of authorization refusals, labelled by resource.",
	},
	[]string{"resource"},
)
