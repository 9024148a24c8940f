// Package metrics defines and registers all custom Prometheus metrics for
// the user-management API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default registry on import; the /metrics
// endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermgmt"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure" (bad credentials, regardless of cause),
//     or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens handed out.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind.",
	},
	[]string{"kind"},
)

// AuthRejectionsTotal counts bearer-token validations that failed at the
// middleware, after which the request never reaches a handler.
// Label:
//   - kind: "access" or "refresh"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of rejected bearer tokens, by token kind.",
	},
	[]string{"kind"},
)

// RBACDenialsTotal counts requests from authenticated callers whose role did
// not satisfy the route's required-role set.
var RBACDenialsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rbac_denials_total",
		Help:      "Total number of requests denied by role-based access control.",
	},
)

// UserMutationsTotal counts user write operations that succeeded.
// Label:
//   - operation: "create", "update", "activate", "deactivate", "delete"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of successful user write operations.",
	},
	[]string{"operation"},
)
