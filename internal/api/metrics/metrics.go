// Package metrics defines the custom Prometheus metrics of the energy
// tracker API. HTTP request metrics come from echoprometheus; the counters
// here track domain outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "energy"

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "not_found", "wrong_password" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - role: "admin" or "user"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered users, by role.",
	},
	[]string{"role"},
)

// ConsumptionsRecordedTotal counts readings added.
var ConsumptionsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consumptions_recorded_total",
		Help:      "Total number of consumption readings recorded.",
	},
)

// KWhRecordedTotal accumulates the energy of all recorded readings.
var KWhRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "kwh_recorded_total",
		Help:      "Sum of kWh across all recorded readings.",
	},
)

// DeletionsTotal counts explicit deletions.
// Label:
//   - entity: "house", "consumption" or "user"
var DeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deletions_total",
		Help:      "Total number of deleted records, by entity.",
	},
	[]string{"entity"},
)

// ImportsTotal counts document imports.
// Label:
//   - result: "ok" or "rejected"
var ImportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Total number of document imports, by result.",
	},
	[]string{"result"},
)
