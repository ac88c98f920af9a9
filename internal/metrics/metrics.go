// Package metrics defines the service's Prometheus metrics. It is the single
// source of truth for metric names, labels, and help strings; everything is
// registered with the default registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// Outcome label values shared by the counters below.
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Guard decision label values. Deny reasons are internal diagnostics only;
// the HTTP response never distinguishes them.
const (
	DecisionAllow     = "allow"
	DecisionNoToken   = "deny_no_token"
	DecisionBadToken  = "deny_bad_token"
	DecisionWrongRole = "deny_wrong_role"
)

// RegistrationsTotal counts registration attempts by outcome
// (success/duplicate/invalid/error).
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SignInsTotal counts sign-in attempts by outcome (success/invalid/error).
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDecisionsTotal counts access-guard outcomes on protected routes.
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by decision.",
	},
	[]string{"decision"},
)
