package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reimbursement_tracker"

var (
	ClaimsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_created_total",
		Help:      "Claims appended to the Reimbursements sheet, by category.",
	}, []string{"category"})

	DuplicatesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicates_detected_total",
		Help:      "Duplicate matches reported by the matcher, by rule.",
	}, []string{"rule"})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Status changes applied to claims, by new status.",
	}, []string{"status"})

	SyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_failures_total",
		Help:      "Failed net cost syncs to BudgetQuest.",
	})
)
