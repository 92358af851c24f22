package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess   = "success"
	outcomeExhausted = "exhausted"
	outcomeRejected  = "rejected"
	outcomeAborted   = "aborted"
)

var (
	retryAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_retry_attempts_total",
		Help: "Attempts made by retried remote calls",
	}, []string{"operation"})

	retryOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_retry_outcomes_total",
		Help: "Final outcome of retried remote calls",
	}, []string{"operation", "outcome"})
)

func recordRetryAttempt(operation string) {
	retryAttemptsTotal.WithLabelValues(metricName(operation)).Inc()
}

func recordRetryOutcome(operation string, outcome string) {
	retryOutcomesTotal.WithLabelValues(metricName(operation), outcome).Inc()
}

func metricName(operation string) string {
	if operation == "" {
		return "unnamed"
	}
	return operation
}
