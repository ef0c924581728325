// Package observability holds the Prometheus collectors for the backend.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	loginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	auditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "audit",
		Name:      "write_failures_total",
		Help:      "Audit log writes that failed and were swallowed.",
	})

	queryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittrack",
		Subsystem: "store",
		Name:      "query_duration_seconds",
		Help:      "Duration of workout listing and aggregate queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})
)

func init() {
	prometheus.MustRegister(loginAttempts, auditWriteFailures, queryDuration)
}

// ObserveLogin counts one login attempt by outcome
func ObserveLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

// ObserveAuditWriteFailure counts one swallowed audit write error
func ObserveAuditWriteFailure() {
	auditWriteFailures.Inc()
}

// ObserveQuery records the duration of one store query
func ObserveQuery(name string, seconds float64) {
	queryDuration.WithLabelValues(name).Observe(seconds)
}
