package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Backend call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	backendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecolog",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Calls made to the activities backend, by operation and outcome.",
	}, []string{"operation", "outcome"})
	backendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ecolog",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls made to the activities backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	activitiesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecolog",
		Subsystem: "form",
		Name:      "activities_logged_total",
		Help:      "Activities successfully submitted from the log form, by category.",
	}, []string{"category"})
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecolog",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})
	reportRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecolog",
		Subsystem: "reporting",
		Name:      "weekly_runs_total",
		Help:      "Weekly report runs, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(backendRequests, backendDuration, activitiesLogged, httpRequests, reportRuns)
}

// ObserveBackendCall records one call to the activities backend.
func ObserveBackendCall(operation string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	backendRequests.WithLabelValues(operation, outcome).Inc()
	backendDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// RecordActivityLogged counts a successful form submission.
func RecordActivityLogged(category string) {
	activitiesLogged.WithLabelValues(category).Inc()
}

// RecordHTTPRequest counts a served request. Route is the matched pattern, not
// the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
}

// RecordReportRun counts a weekly report run.
func RecordReportRun(err error) {
	if err != nil {
		reportRuns.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	reportRuns.WithLabelValues(OutcomeSuccess).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
