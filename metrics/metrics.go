package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Access outcomes.
const (
	ResultUnlocked        = "unlocked"
	ResultPaymentRequired = "payment_required"
	ResultNotFound        = "not_found"
	ResultError           = "error"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paywall_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paywall_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Access gating
	AccessChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paywall_access_checks_total",
			Help: "Total number of access checks by outcome",
		},
		[]string{"result"},
	)

	GrantsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_grants_issued_total",
			Help: "Total number of access grants issued",
		},
	)

	GrantsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_grants_rejected_total",
			Help: "Total number of grant requests whose proof failed verification",
		},
	)

	// Catalogue
	ContentCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paywall_content_created_total",
			Help: "Total number of content items created by type",
		},
		[]string{"type"},
	)
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}

func RecordAccessCheck(result string) {
	AccessChecks.WithLabelValues(result).Inc()
}

// RecordGrant counts an issued grant, or a rejected one when verified is false.
func RecordGrant(verified bool) {
	if verified {
		GrantsIssued.Inc()
		return
	}
	GrantsRejected.Inc()
}

func RecordContentCreated(contentType string) {
	ContentCreated.WithLabelValues(contentType).Inc()
}
