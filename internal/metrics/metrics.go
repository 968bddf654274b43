package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// PlacesTotal counts place lifecycle events by action (created, deleted).
	PlacesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_total",
			Help: "Total number of place operations by action",
		},
		[]string{"action"},
	)

	// RecordsTotal counts record lifecycle events by action (created, deleted).
	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_total",
			Help: "Total number of record operations by action",
		},
		[]string{"action"},
	)

	// SignupsTotal counts successful account creations.
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total number of successful signups",
		},
	)
)

var (
	// Slugs, UUIDs, and numeric ids all appear as the last path segment of
	// the places/records routes; collapse them to keep label cardinality low.
	idPathSegment = regexp.MustCompile(`^(/api/(?:places|records))/[^/]+$`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, PlacesTotal, RecordsTotal, SignupsTotal)
	})
}

// NormalizePath reduces cardinality by replacing the trailing id/slug segment
// with a placeholder. E.g. /api/places/coffee-shop -> /api/places/{id}.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "$1/{id}")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncPlaces increments the place operations counter for the given action.
func IncPlaces(action string) {
	PlacesTotal.WithLabelValues(action).Inc()
}

// IncRecords increments the record operations counter for the given action.
func IncRecords(action string) {
	RecordsTotal.WithLabelValues(action).Inc()
}

// IncSignups increments the signup counter.
func IncSignups() {
	SignupsTotal.Inc()
}
