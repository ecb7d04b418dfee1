package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the dashboard collectors plus the Go runtime ones.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "regadmin",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regadmin",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "regadmin",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	fallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regadmin",
			Subsystem: "data",
			Name:      "fallbacks_total",
			Help:      "Number of times a fixed mock payload replaced a live result.",
		},
		[]string{"source"},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regadmin",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream API calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	tokenClears = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "regadmin",
			Subsystem: "session",
			Name:      "token_clears_total",
			Help:      "Stored credentials cleared after an unauthorized response.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		fallbacks,
		upstreamRequests,
		tokenClears,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

func ObserveHTTP(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// FallbackServed records that source answered with its fixed payload.
func FallbackServed(source string) {
	fallbacks.WithLabelValues(source).Inc()
}

func UpstreamCall(endpoint string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

func TokenCleared() {
	tokenClears.Inc()
}
