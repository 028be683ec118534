package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream and use-case Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitroom",
			Name:      "upstream_requests_total",
			Help:      "Total number of outbound upstream requests",
		},
		[]string{"upstream", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitroom",
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound upstream request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"upstream"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitroom",
			Name:      "upstream_errors_total",
			Help:      "Total upstream errors by type",
		},
		[]string{"upstream", "error_type"}, // transport / status / decode
	)

	SearchCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitroom",
			Name:      "search_candidates",
			Help:      "Upstream candidate set size per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"source"}, // results / ads / none
	)

	ComposeResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitroom",
			Name:      "compose_results_total",
			Help:      "Composition outcomes",
		},
		[]string{"outcome"},
	)
)

var upstreamMetricsRegistered bool

// RegisterUpstreamMetrics registers upstream and use-case metrics. Must be called once from main.
func RegisterUpstreamMetrics() {
	if upstreamMetricsRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(ComposeResultsTotal)
	upstreamMetricsRegistered = true
}
