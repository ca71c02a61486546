package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outbound API call metrics, labelled by resource group so a noisy endpoint
// is visible without exploding cardinality on full paths.
var (
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staynest_api_requests_total",
		Help: "Outbound marketplace API requests by resource, method and result",
	}, []string{"resource", "method", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "staynest_api_request_duration_seconds",
		Help:    "Outbound marketplace API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})
)

// Handler exposes the default registry; mounted only when metrics are
// enabled in config.
func Handler() http.Handler {
	return promhttp.Handler()
}
