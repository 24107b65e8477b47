package sdkwa

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeSuccess = "success"

// Metrics records per-call Prometheus metrics. Share one instance between
// clients that report into the same registry.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered. Registering twice with the same registry panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sdkwa",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API calls by messenger, method, endpoint and outcome.",
		}, []string{"messenger", "method", "endpoint", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sdkwa",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of API calls that produced a response or a transport error.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"messenger", "method", "endpoint"}),
	}
}

func (m *Metrics) observe(messenger, method, path, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	endpoint := endpointLabel(path)
	m.requests.WithLabelValues(messenger, method, endpoint, outcome).Inc()
	m.duration.WithLabelValues(messenger, method, endpoint).Observe(elapsed.Seconds())
}

// endpointLabel keeps only the first path segment so ids embedded in paths
// such as /deleteNotification/{receiptId} do not become label values.
func endpointLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(trimmed, "/?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
