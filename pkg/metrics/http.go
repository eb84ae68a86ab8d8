package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies plus cart quote activity.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	quotes   prometheus.Counter
}

// NewHTTPMetrics registers the API metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests partitioned by method and status class.",
	}, []string{"method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	quotes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_quotes_total",
		Help: "Cart pricing quotes computed.",
	})
	reg.MustRegister(requests, duration, quotes)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
		quotes:   quotes,
	}
}

// ObserveRequest records one finished request.
func (m *HTTPMetrics) ObserveRequest(method string, statusClass string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, statusClass).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// IncQuote counts one cart pricing computation.
func (m *HTTPMetrics) IncQuote() {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.Inc()
}
