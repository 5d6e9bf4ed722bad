package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cotyledon",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cotyledon",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	sowOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cotyledon",
			Subsystem: "garden",
			Name:      "sow_total",
			Help:      "Sow requests by outcome.",
		},
		[]string{"node", "outcome"},
	)
	signatureRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cotyledon",
			Subsystem: "garden",
			Name:      "signature_rejections_total",
			Help:      "Gardens rejected by signature verification, by fault.",
		},
		[]string{"node", "fault"},
	)
	gardenSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cotyledon",
			Subsystem: "garden",
			Name:      "plot_plants",
			Help:      "Number of plants in a plot after a successful sow.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"node"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, sowOutcomes, signatureRejections, gardenSize)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordSow counts one sow attempt. outcome is "ok", "invalid_plant_type",
// "invalid_signature", "bad_request" or "internal".
func RecordSow(node, outcome string, plants int) {
	RegisterMetrics()
	sowOutcomes.WithLabelValues(node, outcome).Inc()
	if outcome == "ok" {
		gardenSize.WithLabelValues(node).Observe(float64(plants))
	}
}

func RecordSignatureRejection(node, fault string) {
	RegisterMetrics()
	signatureRejections.WithLabelValues(node, fault).Inc()
}
