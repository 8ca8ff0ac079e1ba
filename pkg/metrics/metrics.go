package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "library", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "library", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	EntryOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "library", Name: "entry_operations_total", Help: "Library entry operations by operation and response status."},
		[]string{"operation", "status"},
	)
	StoreConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "library", Name: "store_connected", Help: "1 when the document store was reachable at startup."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(EntryOperations)
	reg.MustRegister(StoreConnected)
}
