package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listpane_cache_requests_total",
		Help: "Cache lookups by namespace and result (hit, miss, expired)",
	}, []string{"namespace", "result"})

	RemoteFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listpane_remote_fetches_total",
		Help: "Remote SharePoint queries by operation and outcome",
	}, []string{"operation", "outcome"})

	RemoteFetchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "listpane_remote_fetch_latency_seconds",
		Help:    "Remote SharePoint query latency by operation",
		Buckets: prometheus.ExponentialBuckets(0.01, 2.0, 12),
	}, []string{"operation"})

	SharedDataWaits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listpane_shared_data_waits_total",
		Help: "Waits on another request's in-flight fetch by outcome",
	}, []string{"outcome"})

	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "listpane_in_flight_fetches",
		Help: "Cache keys currently marked as loading",
	})
)

func init() {
	prometheus.MustRegister(CacheRequests)
	prometheus.MustRegister(RemoteFetches)
	prometheus.MustRegister(RemoteFetchLatency)
	prometheus.MustRegister(SharedDataWaits)
	prometheus.MustRegister(InFlight)
}

func CacheHit(namespace string) {
	CacheRequests.WithLabelValues(namespace, "hit").Inc()
}

func CacheMiss(namespace string) {
	CacheRequests.WithLabelValues(namespace, "miss").Inc()
}

func CacheExpired(namespace string) {
	CacheRequests.WithLabelValues(namespace, "expired").Inc()
}

func ObserveFetch(operation string, seconds float64, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	RemoteFetches.WithLabelValues(operation, outcome).Inc()
	RemoteFetchLatency.WithLabelValues(operation).Observe(seconds)
}

func ObserveWait(outcome string) {
	SharedDataWaits.WithLabelValues(outcome).Inc()
}
