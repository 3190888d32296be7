package rpcstats

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

var (
	probeAttempts = prom.NewCounterVec(prom.CounterOpts{
		Name: "rpc_probe_attempts_total",
		Help: "Health probe attempts split by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	probeDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Name:    "rpc_probe_duration_seconds",
		Help:    "Duration of successful health probes.",
		Buckets: prom.DefBuckets,
	}, []string{"endpoint"})
	endpointSkips = prom.NewCounterVec(prom.CounterOpts{
		Name: "rpc_endpoint_skips_total",
		Help: "Endpoints skipped because their cached health is bad.",
	}, []string{"endpoint"})
	fallbackResults = prom.NewCounterVec(prom.CounterOpts{
		Name: "rpc_fallback_results_total",
		Help: "Fallback executor calls split by variant and outcome.",
	}, []string{"variant", "outcome"})
)

func init() {
	prom.MustRegister(probeAttempts)
	prom.MustRegister(probeDuration)
	prom.MustRegister(endpointSkips)
	prom.MustRegister(fallbackResults)
}

// CountProbe records one probe attempt against endpoint.
func CountProbe(endpoint string, outcome string) {
	probeAttempts.WithLabelValues(endpoint, outcome).Inc()
}

func ObserveProbeDuration(endpoint string, elapsed time.Duration) {
	probeDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func CountSkip(endpoint string) {
	endpointSkips.WithLabelValues(endpoint).Inc()
}

func CountFallback(variant string, outcome string) {
	fallbackResults.WithLabelValues(variant, outcome).Inc()
}
