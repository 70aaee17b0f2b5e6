package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks provider call metrics
type Metrics struct {
	providerCalls   int64
	providerErrors  int64
	providerLatency int64 // Total latency in nanoseconds
	invalidRequests int64
}

// MetricsSnapshot is the JSON view of Metrics.
type MetricsSnapshot struct {
	ProviderCalls        int64   `json:"provider_calls"`
	ProviderErrors       int64   `json:"provider_errors"`
	InvalidRequests      int64   `json:"invalid_requests"`
	AverageLatencyMs     float64 `json:"avg_provider_latency_ms"`
	ProviderErrorRatePct float64 `json:"provider_error_rate_pct"`
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		providerCalls:   atomic.LoadInt64(&globalMetrics.providerCalls),
		providerErrors:  atomic.LoadInt64(&globalMetrics.providerErrors),
		providerLatency: atomic.LoadInt64(&globalMetrics.providerLatency),
		invalidRequests: atomic.LoadInt64(&globalMetrics.invalidRequests),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.providerCalls, 0)
	atomic.StoreInt64(&globalMetrics.providerErrors, 0)
	atomic.StoreInt64(&globalMetrics.providerLatency, 0)
	atomic.StoreInt64(&globalMetrics.invalidRequests, 0)
}

func recordProviderCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.providerCalls, 1)
	atomic.AddInt64(&globalMetrics.providerLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.providerErrors, 1)
	}
}

func recordInvalidRequest() {
	atomic.AddInt64(&globalMetrics.invalidRequests, 1)
}

// AverageProviderLatency returns the average latency in milliseconds
func (m Metrics) AverageProviderLatency() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	avgNs := float64(m.providerLatency) / float64(m.providerCalls)
	return avgNs / 1e6
}

// ProviderErrorRate returns the error rate as a percentage
func (m Metrics) ProviderErrorRate() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	return float64(m.providerErrors) / float64(m.providerCalls) * 100
}

func (m Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ProviderCalls:        m.providerCalls,
		ProviderErrors:       m.providerErrors,
		InvalidRequests:      m.invalidRequests,
		AverageLatencyMs:     m.AverageProviderLatency(),
		ProviderErrorRatePct: m.ProviderErrorRate(),
	}
}
