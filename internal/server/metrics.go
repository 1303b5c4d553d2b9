package server

import (
	"math"
	"sync"
	"time"
)

// EndpointStats aggregates the requests served by one route.
type EndpointStats struct {
	Requests        uint64  `json:"requests"`
	Failed          uint64  `json:"failed"`
	Cached          uint64  `json:"cached"`
	AverageMillis   float64 `json:"average_ms"`
	totalDurationMs float64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	TotalRequests  uint64                   `json:"total_requests"`
	FailedRequests uint64                   `json:"failed_requests"`
	CachedRequests uint64                   `json:"cached_requests"`
	AverageMillis  float64                  `json:"average_processing_time"`
	Endpoints      map[string]EndpointStats `json:"endpoints"`
}

// Metrics counts requests per endpoint.
type Metrics struct {
	mu        sync.Mutex
	endpoints map[string]*EndpointStats
}

func NewMetrics() *Metrics {
	return &Metrics{endpoints: make(map[string]*EndpointStats)}
}

// Record adds one request to endpoint's counters.
func (m *Metrics) Record(endpoint string, d time.Duration, failed, cached bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.endpoints[endpoint]
	if !ok {
		st = &EndpointStats{}
		m.endpoints[endpoint] = st
	}
	st.Requests++
	if failed {
		st.Failed++
	}
	if cached {
		st.Cached++
	}
	st.totalDurationMs += float64(d) / float64(time.Millisecond)
	st.AverageMillis = round2(st.totalDurationMs / float64(st.Requests))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := MetricsSnapshot{Endpoints: make(map[string]EndpointStats, len(m.endpoints))}
	var total float64
	for name, st := range m.endpoints {
		snap.Endpoints[name] = *st
		snap.TotalRequests += st.Requests
		snap.FailedRequests += st.Failed
		snap.CachedRequests += st.Cached
		total += st.totalDurationMs
	}
	if snap.TotalRequests > 0 {
		snap.AverageMillis = round2(total / float64(snap.TotalRequests))
	}
	return snap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
