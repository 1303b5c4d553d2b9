package server

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.Record("check_spelling", 10*time.Millisecond, false, false)
	m.Record("check_spelling", 20*time.Millisecond, true, false)
	m.Record("suggestions", 3*time.Millisecond, false, true)

	snap := m.Snapshot()
	assert.Equal(t, uint64(3), snap.TotalRequests)
	assert.Equal(t, uint64(1), snap.FailedRequests)
	assert.Equal(t, uint64(1), snap.CachedRequests)
	assert.Equal(t, 11.0, snap.AverageMillis)
	assert.Equal(t, 15.0, snap.Endpoints["check_spelling"].AverageMillis)
	assert.Equal(t, uint64(1), snap.Endpoints["suggestions"].Requests)
}

func TestMetricsEmpty(t *testing.T) {
	snap := NewMetrics().Snapshot()
	assert.Zero(t, snap.TotalRequests)
	assert.Zero(t, snap.AverageMillis)
	assert.Empty(t, snap.Endpoints)
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Record("x", time.Millisecond, false, false)
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(100), m.Snapshot().TotalRequests)
}
