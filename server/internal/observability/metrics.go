package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates recognition metrics per culture.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	entitiesFound atomic.Int64

	cultureMetrics map[string]*CultureMetrics

	// Recent durations, oldest first.
	durations    []time.Duration
	maxDurations int
}

// CultureMetrics represents metrics for a single culture.
type CultureMetrics struct {
	requestCount  atomic.Int64
	totalDuration atomic.Int64 // milliseconds
	errorCount    atomic.Int64
	entityCount   atomic.Int64
}

// NewMetrics creates a new metrics collector keeping the last maxDurations
// request durations.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		cultureMetrics: make(map[string]*CultureMetrics),
		durations:      make([]time.Duration, 0, maxDurations),
		maxDurations:   maxDurations,
	}
}

// RecordRequest records a recognition request and the entities it found.
func (m *Metrics) RecordRequest(culture string, entities int) {
	m.requestTotal.Add(1)
	m.entitiesFound.Add(int64(entities))
	cm := m.culture(culture)
	cm.requestCount.Add(1)
	cm.entityCount.Add(int64(entities))
}

// RecordFailure records a failed request.
func (m *Metrics) RecordFailure(culture string) {
	m.requestFailed.Add(1)
	m.culture(culture).errorCount.Add(1)
}

// RecordDuration records a request duration.
func (m *Metrics) RecordDuration(culture string, duration time.Duration) {
	cm := m.culture(culture)
	cm.totalDuration.Add(duration.Milliseconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
}

// GetRequestTotal returns the total number of requests.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetRequestFailed returns the total number of failed requests.
func (m *Metrics) GetRequestFailed() int64 {
	return m.requestFailed.Load()
}

func (m *Metrics) culture(culture string) *CultureMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	cm, ok := m.cultureMetrics[culture]
	if !ok {
		cm = &CultureMetrics{}
		m.cultureMetrics[culture] = cm
	}
	return cm
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.entitiesFound.Store(0)

	m.mu.Lock()
	m.cultureMetrics = make(map[string]*CultureMetrics)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	cultures := make(map[string]*CultureMetricsSnapshot, len(m.cultureMetrics))
	for name, cm := range m.cultureMetrics {
		count := cm.requestCount.Load()
		s := &CultureMetricsSnapshot{
			RequestCount:  count,
			TotalDuration: cm.totalDuration.Load(),
			ErrorCount:    cm.errorCount.Load(),
			EntityCount:   cm.entityCount.Load(),
		}
		if count > 0 {
			s.AverageDuration = s.TotalDuration / count
		}
		cultures[name] = s
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		EntitiesFound: m.entitiesFound.Load(),
		Cultures:      cultures,
		DurationCount: len(m.durations),
		P95Ms:         percentile(m.durations, 0.95).Milliseconds(),
	}
}

// percentile uses nearest rank over a copy of durations.
func percentile(durations []time.Duration, p float64) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(p*float64(len(sorted))+0.5) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64                              `json:"request_total"`
	RequestFailed int64                              `json:"request_failed"`
	EntitiesFound int64                              `json:"entities_found"`
	Cultures      map[string]*CultureMetricsSnapshot `json:"cultures"`
	DurationCount int                                `json:"duration_count"`
	P95Ms         int64                              `json:"p95_ms"`
}

// CultureMetricsSnapshot represents metrics for a single culture.
type CultureMetricsSnapshot struct {
	RequestCount    int64 `json:"request_count"`
	TotalDuration   int64 `json:"total_duration_ms"`
	ErrorCount      int64 `json:"error_count"`
	EntityCount     int64 `json:"entity_count"`
	AverageDuration int64 `json:"average_duration_ms"`
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
