package authgate

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a specific counter or histogram in the in-process
// metrics system.
type MetricID uint16

const (
	// MetricAuthSuccess counts requests that resolved a principal.
	MetricAuthSuccess MetricID = iota
	// MetricAuthRejected counts 401-class rejections.
	MetricAuthRejected
	// MetricAuthSkipped counts requests matching an exclusion rule.
	MetricAuthSkipped
	// MetricAuthBackendFailure counts 500-class infrastructure faults.
	MetricAuthBackendFailure
	// MetricBasicMalformedHeader counts Basic rejections at the header stage.
	MetricBasicMalformedHeader
	// MetricBasicDecodeFailed counts Basic rejections at the decode stage.
	MetricBasicDecodeFailed
	// MetricBasicMalformedCredentials counts Basic rejections at the
	// credential-split stage.
	MetricBasicMalformedCredentials
	// MetricBasicUnknownUser counts Basic rejections at the lookup stage.
	MetricBasicUnknownUser
	// MetricBasicBadPassword counts Basic rejections at the verify stage.
	MetricBasicBadPassword
	// MetricSessionCreated counts created sessions.
	MetricSessionCreated
	// MetricSessionDestroyed counts destroyed sessions.
	MetricSessionDestroyed
	// MetricSessionMiss counts session lookups that resolved nothing:
	// missing cookie, unknown ID, or past expiry.
	MetricSessionMiss
	// MetricTokenInvalid counts bearer tokens that failed verification.
	MetricTokenInvalid
	// MetricIdentifyLatency is the strategy-identify latency histogram.
	MetricIdentifyLatency

	metricIDCount
)

const histBucketCount = 8

type paddedCounter struct {
	value uint64
	_     [56]byte
}

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

// Metrics holds atomic counters and an optional latency histogram. All
// operations are safe for concurrent use; a disabled instance is free.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] instance. When cfg.Enabled is false, all
// operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricIdentifyLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current counter value for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a deep copy of all counters and histogram buckets.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricIdentifyLatency].buckets[i])
		}
		s.Histograms[MetricIdentifyLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
