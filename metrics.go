package navguard

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one pipeline counter or histogram.
type MetricID uint16

const (
	// MetricNavigationAllowed counts runs where every guard continued.
	MetricNavigationAllowed MetricID = iota
	// MetricNavigationCancelled counts runs decided by a boolean false.
	MetricNavigationCancelled
	// MetricNavigationRedirected counts runs decided by a redirect
	// descriptor.
	MetricNavigationRedirected
	// MetricGuardFailure counts runs aborted by a guard error.
	MetricGuardFailure
	// MetricGuardPanic counts the subset of failures caused by a panicking
	// guard.
	MetricGuardPanic
	// MetricRunLatency is the run-duration histogram.
	MetricRunLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

// latencyBounds are the upper bounds of the first seven histogram buckets;
// the eighth bucket is +Inf.
var latencyBounds = [histBucketCount - 1]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

// MetricsConfig toggles pipeline instrumentation. Everything is off by
// default; a disabled Metrics value records nothing and costs one branch
// per call.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the pipeline's lock-free counter set. All methods are safe for
// concurrent use.
//
// Metrics instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histogram
// buckets, as returned by [Metrics.Snapshot].
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics builds a counter set from cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether the counter set records anything.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current value of the counter identified by id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Observe records a duration sample into the histogram identified by id.
// No-op unless latency histograms are enabled.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id >= metricIDCount {
		return
	}

	bucket := histBucketCount - 1
	for i, bound := range latencyBounds {
		if d <= bound {
			bucket = i
			break
		}
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucket], 1)
}

// Snapshot copies every counter and histogram into maps. A disabled counter
// set snapshots as empty maps.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters:   map[MetricID]uint64{},
		Histograms: map[MetricID][]uint64{},
	}
	if m == nil || !m.enabled {
		return snap
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricRunLatency {
			continue
		}
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricRunLatency].buckets[i])
		}
		snap.Histograms[MetricRunLatency] = buckets
	}

	return snap
}
