package internaldefs

import (
	navguard "github.com/routewise/navguard"
)

// CounterDef maps one pipeline counter to its exported series name.
type CounterDef struct {
	ID   navguard.MetricID
	Name string
	Help string
}

// HistogramDef maps one pipeline histogram to its exported series name.
type HistogramDef struct {
	ID   navguard.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in stable render order.
var CounterDefs = []CounterDef{
	{ID: navguard.MetricNavigationAllowed, Name: "navguard_navigation_allowed_total", Help: "Navigations allowed through the guard chain."},
	{ID: navguard.MetricNavigationCancelled, Name: "navguard_navigation_cancelled_total", Help: "Navigations cancelled by a guard."},
	{ID: navguard.MetricNavigationRedirected, Name: "navguard_navigation_redirected_total", Help: "Navigations redirected by a guard."},
	{ID: navguard.MetricGuardFailure, Name: "navguard_guard_failure_total", Help: "Navigation runs aborted by a guard error."},
	{ID: navguard.MetricGuardPanic, Name: "navguard_guard_panic_total", Help: "Guard failures caused by a panicking guard."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: navguard.MetricRunLatency, Name: "navguard_run_latency_seconds", Help: "Guard chain run latency histogram."},
}

// HistogramBounds are the bucket upper bounds in Prometheus label form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds in instrument-name-safe form.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// both exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
