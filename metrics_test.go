package navguard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricNavigationAllowed)

	if got := m.Value(MetricNavigationAllowed); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricNavigationCancelled)
	m.Inc(MetricNavigationCancelled)
	m.Inc(MetricNavigationCancelled)

	if got := m.Value(MetricNavigationCancelled); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricNavigationAllowed)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricNavigationAllowed); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		700 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricRunLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricRunLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsSnapshotDisabledIsEmpty(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	snap := m.Snapshot()

	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestRunIncrementsDecisionCounters(t *testing.T) {
	cases := []struct {
		name   string
		guard  Handler
		metric MetricID
	}{
		{"allowed", func(context.Context, *Context) (any, error) { return true, nil }, MetricNavigationAllowed},
		{"cancelled", func(_ context.Context, nav *Context) (any, error) { return nav.Cancel(), nil }, MetricNavigationCancelled},
		{"redirected", func(_ context.Context, nav *Context) (any, error) {
			return nav.Redirect(&Location{Name: "login"}), nil
		}, MetricNavigationRedirected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New().
				WithGlobal(tc.guard).
				WithMetricsEnabled(true).
				Build()
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			defer p.Close()

			if _, err := p.Run(context.Background(), &Location{Path: "/"}, nil); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got := p.MetricsSnapshot().Counters[tc.metric]; got != 1 {
				t.Fatalf("expected counter %d to be 1, got %d", tc.metric, got)
			}
		})
	}
}

func TestRunCountsFailuresAndPanics(t *testing.T) {
	p, err := New().
		WithGlobal(
			func(context.Context, *Context) (any, error) { panic("kaboom") },
		).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer p.Close()

	if _, err := p.Run(context.Background(), &Location{Path: "/"}, nil); !errors.Is(err, ErrGuardPanic) {
		t.Fatalf("expected ErrGuardPanic, got %v", err)
	}

	snap := p.MetricsSnapshot()
	if snap.Counters[MetricGuardFailure] != 1 {
		t.Fatalf("expected one guard failure, got %d", snap.Counters[MetricGuardFailure])
	}
	if snap.Counters[MetricGuardPanic] != 1 {
		t.Fatalf("expected one guard panic, got %d", snap.Counters[MetricGuardPanic])
	}
}
