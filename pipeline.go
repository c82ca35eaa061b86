package navguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Pipeline executes navigation-guard chains. Built once through
// [Builder.Build] and immutable afterwards; Run may be called from multiple
// goroutines because all mutable per-navigation state lives on the run's
// own [Context].
type Pipeline struct {
	global  Chain
	logger  *slog.Logger
	metrics *Metrics
	audit   *auditDispatcher
}

// Run executes the guard chain for one navigation from `from` to `to` and
// returns the navigation outcome.
//
// The effective chain is the global guards followed by each matched route's
// declared guards in outer-to-inner order, recomputed for every call.
// Guards run strictly sequentially against one shared [Context]; the first
// guard whose result is not a continue sentinel (nil or true) ends the run
// and its result is returned unchanged. A (nil, nil) return means every
// guard continued — or the chain was empty — and the navigation proceeds
// unmodified. The first guard error aborts the remaining chain and is
// returned as the run's error; nothing is retried or rolled back.
func (p *Pipeline) Run(ctx context.Context, to, from *Location) (any, error) {
	start := time.Now()
	nav := newContext(to, from)
	chain := p.collect(to)

	for i, guard := range chain {
		result, err := invoke(ctx, guard, nav)
		if err != nil {
			p.metricInc(MetricGuardFailure)
			if errors.Is(err, ErrGuardPanic) {
				p.metricInc(MetricGuardPanic)
			}
			p.logger.Error("navigation guard failed",
				"navigation_id", nav.NavigationID(),
				"guard_index", i,
				"to", pathOf(to),
				"error", err,
			)
			p.emit(ctx, nav, eventGuardFailure, i, err)
			return nil, err
		}
		if isContinue(result) {
			continue
		}

		p.recordDecision(ctx, nav, result, i, start)
		return result, nil
	}

	p.recordDecision(ctx, nav, nil, -1, start)
	return nil, nil
}

// Guard returns the [GuardFunc] that [Builder.Build] registers with the
// external router. It exists separately so applications wiring a router
// navguard does not know about can install the pipeline themselves.
func (p *Pipeline) Guard() GuardFunc {
	return func(ctx context.Context, to, from *Location) (any, error) {
		return p.Run(ctx, to, from)
	}
}

// Close flushes and stops the audit dispatcher. Safe on a nil pipeline.
func (p *Pipeline) Close() {
	if p == nil {
		return
	}
	if p.audit != nil {
		p.audit.Close()
	}
}

// MetricsSnapshot returns a point-in-time copy of the pipeline counters.
func (p *Pipeline) MetricsSnapshot() MetricsSnapshot {
	if p == nil || p.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return p.metrics.Snapshot()
}

// AuditDropped reports how many audit events were dropped under
// backpressure.
func (p *Pipeline) AuditDropped() uint64 {
	if p == nil || p.audit == nil {
		return 0
	}
	return p.audit.Dropped()
}

// collect assembles the effective chain for a target location: global
// guards first, then each matched record's declaration in hierarchy order.
// Never cached — matched chains differ per target.
func (p *Pipeline) collect(to *Location) Chain {
	chain := make(Chain, 0, len(p.global))
	chain = append(chain, p.global...)

	if to == nil {
		return chain
	}
	for _, record := range to.Matched {
		if record.Meta == nil {
			continue
		}
		declaration, ok := record.Meta[MetaMiddlewares]
		if !ok {
			continue
		}
		chain = append(chain, NormalizeChain(declaration)...)
	}

	return chain
}

// invoke runs one guard, converting a panic into an ordinary guard error so
// callers cannot distinguish a panicking guard from one returning the same
// failure.
func invoke(ctx context.Context, guard Handler, nav *Context) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrGuardPanic, r)
		}
	}()

	return guard(ctx, nav)
}

// isContinue reports whether a guard result is one of the two continue
// sentinels: no value, or boolean true. The comparison is exact — any other
// value, truthy or not, is a final outcome.
func isContinue(result any) bool {
	if result == nil {
		return true
	}
	b, ok := result.(bool)
	return ok && b
}

func (p *Pipeline) recordDecision(ctx context.Context, nav *Context, outcome any, index int, start time.Time) {
	p.metricObserve(MetricRunLatency, time.Since(start))

	switch {
	case outcome == nil:
		p.metricInc(MetricNavigationAllowed)
		p.emit(ctx, nav, eventNavigationAllowed, index, nil)
	case outcome == any(false):
		p.metricInc(MetricNavigationCancelled)
		p.emit(ctx, nav, eventNavigationCancelled, index, nil)
	default:
		p.metricInc(MetricNavigationRedirected)
		p.emit(ctx, nav, eventNavigationRedirected, index, nil)
	}
}

func (p *Pipeline) metricInc(id MetricID) {
	if p == nil || p.metrics == nil {
		return
	}
	p.metrics.Inc(id)
}

func (p *Pipeline) metricObserve(id MetricID, d time.Duration) {
	if p == nil || p.metrics == nil {
		return
	}
	p.metrics.Observe(id, d)
}

func (p *Pipeline) emit(ctx context.Context, nav *Context, eventType string, index int, err error) {
	if p == nil || p.audit == nil {
		return
	}

	event := NavigationEvent{
		Timestamp:    time.Now().UTC(),
		EventType:    eventType,
		NavigationID: nav.NavigationID(),
		ToPath:       pathOf(nav.To()),
		ToName:       nameOf(nav.To()),
		FromPath:     pathOf(nav.From()),
		GuardIndex:   index,
	}
	if err != nil {
		event.Error = err.Error()
	}

	p.audit.Emit(ctx, event)
}

func pathOf(loc *Location) string {
	if loc == nil {
		return ""
	}
	return loc.Path
}

func nameOf(loc *Location) string {
	if loc == nil {
		return ""
	}
	return loc.Name
}
