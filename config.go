package navguard

import (
	"context"
	"fmt"
)

// Config carries pipeline configuration.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	// GlobalMiddlewares is the global guard declaration: a single [Handler], an
	// ordered []Handler (or [Chain]), or a []any mixing both. Global guards
	// run before any route-declared guard, in registration order.
	GlobalMiddlewares any

	Metrics MetricsConfig
	Audit   AuditConfig
}

// DefaultConfig returns the baseline configuration: no global guards,
// metrics and audit disabled.
func DefaultConfig() Config {
	return Config{
		Audit: AuditConfig{
			BufferSize: 256,
		},
	}
}

// MergeConfig merges two configurations. Guard declarations concatenate —
// base first, extra appended, never replaced — so merging with an empty
// Config is the identity. Observability toggles from extra only widen what
// base enables.
func MergeConfig(base, extra Config) Config {
	out := base

	merged := append(Chain{}, NormalizeChain(base.GlobalMiddlewares)...)
	merged = append(merged, NormalizeChain(extra.GlobalMiddlewares)...)
	if len(merged) > 0 {
		out.GlobalMiddlewares = merged
	}

	if extra.Metrics.Enabled {
		out.Metrics.Enabled = true
	}
	if extra.Metrics.EnableLatencyHistograms {
		out.Metrics.EnableLatencyHistograms = true
	}
	if extra.Audit.Enabled {
		out.Audit.Enabled = true
	}
	if extra.Audit.BufferSize > 0 {
		out.Audit.BufferSize = extra.Audit.BufferSize
	}
	if extra.Audit.DropIfFull {
		out.Audit.DropIfFull = true
	}

	return out
}

// NormalizeChain coerces an optional single-or-many guard declaration into
// an ordered [Chain], empty if absent. It is the single normalization point
// used both for configuration merging and for per-route collection.
//
// A declaration that is neither a handler nor a list of handlers is not
// rejected here: it becomes a guard that fails at invocation time, at its
// declared chain position, matching how an uncallable value would surface.
func NormalizeChain(declaration any) Chain {
	switch decl := declaration.(type) {
	case nil:
		return nil
	case Handler:
		if decl == nil {
			return nil
		}
		return Chain{decl}
	case func(context.Context, *Context) (any, error):
		if decl == nil {
			return nil
		}
		return Chain{decl}
	case Chain:
		return decl
	case []Handler:
		return Chain(decl)
	case []func(context.Context, *Context) (any, error):
		chain := make(Chain, 0, len(decl))
		for _, h := range decl {
			chain = append(chain, h)
		}
		return chain
	case []any:
		var chain Chain
		for _, item := range decl {
			chain = append(chain, NormalizeChain(item)...)
		}
		return chain
	default:
		return Chain{malformedHandler(declaration)}
	}
}

func malformedHandler(declaration any) Handler {
	return func(context.Context, *Context) (any, error) {
		return nil, fmt.Errorf("%w: %T", ErrNotHandler, declaration)
	}
}
