package navguard

import "log/slog"

// Builder assembles a [Pipeline]. Setup-time configuration goes in first;
// per-installation configuration merges on top by concatenation, never by
// replacement.
//
// Builder instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Builder struct {
	config    Config
	router    Router
	logger    *slog.Logger
	auditSink Sink

	built bool
}

// New returns a builder initialized with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig merges cfg into the builder's configuration. Calling it more
// than once appends guard declarations in call order; it never discards
// previously registered guards.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = MergeConfig(b.config, cfg)
	return b
}

// WithGlobal appends global guards directly, equivalent to merging a Config
// whose GlobalMiddlewares field lists them.
func (b *Builder) WithGlobal(guards ...Handler) *Builder {
	b.config = MergeConfig(b.config, Config{GlobalMiddlewares: Chain(guards)})
	return b
}

// WithRouter sets the external router the pipeline installs into. Optional:
// when absent, Build logs a warning and skips installation instead of
// failing.
func (b *Builder) WithRouter(r Router) *Builder {
	b.router = r
	return b
}

// WithLogger sets the structured logger. Defaults to [slog.Default].
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the sink receiving navigation audit events. Only used
// when auditing is enabled in the configuration.
func (b *Builder) WithAuditSink(sink Sink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles pipeline counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the run-latency histogram. Implies nothing
// unless metrics are also enabled.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithAuditEnabled toggles audit event dispatch.
func (b *Builder) WithAuditEnabled(enabled bool) *Builder {
	b.config.Audit.Enabled = enabled
	return b
}

// Build finalizes the configuration and returns the pipeline. When a router
// was provided, Build registers the pipeline's [GuardFunc] through
// BeforeEach; when it was not, Build emits a warning and completes without
// wiring — the pipeline still works when driven manually via [Pipeline.Run].
func (b *Builder) Build() (*Pipeline, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	b.built = true

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		global:  append(Chain{}, NormalizeChain(b.config.GlobalMiddlewares)...),
		logger:  logger,
		metrics: NewMetrics(b.config.Metrics),
		audit:   newAuditDispatcher(b.config.Audit, b.auditSink),
	}

	if b.router == nil {
		logger.Warn("router not available; navigation guard not installed")
		return p, nil
	}
	b.router.BeforeEach(p.Guard())

	return p, nil
}
