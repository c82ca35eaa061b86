package navguard

import "context"

// MetaMiddlewares is the route-meta key holding a route's guard declaration.
// The value may be a single [Handler], an ordered []Handler, or a []any mix;
// all forms are normalized with [NormalizeChain] when the chain for a
// navigation is collected.
const MetaMiddlewares = "middlewares"

// Location is the opaque structured location descriptor supplied by the
// external router for both ends of a navigation. For the target location the
// router also supplies Matched, the route records resolved for it, in
// outer-to-inner hierarchy order.
//
// Location instances are owned by the router; navguard never mutates them.
type Location struct {
	Path    string
	Name    string
	Params  map[string]string
	Query   map[string]string
	Meta    map[string]any
	Matched []RouteRecord
}

// RouteRecord is one record of a target location's matched chain. Its Meta
// map is the sole per-route configuration surface: the pipeline reads
// Meta[MetaMiddlewares] and nothing else.
type RouteRecord struct {
	Path string
	Name string
	Meta map[string]any
}

// Handler is a navigation guard. It receives the request-scoped
// context.Context and the per-navigation [Context] shared by the whole
// chain, and returns a decision result plus an error.
//
// Result semantics: nil or boolean true continue to the next guard; boolean
// false cancels the navigation; any other value is the final outcome,
// returned to the router unchanged as a redirect descriptor. A non-nil
// error aborts the run. A panicking guard is equivalent to one returning
// the recovered value as an error.
type Handler func(ctx context.Context, nav *Context) (any, error)

// Chain is an ordered guard list. The zero value is a valid empty chain.
type Chain []Handler
