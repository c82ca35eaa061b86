// Package navguard provides a navigation-guard middleware pipeline for
// client-side routers: ordered guard handlers, registered globally or per
// route, run before each navigation and decide whether it proceeds, is
// cancelled, or is redirected elsewhere.
//
// The pipeline is assembled once through [Builder.Build] and is immutable
// afterwards. Each navigation gets a fresh [Context] shared by reference
// across every guard in that navigation's chain; guards run strictly one
// after another and the first non-continue result ends the run.
//
// # Decision protocol
//
// A guard returns (result, error). Exactly two results mean "continue":
// untyped nil and the boolean true. Anything else is the final outcome of
// the whole navigation — boolean false cancels it, and any other value is
// handed back to the router unchanged as a redirect descriptor. The
// comparison is deliberately literal: a guard returning the int 1 or the
// string "true" produces a final outcome, not a continue. A non-nil error
// aborts the run and surfaces through the router's own failure channel.
//
// # Architecture boundaries
//
// navguard is the public surface. It exposes [Pipeline], [Builder],
// [Config], [Context], [Location], [RouteRecord], and the observability
// value types. Ready-made guards live under guards/, the redis-backed
// session presence store under session/, and metric exporters under
// metrics/export/.
//
// # What this package must NOT do
//
//   - Perform route matching. The external router supplies the matched
//     record chain on the target [Location]; navguard only reads it.
//   - Coordinate concurrent navigations. Serializing guard invocations is
//     the router's contract; one Run call handles exactly one navigation.
//   - Interpret redirect descriptors. They pass through byte-for-byte to
//     whatever the router registered as its before-navigation contract.
package navguard
