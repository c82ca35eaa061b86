// Package guards provides ready-made navigation guards built on the
// navguard pipeline contract.
//
// # Guards
//
//   - [Logging] — structured slog line per navigation, always continues.
//   - [RequireToken] — verifies the bearer token from the request context
//     and redirects to a login location when absent or invalid.
//   - [RequireSession] — checks session presence in the redis-backed
//     session store and redirects when the session is gone.
//
// Each guard is an ordinary [navguard.Handler]: it expresses its outcome by
// returning the result of nav.Next, nav.Cancel, or nav.Redirect, and
// reserves the error return for infrastructure failures (which abort the
// whole navigation run).
//
// # Architecture boundaries
//
// This package translates credential and session state into pipeline
// decisions. It does NOT parse locations, match routes, or talk to the
// router — it only sees the per-navigation Context the pipeline hands it.
package guards
