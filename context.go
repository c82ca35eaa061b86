package navguard

import (
	"context"

	"github.com/google/uuid"
)

type accessTokenContextKey struct{}
type sessionIDContextKey struct{}

// WithAccessToken attaches the caller's bearer token to ctx. Token-checking
// guards (guards.RequireToken) read it from there rather than from the
// location, so credentials never travel through router state.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenContextKey{}, token)
}

// AccessTokenFromContext returns the bearer token attached with
// [WithAccessToken], if any.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	token, ok := ctx.Value(accessTokenContextKey{}).(string)
	return token, ok && token != ""
}

// WithSessionID attaches the caller's session identifier to ctx for
// session-presence guards (guards.RequireSession).
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, id)
}

// SessionIDFromContext returns the session identifier attached with
// [WithSessionID], if any.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	id, ok := ctx.Value(sessionIDContextKey{}).(string)
	return id, ok && id != ""
}

// Context is the mutable per-navigation state shared by reference across
// every guard invoked for one navigation. Guards never own it: a fresh
// Context is created for each [Pipeline.Run] and discarded when the run
// settles.
//
// The chain runs strictly sequentially, so the scratch store needs no
// locking.
type Context struct {
	id    string
	to    *Location
	from  *Location
	store map[string]any
}

func newContext(to, from *Location) *Context {
	return &Context{
		id:    uuid.NewString(),
		to:    to,
		from:  from,
		store: make(map[string]any),
	}
}

// NavigationID returns the unique identifier assigned to this navigation.
// It tags audit events and log lines produced during the run.
func (c *Context) NavigationID() string {
	return c.id
}

// To returns the navigation's target location.
func (c *Context) To() *Location {
	return c.to
}

// From returns the navigation's source location.
func (c *Context) From() *Location {
	return c.from
}

// Set stores a value in the navigation's scratch store. Later guards in the
// same chain observe it; the store does not outlive the run.
func (c *Context) Set(key string, value any) {
	c.store[key] = value
}

// Get retrieves a value from the navigation's scratch store.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.store[key]
	return v, ok
}

// Next returns the continue sentinel. It is a pure helper: the guard must
// return its result for it to take effect.
func (c *Context) Next() any {
	return true
}

// Cancel returns the cancel sentinel (boolean false). Pure helper, same as
// [Context.Next].
func (c *Context) Cancel() any {
	return false
}

// Redirect returns target unchanged. Returning it from a guard makes target
// the final outcome of the navigation; the pipeline never inspects or
// copies it.
func (c *Context) Redirect(target any) any {
	return target
}
