package navguard

import "context"

// GuardFunc is the before-navigation interceptor contract dictated by the
// external router. The router calls it with the target and source locations
// and must honor the returned outcome exactly: nil result proceeds, boolean
// false aborts, and any other result is a redirect descriptor. A non-nil
// error routes the navigation into the router's own failure handling.
type GuardFunc func(ctx context.Context, to, from *Location) (any, error)

// Router is the integration point with the external client-side router.
// [Builder.Build] registers exactly one GuardFunc through BeforeEach; the
// router is expected to serialize guard invocations per its own contract.
type Router interface {
	BeforeEach(guard GuardFunc)
}
