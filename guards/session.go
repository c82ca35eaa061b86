package guards

import (
	"context"
	"fmt"

	navguard "github.com/routewise/navguard"
	"github.com/routewise/navguard/session"
)

// RequireSession returns a guard that checks session presence in store for
// the session id attached to the request context with
// [navguard.WithSessionID]. A missing or dead session redirects to login.
//
// A store lookup failure is an infrastructure error, not a policy decision:
// it aborts the navigation run through the error return rather than
// silently redirecting.
func RequireSession(store *session.Store, login any) navguard.Handler {
	return func(ctx context.Context, nav *navguard.Context) (any, error) {
		if store == nil {
			return nav.Redirect(login), nil
		}

		id, ok := navguard.SessionIDFromContext(ctx)
		if !ok {
			return nav.Redirect(login), nil
		}

		active, err := store.Active(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("session lookup: %w", err)
		}
		if !active {
			return nav.Redirect(login), nil
		}

		return nav.Next(), nil
	}
}
