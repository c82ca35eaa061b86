package guards

import (
	"context"
	"log/slog"

	navguard "github.com/routewise/navguard"
)

// Logging returns a guard that logs every navigation it sees and always
// continues. A nil logger falls back to [slog.Default].
func Logging(logger *slog.Logger) navguard.Handler {
	return func(ctx context.Context, nav *navguard.Context) (any, error) {
		l := logger
		if l == nil {
			l = slog.Default()
		}

		l.InfoContext(ctx, "navigation",
			"navigation_id", nav.NavigationID(),
			"to", pathOf(nav.To()),
			"from", pathOf(nav.From()),
		)

		return nav.Next(), nil
	}
}

func pathOf(loc *navguard.Location) string {
	if loc == nil {
		return ""
	}
	return loc.Path
}
