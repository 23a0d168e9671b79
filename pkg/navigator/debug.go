package navigator

import (
	"github.com/rs/zerolog"

	"github.com/jermeyyy/quovadis/pkg/navtree"
)

// RegisterDebugLogger registers hooks that log navigation activity at
// debug level: OnCommit for applied operations and OnReject for absorbed
// no-ops.
func RegisterDebugLogger(nav *Navigator, logger zerolog.Logger) {
	nav.OnCommit(func(change Change) {
		event := logger.Debug().Str("op", change.Op)
		if leaf := navtree.ActiveLeaf(change.Current); leaf != nil {
			event = event.Str("destination", leaf.Destination.RouteID())
		}
		event.Int("screens", navtree.CountScreens(change.Current)).Msg("navigation committed")
	})

	nav.OnReject(func(op string) {
		logger.Debug().Str("op", op).Msg("navigation absorbed: inapplicable")
	})
}
