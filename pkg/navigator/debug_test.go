package navigator_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jermeyyy/quovadis/pkg/navigator"
	"github.com/jermeyyy/quovadis/pkg/navtree"
)

func TestRegisterDebugLogger(t *testing.T) {
	nav := newNavigator(t, navtree.NewStack("root", screen("a", "home")))

	// Nop logger; the point is that the hooks run without panic on both
	// the commit and reject paths.
	navigator.RegisterDebugLogger(nav, zerolog.Nop())

	nav.Navigate(dest("detail"))
	assert.True(t, nav.NavigateBack())
	assert.False(t, nav.NavigateBack())
	nav.Remove("missing")
}
