package demo_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jermeyyy/quovadis/internal/demo"
	"github.com/jermeyyy/quovadis/pkg/navigator"
	"github.com/jermeyyy/quovadis/pkg/navtree"
	"github.com/jermeyyy/quovadis/pkg/persist"
)

func testKeys() navigator.KeyFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("k%d", n)
	}
}

func TestRegistryMailBuildsTabs(t *testing.T) {
	reg, ok := demo.NewRegistry().Lookup(demo.RouteMail)
	require.True(t, ok)
	assert.Equal(t, navigator.KindTab, reg.Kind)

	node := reg.Build(demo.MailDest{}, testKeys())
	tab, ok := node.(*navtree.TabNode)
	require.True(t, ok)

	require.Len(t, tab.Stacks, 3)
	assert.Equal(t, 0, tab.ActiveStackIndex)

	first, ok := tab.Stacks[0].Children[0].(*navtree.ScreenNode)
	require.True(t, ok)
	assert.Equal(t, demo.InboxDest{}, first.Destination)

	require.NoError(t, navtree.Validate(navtree.NewStack("root", node)))
}

func TestRegistrySplitBuildsPanes(t *testing.T) {
	reg, ok := demo.NewRegistry().Lookup(demo.RouteSplit)
	require.True(t, ok)
	assert.Equal(t, navigator.KindPane, reg.Kind)

	node := reg.Build(demo.SplitDest{}, testKeys())
	pane, ok := node.(*navtree.PaneNode)
	require.True(t, ok)

	assert.Equal(t, navtree.RolePrimary, pane.ActiveRole)
	require.Contains(t, pane.Panes, navtree.RolePrimary)
	require.Contains(t, pane.Panes, navtree.RoleSecondary)
	assert.Equal(t, navtree.AdaptToStack, pane.Panes[navtree.RolePrimary].Adaptation)
}

func TestRegistryComposeIsRootScoped(t *testing.T) {
	reg, ok := demo.NewRegistry().Lookup(demo.RouteCompose)
	require.True(t, ok)
	assert.Equal(t, navigator.KindScreen, reg.Kind)
	assert.Equal(t, demo.RouteHome, reg.Scope)
}

func TestCodecsRoundTripTypedDestinations(t *testing.T) {
	root := navtree.NewStack("root",
		navtree.NewScreen("home", demo.HomeDest{}),
		navtree.NewScreen("t1", demo.ThreadDest{Subject: "hello"}),
		navtree.NewScreen("c1", demo.ComposeDest{To: "ops@example.com"}),
	)

	codecs := demo.NewCodecs()

	var buf bytes.Buffer
	require.NoError(t, persist.Save(&buf, root, codecs))

	got, err := persist.Load(&buf, codecs)
	require.NoError(t, err)

	keys := navtree.Keys(got)
	require.Equal(t, navtree.Keys(root), keys)

	stack := got.(*navtree.StackNode)
	assert.Equal(t, demo.HomeDest{}, stack.Children[0].(*navtree.ScreenNode).Destination)
	assert.Equal(t, demo.ThreadDest{Subject: "hello"}, stack.Children[1].(*navtree.ScreenNode).Destination)
	assert.Equal(t, demo.ComposeDest{To: "ops@example.com"}, stack.Children[2].(*navtree.ScreenNode).Destination)
}
