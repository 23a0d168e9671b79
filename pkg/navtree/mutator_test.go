package navtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jermeyyy/quovadis/pkg/navtree"
)

type dest string

func (d dest) RouteID() string { return string(d) }

func screen(key, route string) *navtree.ScreenNode {
	return navtree.NewScreen(key, dest(route))
}

func TestPush_AppendsToActiveStack(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))

	next, ok := navtree.Push(root, screen("b", "detail"))
	require.True(t, ok)

	stack := next.(*navtree.StackNode)
	require.Len(t, stack.Children, 2)
	assert.Equal(t, "b", stack.Children[1].ID())
	assert.Equal(t, "root", stack.Children[1].ParentID())

	leaf := navtree.ActiveLeaf(next)
	require.NotNil(t, leaf)
	assert.Equal(t, "detail", leaf.Destination.RouteID())
}

func TestPush_InputTreeUnchanged(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))
	before := *root

	_, ok := navtree.Push(root, screen("b", "detail"))
	require.True(t, ok)

	assert.Len(t, root.Children, 1)
	assert.Equal(t, before, *root)
}

func TestPush_StructuralSharing(t *testing.T) {
	inactive := navtree.NewStack("s2", screen("b", "two"))
	tab := navtree.NewTab("tabs", 0,
		navtree.NewStack("s1", screen("a", "one")),
		inactive,
	)
	root := navtree.NewStack("root", tab)

	next, ok := navtree.Push(root, screen("c", "pushed"))
	require.True(t, ok)

	// The inactive tab stack is off the mutation path and must be the
	// same reference.
	nextTab := next.(*navtree.StackNode).Children[0].(*navtree.TabNode)
	assert.Same(t, tab.Stacks[1], nextTab.Stacks[1])
	assert.NotSame(t, tab.Stacks[0], nextTab.Stacks[0])
}

func TestPush_NoStack(t *testing.T) {
	root := screen("a", "home")

	next, ok := navtree.Push(root, screen("b", "detail"))
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestPop_InverseOfPush(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"), screen("b", "detail"))

	pushed, ok := navtree.Push(root, screen("c", "pushed"))
	require.True(t, ok)

	popped, ok := navtree.Pop(pushed, navtree.PreserveEmpty)
	require.True(t, ok)

	assert.Equal(t, root, popped)
}

func TestPop_RootSingleElement_Cascade(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))

	next, ok := navtree.Pop(root, navtree.Cascade)
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestPop_PreserveEmpty_KeepsStackInPlace(t *testing.T) {
	inner := navtree.NewStack("inner", screen("b", "detail"))
	root := navtree.NewStack("root", screen("a", "home"), inner)

	next, ok := navtree.Pop(root, navtree.PreserveEmpty)
	require.True(t, ok)

	stack := next.(*navtree.StackNode)
	require.Len(t, stack.Children, 2)
	emptied := stack.Children[1].(*navtree.StackNode)
	assert.Empty(t, emptied.Children)
}

func TestPop_CascadeUnwindsTab(t *testing.T) {
	tab := navtree.NewTab("tabs", 0, navtree.NewStack("s1", screen("b", "inbox")))
	root := navtree.NewStack("root", screen("a", "home"), tab)

	next, ok := navtree.Pop(root, navtree.Cascade)
	require.True(t, ok)

	// The tab's only stack emptied, so the whole tab container left the
	// parent stack.
	stack := next.(*navtree.StackNode)
	require.Len(t, stack.Children, 1)
	assert.Equal(t, "a", stack.Children[0].ID())
}

func TestPop_CascadeStopsAtPopulatedStack(t *testing.T) {
	tab := navtree.NewTab("tabs", 0,
		navtree.NewStack("s1", screen("b", "inbox"), screen("c", "thread")),
	)
	root := navtree.NewStack("root", screen("a", "home"), tab)

	next, ok := navtree.Pop(root, navtree.Cascade)
	require.True(t, ok)

	nextTab := next.(*navtree.StackNode).Children[1].(*navtree.TabNode)
	require.Len(t, nextTab.Stacks[0].Children, 1)
	assert.Equal(t, "b", nextTab.Stacks[0].Children[0].ID())
}

func TestRemove_UnknownKey(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))

	next, ok := navtree.Remove(root, "missing")
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestRemove_MiddleOfStack(t *testing.T) {
	root := navtree.NewStack("root",
		screen("a", "home"), screen("b", "detail"), screen("c", "top"),
	)

	next, ok := navtree.Remove(root, "b")
	require.True(t, ok)

	stack := next.(*navtree.StackNode)
	require.Len(t, stack.Children, 2)
	assert.Equal(t, "a", stack.Children[0].ID())
	assert.Equal(t, "c", stack.Children[1].ID())
	require.NoError(t, navtree.Validate(next))
}

func TestRemove_ActiveNode_SelectsNewLastSibling(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"), screen("b", "top"))

	next, ok := navtree.Remove(root, "b")
	require.True(t, ok)

	leaf := navtree.ActiveLeaf(next)
	require.NotNil(t, leaf)
	assert.Equal(t, "a", leaf.Key)
}

func TestRemove_TabStack_ClampsActiveIndex(t *testing.T) {
	tab := navtree.NewTab("tabs", 2,
		navtree.NewStack("s1", screen("a", "one")),
		navtree.NewStack("s2", screen("b", "two")),
		navtree.NewStack("s3", screen("c", "three")),
	)

	next, ok := navtree.Remove(tab, "s3")
	require.True(t, ok)

	got := next.(*navtree.TabNode)
	require.Len(t, got.Stacks, 2)
	assert.Equal(t, 1, got.ActiveStackIndex)
	require.NoError(t, navtree.Validate(next))
}

func TestRemove_LastTabStack_RemovesTab(t *testing.T) {
	tab := navtree.NewTab("tabs", 0, navtree.NewStack("s1", screen("a", "one")))
	root := navtree.NewStack("root", screen("home", "home"), tab)

	next, ok := navtree.Remove(root, "s1")
	require.True(t, ok)

	stack := next.(*navtree.StackNode)
	require.Len(t, stack.Children, 1)
	assert.Equal(t, "home", stack.Children[0].ID())
}

func TestRemove_SoleChildOfNestedStack_WalksUp(t *testing.T) {
	inner := navtree.NewStack("inner", screen("x", "detail"))
	root := navtree.NewStack("root", screen("home", "home"), inner)

	next, ok := navtree.Remove(root, "x")
	require.True(t, ok)

	// The emptied inner stack cascades out instead of staying on the
	// active path with nothing in it.
	leaf := navtree.ActiveLeaf(next)
	require.NotNil(t, leaf)
	assert.Equal(t, "home", leaf.Key)
	assert.Nil(t, navtree.Find(next, "inner"))
	require.NoError(t, navtree.Validate(next))
}

func TestRemove_SoleScreenOfTabStack_RemovesStack(t *testing.T) {
	tab := navtree.NewTab("tabs", 1,
		navtree.NewStack("s1", screen("a", "one")),
		navtree.NewStack("s2", screen("b", "two")),
	)
	root := navtree.NewStack("root", tab)

	next, ok := navtree.Remove(root, "b")
	require.True(t, ok)

	got := navtree.Find(next, "tabs").(*navtree.TabNode)
	require.Len(t, got.Stacks, 1)
	assert.Equal(t, 0, got.ActiveStackIndex)

	leaf := navtree.ActiveLeaf(next)
	require.NotNil(t, leaf)
	assert.Equal(t, "a", leaf.Key)
	require.NoError(t, navtree.Validate(next))
}

func TestRemove_SoleChildOfRootStack_KeepsRoot(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))

	next, ok := navtree.Remove(root, "a")
	require.True(t, ok)

	stack := next.(*navtree.StackNode)
	assert.Empty(t, stack.Children)
}

func TestRemove_Root(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))

	next, ok := navtree.Remove(root, "root")
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestSwap_Siblings(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"), screen("b", "detail"))

	next, ok := navtree.Swap(root, "a", "b")
	require.True(t, ok)

	stack := next.(*navtree.StackNode)
	assert.Equal(t, "b", stack.Children[0].ID())
	assert.Equal(t, "a", stack.Children[1].ID())
}

func TestSwap_SameKey_NoOp(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"), screen("b", "detail"))

	next, ok := navtree.Swap(root, "a", "a")
	require.True(t, ok)
	assert.Same(t, navtree.Node(root), next)
}

func TestSwapAt_IdenticalIndices_NoOp(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"), screen("b", "detail"))

	next, ok := navtree.SwapAt(root, "root", 0, 0)
	require.True(t, ok)
	assert.Same(t, navtree.Node(root), next)
}

func TestSwapAt_OutOfRange(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))

	next, ok := navtree.SwapAt(root, "root", 0, 5)
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestSwap_NotSiblings(t *testing.T) {
	root := navtree.NewStack("root",
		screen("a", "home"),
		navtree.NewStack("inner", screen("b", "detail")),
	)

	next, ok := navtree.Swap(root, "a", "b")
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestSwitchTab_SharesStacks(t *testing.T) {
	tab := navtree.NewTab("tabs", 0,
		navtree.NewStack("s1", screen("a", "one")),
		navtree.NewStack("s2", screen("b", "two")),
	)

	next, ok := navtree.SwitchTab(tab, 1)
	require.True(t, ok)

	got := next.(*navtree.TabNode)
	assert.Equal(t, 1, got.ActiveStackIndex)
	assert.Same(t, tab.Stacks[0], got.Stacks[0])
	assert.Same(t, tab.Stacks[1], got.Stacks[1])
}

func TestSwitchTab_ClampsIndex(t *testing.T) {
	tab := navtree.NewTab("tabs", 0,
		navtree.NewStack("s1", screen("a", "one")),
		navtree.NewStack("s2", screen("b", "two")),
	)

	next, ok := navtree.SwitchTab(tab, 99)
	require.True(t, ok)
	assert.Equal(t, 1, next.(*navtree.TabNode).ActiveStackIndex)

	next, ok = navtree.SwitchTab(tab, -3)
	require.True(t, ok)
	assert.Same(t, navtree.Node(tab), next) // already at 0
}

func TestSwitchTab_NoTabOnActivePath(t *testing.T) {
	root := navtree.NewStack("root", screen("a", "home"))

	next, ok := navtree.SwitchTab(root, 1)
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestSwitchPane(t *testing.T) {
	pane := navtree.NewPane("panes", navtree.RolePrimary, map[navtree.PaneRole]navtree.PaneConfiguration{
		navtree.RolePrimary:   {Root: navtree.NewStack("p1", screen("a", "list"))},
		navtree.RoleSecondary: {Root: navtree.NewStack("p2", screen("b", "detail"))},
	})

	next, ok := navtree.SwitchPane(pane, navtree.RoleSecondary)
	require.True(t, ok)
	assert.Equal(t, navtree.RoleSecondary, next.(*navtree.PaneNode).ActiveRole)

	// Unconfigured role is inapplicable.
	next, ok = navtree.SwitchPane(pane, navtree.RoleExtra)
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestPushPane_ConfinedToRole(t *testing.T) {
	pane := navtree.NewPane("panes", navtree.RolePrimary, map[navtree.PaneRole]navtree.PaneConfiguration{
		navtree.RolePrimary:   {Root: navtree.NewStack("p1", screen("a", "list"))},
		navtree.RoleSecondary: {Root: navtree.NewStack("p2", screen("b", "detail"))},
	})

	next, ok := navtree.PushPane(pane, "panes", navtree.RoleSecondary, screen("c", "deep"))
	require.True(t, ok)

	got := next.(*navtree.PaneNode)
	assert.Len(t, got.Panes[navtree.RoleSecondary].Root.(*navtree.StackNode).Children, 2)
	assert.Len(t, got.Panes[navtree.RolePrimary].Root.(*navtree.StackNode).Children, 1)
}

func TestPopPane_StopsAtConfigurationRoot(t *testing.T) {
	pane := navtree.NewPane("panes", navtree.RolePrimary, map[navtree.PaneRole]navtree.PaneConfiguration{
		navtree.RolePrimary: {Root: navtree.NewStack("p1", screen("a", "list"))},
	})

	// Single entry: cascading out would unwind the pane itself, which a
	// per-role pop must not do.
	next, ok := navtree.PopPane(pane, "panes", navtree.RolePrimary, navtree.Cascade)
	assert.False(t, ok)
	assert.Nil(t, next)
}

func TestClearAll(t *testing.T) {
	root := navtree.NewStack("root",
		screen("a", "home"), screen("b", "detail"), screen("c", "top"),
	)

	next, ok := navtree.ClearAll(root, screen("z", "login"))
	require.True(t, ok)

	stack := next.(*navtree.StackNode)
	require.Len(t, stack.Children, 1)
	assert.Equal(t, "z", stack.Children[0].ID())
}

func TestClearTo(t *testing.T) {
	newRoot := func() *navtree.StackNode {
		return navtree.NewStack("root",
			screen("a", "home"), screen("b", "detail"), screen("c", "top"),
		)
	}

	t.Run("exclusive keeps the match", func(t *testing.T) {
		next, ok := navtree.ClearTo(newRoot(), "home", false)
		require.True(t, ok)
		stack := next.(*navtree.StackNode)
		require.Len(t, stack.Children, 1)
		assert.Equal(t, "a", stack.Children[0].ID())
	})

	t.Run("inclusive removes the match", func(t *testing.T) {
		next, ok := navtree.ClearTo(newRoot(), "detail", true)
		require.True(t, ok)
		stack := next.(*navtree.StackNode)
		require.Len(t, stack.Children, 1)
		assert.Equal(t, "a", stack.Children[0].ID())
	})

	t.Run("no match", func(t *testing.T) {
		next, ok := navtree.ClearTo(newRoot(), "missing", false)
		assert.False(t, ok)
		assert.Nil(t, next)
	})
}

func TestInvariants_HoldAfterEveryOperation(t *testing.T) {
	build := func() navtree.Node {
		tab := navtree.NewTab("tabs", 0,
			navtree.NewStack("s1", screen("a", "one"), screen("b", "two")),
			navtree.NewStack("s2", screen("c", "three")),
		)
		pane := navtree.NewPane("panes", navtree.RolePrimary, map[navtree.PaneRole]navtree.PaneConfiguration{
			navtree.RolePrimary:   {Root: navtree.NewStack("p1", screen("d", "list"))},
			navtree.RoleSecondary: {Root: navtree.NewStack("p2", screen("e", "detail"))},
		})
		return navtree.NewStack("root", screen("home", "home"), tab, pane)
	}

	ops := []struct {
		name string
		fn   func(navtree.Node) (navtree.Node, bool)
	}{
		{"push", func(n navtree.Node) (navtree.Node, bool) { return navtree.Push(n, screen("new", "pushed")) }},
		{"pop cascade", func(n navtree.Node) (navtree.Node, bool) { return navtree.Pop(n, navtree.Cascade) }},
		{"pop preserve", func(n navtree.Node) (navtree.Node, bool) { return navtree.Pop(n, navtree.PreserveEmpty) }},
		{"remove", func(n navtree.Node) (navtree.Node, bool) { return navtree.Remove(n, "b") }},
		{"swap", func(n navtree.Node) (navtree.Node, bool) { return navtree.Swap(n, "a", "b") }},
		{"switch tab", func(n navtree.Node) (navtree.Node, bool) { return navtree.SwitchTabAt(n, "tabs", 1) }},
		{"switch pane", func(n navtree.Node) (navtree.Node, bool) { return navtree.SwitchPaneAt(n, "panes", navtree.RoleSecondary) }},
		{"clear all", func(n navtree.Node) (navtree.Node, bool) { return navtree.ClearAll(n, screen("z", "fresh")) }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			root := build()
			require.NoError(t, navtree.Validate(root))
			next, ok := op.fn(root)
			if !ok {
				return
			}
			assert.NoError(t, navtree.Validate(next))
		})
	}
}
