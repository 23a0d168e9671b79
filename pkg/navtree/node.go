// Package navtree defines the immutable navigation tree and the pure
// transformation functions that produce new trees from it.
//
// A tree is a value: no operation in this package mutates a node in place.
// Every transformation rebuilds the path from the root to the changed node
// and shares every other subtree by reference, so callers can compare
// subtrees with == to detect what changed between two snapshots.
package navtree

// Destination describes what content a screen shows. Implementations are
// caller-defined value types; the tree treats them as opaque except for the
// route identifier, which groups destinations of the same kind for
// clear-to matching and container lookup.
type Destination interface {
	RouteID() string
}

// Node is one node of a navigation tree. The variant set is closed:
// *ScreenNode, *StackNode, *TabNode, and *PaneNode are the only
// implementations.
type Node interface {
	// ID returns the node key, unique within one tree snapshot.
	ID() string
	// ParentID returns the key of the owning node, or "" for the root.
	ParentID() string

	sealed()
}

// ScreenNode is a leaf holding a single destination.
type ScreenNode struct {
	Key         string
	ParentKey   string
	Destination Destination
}

// StackNode is an ordered back stack. The last child is the active one.
// Children may be empty only transiently (a root stack before the first
// push, or after a pop with PreserveEmpty).
type StackNode struct {
	Key       string
	ParentKey string
	Children  []Node
}

// TabNode holds one independent back stack per tab. Switching tabs changes
// only ActiveStackIndex; the inactive stacks keep their history.
type TabNode struct {
	Key       string
	ParentKey string
	// Route is the route ID of the destination this container was
	// synthesized for, "" for containers built by hand. Scope-aware
	// navigation matches against it.
	Route            string
	Stacks           []*StackNode
	ActiveStackIndex int
}

// PaneRole identifies one slot of a multi-pane layout.
type PaneRole int

// Pane roles, in rendering order.
const (
	RolePrimary PaneRole = iota
	RoleSecondary
	RoleExtra
)

// RoleOrder lists all pane roles in the order the flattener and renderers
// visit them.
var RoleOrder = []PaneRole{RolePrimary, RoleSecondary, RoleExtra}

func (r PaneRole) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	case RoleExtra:
		return "extra"
	}
	return "unknown"
}

// PaneAdaptation controls how a pane behaves when the window is too narrow
// to show all panes at once.
type PaneAdaptation int

const (
	// AdaptToStack folds the pane into the single-pane stack at compact
	// width. Only the active role is shown.
	AdaptToStack PaneAdaptation = iota
	// AdaptHide drops the pane entirely at compact width.
	AdaptHide
)

// PaneConfiguration wraps one pane's subtree plus its narrow-window
// adaptation strategy.
type PaneConfiguration struct {
	Root       Node
	Adaptation PaneAdaptation
}

// PaneNode lays out multiple subtrees side by side at medium and expanded
// widths, and behaves like a single-pane stack at compact width.
// ActiveRole must always have an entry in Panes.
type PaneNode struct {
	Key       string
	ParentKey string
	// Route mirrors TabNode.Route.
	Route      string
	Panes      map[PaneRole]PaneConfiguration
	ActiveRole PaneRole
}

func (n *ScreenNode) ID() string { return n.Key }
func (n *StackNode) ID() string  { return n.Key }
func (n *TabNode) ID() string    { return n.Key }
func (n *PaneNode) ID() string   { return n.Key }

func (n *ScreenNode) ParentID() string { return n.ParentKey }
func (n *StackNode) ParentID() string  { return n.ParentKey }
func (n *TabNode) ParentID() string    { return n.ParentKey }
func (n *PaneNode) ParentID() string   { return n.ParentKey }

func (n *ScreenNode) sealed() {}
func (n *StackNode) sealed()  {}
func (n *TabNode) sealed()    {}
func (n *PaneNode) sealed()   {}

// NewScreen creates a leaf node for the given destination.
func NewScreen(key string, dest Destination) *ScreenNode {
	return &ScreenNode{Key: key, Destination: dest}
}

// NewStack creates a stack holding the given children, fixing up their
// parent keys.
func NewStack(key string, children ...Node) *StackNode {
	s := &StackNode{Key: key}
	s.Children = make([]Node, len(children))
	for i, c := range children {
		s.Children[i] = withParent(c, key)
	}
	return s
}

// NewTab creates a tab container over the given stacks. The active index is
// clamped into range.
func NewTab(key string, activeIndex int, stacks ...*StackNode) *TabNode {
	t := &TabNode{Key: key, ActiveStackIndex: clampIndex(activeIndex, len(stacks))}
	t.Stacks = make([]*StackNode, len(stacks))
	for i, s := range stacks {
		t.Stacks[i] = s.withParent(key).(*StackNode)
	}
	return t
}

// NewPane creates a pane container. The active role falls back to the first
// configured role in RoleOrder when the given role has no configuration.
func NewPane(key string, activeRole PaneRole, panes map[PaneRole]PaneConfiguration) *PaneNode {
	p := &PaneNode{Key: key, Panes: make(map[PaneRole]PaneConfiguration, len(panes))}
	for role, cfg := range panes {
		cfg.Root = withParent(cfg.Root, key)
		p.Panes[role] = cfg
	}
	p.ActiveRole = activeRole
	if _, ok := p.Panes[activeRole]; !ok {
		for _, role := range RoleOrder {
			if _, ok := p.Panes[role]; ok {
				p.ActiveRole = role
				break
			}
		}
	}
	return p
}

// withChildren returns a copy of the stack with the given children. The
// receiver is not modified.
func (n *StackNode) withChildren(children []Node) *StackNode {
	cp := *n
	cp.Children = children
	return &cp
}

// withStacks returns a copy of the tab with the given stacks and active
// index. The receiver is not modified.
func (n *TabNode) withStacks(stacks []*StackNode, active int) *TabNode {
	cp := *n
	cp.Stacks = stacks
	cp.ActiveStackIndex = clampIndex(active, len(stacks))
	return &cp
}

// withActiveIndex returns a copy of the tab with only the active index
// changed. Stack references are shared with the receiver.
func (n *TabNode) withActiveIndex(active int) *TabNode {
	cp := *n
	cp.ActiveStackIndex = clampIndex(active, len(n.Stacks))
	return &cp
}

// withPanes returns a copy of the pane node with the given configuration
// map and active role.
func (n *PaneNode) withPanes(panes map[PaneRole]PaneConfiguration, active PaneRole) *PaneNode {
	cp := *n
	cp.Panes = panes
	cp.ActiveRole = active
	return &cp
}

// clonePanes shallow-copies the pane configuration map so one entry can be
// replaced without touching the original.
func (n *PaneNode) clonePanes() map[PaneRole]PaneConfiguration {
	out := make(map[PaneRole]PaneConfiguration, len(n.Panes))
	for role, cfg := range n.Panes {
		out[role] = cfg
	}
	return out
}

func (n *ScreenNode) withParent(parent string) Node {
	cp := *n
	cp.ParentKey = parent
	return &cp
}

func (n *StackNode) withParent(parent string) Node {
	cp := *n
	cp.ParentKey = parent
	return &cp
}

func (n *TabNode) withParent(parent string) Node {
	cp := *n
	cp.ParentKey = parent
	return &cp
}

func (n *PaneNode) withParent(parent string) Node {
	cp := *n
	cp.ParentKey = parent
	return &cp
}

// withParent returns a copy of n whose ParentKey is parent, or n itself when
// the parent key already matches.
func withParent(n Node, parent string) Node {
	if n == nil || n.ParentID() == parent {
		return n
	}
	switch v := n.(type) {
	case *ScreenNode:
		return v.withParent(parent)
	case *StackNode:
		return v.withParent(parent)
	case *TabNode:
		return v.withParent(parent)
	case *PaneNode:
		return v.withParent(parent)
	}
	return n
}

func clampIndex(i, size int) int {
	if size == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
