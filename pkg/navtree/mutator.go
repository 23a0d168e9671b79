package navtree

// PopBehavior controls what happens to a stack emptied by a pop.
type PopBehavior int

const (
	// PreserveEmpty keeps the emptied stack in place as an empty StackNode.
	PreserveEmpty PopBehavior = iota
	// Cascade removes the emptied stack from its parent container and
	// re-evaluates the pop one level up, unwinding nested containers.
	Cascade
)

// Push appends child as the new top of the deepest stack on the active
// path. It returns the new tree, or (nil, false) when the tree has no
// stack to push onto.
func Push(root Node, child Node) (Node, bool) {
	stack := ActiveStack(root)
	if stack == nil || child == nil {
		return nil, false
	}
	return PushTo(root, stack.Key, child)
}

// PushTo appends child as the new top of the stack with the given key.
// It returns (nil, false) when the key does not name a stack in the tree.
func PushTo(root Node, stackKey string, child Node) (Node, bool) {
	if child == nil {
		return nil, false
	}
	next, found := replace(root, stackKey, func(n Node) Node {
		s, ok := n.(*StackNode)
		if !ok {
			return n
		}
		children := make([]Node, 0, len(s.Children)+1)
		children = append(children, s.Children...)
		children = append(children, withParent(child, s.Key))
		return s.withChildren(children)
	})
	if !found || next == root {
		return nil, false
	}
	return next, true
}

type popStatus int

const (
	popCannot popStatus = iota // nothing to pop below this node
	popDone                    // pop applied, replacement node valid
	popEmptied                 // pop applied and this node should leave its parent
)

// Pop removes the top of the deepest active stack. Under Cascade, emptying
// a stack removes that stack's container from its parent and re-evaluates
// one level up; under PreserveEmpty, the emptied stack stays in place.
//
// It returns (nil, false) when there is nothing to pop, which callers
// treat as "cannot go back here" rather than an error.
func Pop(root Node, behavior PopBehavior) (Node, bool) {
	next, status := popIn(root, behavior)
	if status != popDone || next == nil {
		return nil, false
	}
	return next, true
}

func popIn(n Node, behavior PopBehavior) (Node, popStatus) {
	switch v := n.(type) {
	case *ScreenNode:
		return nil, popCannot

	case *StackNode:
		if len(v.Children) == 0 {
			return nil, popCannot
		}
		last := v.Children[len(v.Children)-1]
		if _, isScreen := last.(*ScreenNode); !isScreen {
			child, status := popIn(last, behavior)
			switch status {
			case popDone:
				children := make([]Node, len(v.Children))
				copy(children, v.Children)
				children[len(children)-1] = withParent(child, v.Key)
				return v.withChildren(children), popDone
			case popEmptied:
				return v.dropLast(behavior)
			default:
				return nil, popCannot
			}
		}
		return v.dropLast(behavior)

	case *TabNode:
		if len(v.Stacks) == 0 {
			return nil, popCannot
		}
		stack, status := popIn(v.Stacks[v.ActiveStackIndex], behavior)
		switch status {
		case popDone:
			stacks := make([]*StackNode, len(v.Stacks))
			copy(stacks, v.Stacks)
			stacks[v.ActiveStackIndex] = withParent(stack.(*StackNode), v.Key).(*StackNode)
			return v.withStacks(stacks, v.ActiveStackIndex), popDone
		case popEmptied:
			// The active stack unwound completely; the whole tab
			// container leaves its parent.
			return nil, popEmptied
		default:
			return nil, popCannot
		}

	case *PaneNode:
		cfg, ok := v.Panes[v.ActiveRole]
		if !ok || cfg.Root == nil {
			return nil, popCannot
		}
		paneRoot, status := popIn(cfg.Root, behavior)
		switch status {
		case popDone:
			panes := v.clonePanes()
			cfg.Root = withParent(paneRoot, v.Key)
			panes[v.ActiveRole] = cfg
			return v.withPanes(panes, v.ActiveRole), popDone
		case popEmptied:
			return nil, popEmptied
		default:
			return nil, popCannot
		}
	}
	return nil, popCannot
}

// dropLast removes the stack's top element, then applies the emptied-stack
// policy.
func (n *StackNode) dropLast(behavior PopBehavior) (Node, popStatus) {
	children := n.Children[:len(n.Children)-1]
	if len(children) == 0 && behavior == Cascade {
		return nil, popEmptied
	}
	out := make([]Node, len(children))
	copy(out, children)
	return n.withChildren(out), popDone
}

// Remove deletes the node with the given key anywhere in the tree. The
// root itself cannot be removed. When the removed node was on the active
// path the containers re-select deterministically: a stack's new last
// child becomes active, a tab keeps its position clamped into range, and
// a pane falls back to the first remaining role. A non-root stack emptied
// by the removal is itself removed, so selection walks up to the nearest
// populated ancestor instead of stranding the active path.
//
// Returns (nil, false) when the key is not present.
func Remove(root Node, key string) (Node, bool) {
	if root == nil || root.ID() == key {
		return nil, false
	}
	target := Find(root, key)
	if target == nil {
		return nil, false
	}
	parentKey := target.ParentID()

	next, found := replace(root, key, func(Node) Node { return nil })
	if !found || next == nil {
		return nil, false
	}

	if parent, ok := Find(next, parentKey).(*StackNode); ok &&
		len(parent.Children) == 0 && parent.Key != next.ID() {
		if cascaded, ok := Remove(next, parent.Key); ok {
			return cascaded, true
		}
	}
	return next, true
}

// Swap exchanges the positions of two nodes that are direct siblings
// within the same stack. Swapping a key with itself is a no-op that
// returns the tree unchanged. Returns (nil, false) when the keys are not
// siblings.
func Swap(root Node, key1, key2 string) (Node, bool) {
	if key1 == key2 {
		found := false
		Walk(root, func(n Node) bool {
			if s, ok := n.(*StackNode); ok {
				for _, c := range s.Children {
					if c.ID() == key1 {
						found = true
						return false
					}
				}
			}
			return true
		})
		if !found {
			return nil, false
		}
		return root, true
	}
	var target *StackNode
	var i1, i2 int
	Walk(root, func(n Node) bool {
		s, ok := n.(*StackNode)
		if !ok {
			return true
		}
		a, b := -1, -1
		for i, c := range s.Children {
			switch c.ID() {
			case key1:
				a = i
			case key2:
				b = i
			}
		}
		if a >= 0 && b >= 0 {
			target, i1, i2 = s, a, b
			return false
		}
		return true
	})
	if target == nil {
		return nil, false
	}
	return SwapAt(root, target.Key, i1, i2)
}

// SwapAt exchanges two children of the stack with the given key by index.
// Identical indices are a no-op returning the tree unchanged; out-of-range
// indices return (nil, false).
func SwapAt(root Node, stackKey string, i1, i2 int) (Node, bool) {
	node := Find(root, stackKey)
	stack, ok := node.(*StackNode)
	if !ok {
		return nil, false
	}
	if i1 < 0 || i2 < 0 || i1 >= len(stack.Children) || i2 >= len(stack.Children) {
		return nil, false
	}
	if i1 == i2 {
		return root, true
	}
	next, found := replace(root, stackKey, func(n Node) Node {
		s := n.(*StackNode)
		children := make([]Node, len(s.Children))
		copy(children, s.Children)
		children[i1], children[i2] = children[i2], children[i1]
		return s.withChildren(children)
	})
	if !found {
		return nil, false
	}
	return next, true
}

// SwitchTab sets the active stack of the deepest tab on the active path.
// The index is clamped into range. Returns (nil, false) when the active
// path has no tab container.
func SwitchTab(root Node, index int) (Node, bool) {
	var tab *TabNode
	for _, n := range ActivePath(root) {
		if t, ok := n.(*TabNode); ok {
			tab = t
		}
	}
	if tab == nil {
		return nil, false
	}
	return SwitchTabAt(root, tab.Key, index)
}

// SwitchTabAt sets the active stack of the tab with the given key, clamping
// the index into range. Switching to the already-active index returns the
// tree unchanged. Returns (nil, false) when the key does not name a tab.
func SwitchTabAt(root Node, tabKey string, index int) (Node, bool) {
	node := Find(root, tabKey)
	tab, ok := node.(*TabNode)
	if !ok {
		return nil, false
	}
	if clampIndex(index, len(tab.Stacks)) == tab.ActiveStackIndex {
		return root, true
	}
	next, found := replace(root, tabKey, func(n Node) Node {
		return n.(*TabNode).withActiveIndex(index)
	})
	if !found {
		return nil, false
	}
	return next, true
}

// SwitchPane sets the active role of the deepest pane on the active path.
// Returns (nil, false) when the active path has no pane container or the
// role has no configuration.
func SwitchPane(root Node, role PaneRole) (Node, bool) {
	var pane *PaneNode
	for _, n := range ActivePath(root) {
		if p, ok := n.(*PaneNode); ok {
			pane = p
		}
	}
	if pane == nil {
		return nil, false
	}
	return SwitchPaneAt(root, pane.Key, role)
}

// SwitchPaneAt sets the active role of the pane with the given key.
// Switching to the already-active role returns the tree unchanged.
// Returns (nil, false) when the key does not name a pane or the role has
// no configuration.
func SwitchPaneAt(root Node, paneKey string, role PaneRole) (Node, bool) {
	node := Find(root, paneKey)
	pane, ok := node.(*PaneNode)
	if !ok {
		return nil, false
	}
	if _, configured := pane.Panes[role]; !configured {
		return nil, false
	}
	if role == pane.ActiveRole {
		return root, true
	}
	next, found := replace(root, paneKey, func(n Node) Node {
		p := n.(*PaneNode)
		return p.withPanes(p.clonePanes(), role)
	})
	if !found {
		return nil, false
	}
	return next, true
}

// PushPane appends child to the deepest stack inside the configuration at
// the given role of the pane with the given key. Returns (nil, false) when
// the pane, role, or a stack inside it cannot be found.
func PushPane(root Node, paneKey string, role PaneRole, child Node) (Node, bool) {
	cfg, ok := paneConfig(root, paneKey, role)
	if !ok || child == nil {
		return nil, false
	}
	stack := ActiveStack(cfg.Root)
	if stack == nil {
		return nil, false
	}
	return PushTo(root, stack.Key, child)
}

// PopPane pops the configuration subtree at the given role of the pane
// with the given key. The pop is confined to that role: cascading stops at
// the configuration root rather than unwinding the pane itself.
// Returns (nil, false) when there is nothing to pop.
func PopPane(root Node, paneKey string, role PaneRole, behavior PopBehavior) (Node, bool) {
	cfg, ok := paneConfig(root, paneKey, role)
	if !ok {
		return nil, false
	}
	sub, status := popIn(cfg.Root, behavior)
	if status != popDone || sub == nil {
		return nil, false
	}
	next, found := replace(root, paneKey, func(n Node) Node {
		p := n.(*PaneNode)
		panes := p.clonePanes()
		c := panes[role]
		c.Root = withParent(sub, p.Key)
		panes[role] = c
		return p.withPanes(panes, p.ActiveRole)
	})
	if !found {
		return nil, false
	}
	return next, true
}

// ClearAll replaces the active stack's children wholesale with the single
// given child. Returns (nil, false) when the tree has no stack.
func ClearAll(root Node, child Node) (Node, bool) {
	stack := ActiveStack(root)
	if stack == nil || child == nil {
		return nil, false
	}
	next, found := replace(root, stack.Key, func(n Node) Node {
		s := n.(*StackNode)
		return s.withChildren([]Node{withParent(child, s.Key)})
	})
	if !found {
		return nil, false
	}
	return next, true
}

// ClearTo removes children from the top of the active stack down to the
// nearest entry whose destination has the given route. With inclusive set,
// the matching entry is removed as well. Returns (nil, false) when no
// entry on the active stack matches.
func ClearTo(root Node, routeID string, inclusive bool) (Node, bool) {
	stack := ActiveStack(root)
	if stack == nil {
		return nil, false
	}
	match := -1
	for i := len(stack.Children) - 1; i >= 0; i-- {
		if screen, ok := stack.Children[i].(*ScreenNode); ok && screen.Destination.RouteID() == routeID {
			match = i
			break
		}
	}
	if match < 0 {
		return nil, false
	}
	keep := match + 1
	if inclusive {
		keep = match
	}
	if keep == len(stack.Children) {
		return root, true
	}
	next, found := replace(root, stack.Key, func(n Node) Node {
		s := n.(*StackNode)
		children := make([]Node, keep)
		copy(children, s.Children[:keep])
		return s.withChildren(children)
	})
	if !found {
		return nil, false
	}
	return next, true
}

func paneConfig(root Node, paneKey string, role PaneRole) (PaneConfiguration, bool) {
	node := Find(root, paneKey)
	pane, ok := node.(*PaneNode)
	if !ok {
		return PaneConfiguration{}, false
	}
	cfg, ok := pane.Panes[role]
	if !ok || cfg.Root == nil {
		return PaneConfiguration{}, false
	}
	return cfg, true
}
