package navtree

// ActivePath returns the root-to-leaf sequence of nodes obtained by always
// following the currently selected child: the last child of a stack, the
// active stack of a tab, and the active role of a pane. The path ends early
// at an empty stack or a pane role with a nil subtree.
func ActivePath(root Node) []Node {
	var path []Node
	for n := root; n != nil; {
		path = append(path, n)
		switch v := n.(type) {
		case *ScreenNode:
			return path
		case *StackNode:
			if len(v.Children) == 0 {
				return path
			}
			n = v.Children[len(v.Children)-1]
		case *TabNode:
			if len(v.Stacks) == 0 {
				return path
			}
			n = v.Stacks[v.ActiveStackIndex]
		case *PaneNode:
			cfg, ok := v.Panes[v.ActiveRole]
			if !ok || cfg.Root == nil {
				return path
			}
			n = cfg.Root
		}
	}
	return path
}

// ActiveLeaf returns the active screen of the tree, or nil when the active
// path ends in an empty container.
func ActiveLeaf(root Node) *ScreenNode {
	path := ActivePath(root)
	if len(path) == 0 {
		return nil
	}
	if leaf, ok := path[len(path)-1].(*ScreenNode); ok {
		return leaf
	}
	return nil
}

// ActiveStack returns the deepest stack on the active path, or nil when the
// tree has none.
func ActiveStack(root Node) *StackNode {
	var found *StackNode
	for _, n := range ActivePath(root) {
		if s, ok := n.(*StackNode); ok {
			found = s
		}
	}
	return found
}

// Find returns the node with the given key, searching the whole tree, or
// nil when no node has that key.
func Find(root Node, key string) Node {
	if root == nil {
		return nil
	}
	if root.ID() == key {
		return root
	}
	switch v := root.(type) {
	case *StackNode:
		for _, c := range v.Children {
			if hit := Find(c, key); hit != nil {
				return hit
			}
		}
	case *TabNode:
		for _, s := range v.Stacks {
			if hit := Find(s, key); hit != nil {
				return hit
			}
		}
	case *PaneNode:
		for _, role := range RoleOrder {
			cfg, ok := v.Panes[role]
			if !ok {
				continue
			}
			if hit := Find(cfg.Root, key); hit != nil {
				return hit
			}
		}
	}
	return nil
}

// Walk visits every node of the tree depth first, parents before children.
// Traversal stops when fn returns false.
func Walk(root Node, fn func(Node) bool) {
	walk(root, fn)
}

func walk(n Node, fn func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	switch v := n.(type) {
	case *StackNode:
		for _, c := range v.Children {
			if !walk(c, fn) {
				return false
			}
		}
	case *TabNode:
		for _, s := range v.Stacks {
			if !walk(s, fn) {
				return false
			}
		}
	case *PaneNode:
		for _, role := range RoleOrder {
			if cfg, ok := v.Panes[role]; ok {
				if !walk(cfg.Root, fn) {
					return false
				}
			}
		}
	}
	return true
}

// Keys returns every key in the tree in depth-first order.
func Keys(root Node) []string {
	var keys []string
	Walk(root, func(n Node) bool {
		keys = append(keys, n.ID())
		return true
	})
	return keys
}

// CountScreens returns the number of screen leaves in the tree.
func CountScreens(root Node) int {
	count := 0
	Walk(root, func(n Node) bool {
		if _, ok := n.(*ScreenNode); ok {
			count++
		}
		return true
	})
	return count
}

// replace rebuilds the path from root to the node with the given key,
// substituting the result of fn for that node. Subtrees off the path are
// shared by reference with the input tree. A nil result from fn removes the
// node from its parent container.
//
// The boolean reports whether the key was found.
func replace(root Node, key string, fn func(Node) Node) (Node, bool) {
	if root == nil {
		return nil, false
	}
	if root.ID() == key {
		return fn(root), true
	}
	switch v := root.(type) {
	case *StackNode:
		for i, c := range v.Children {
			next, ok := replace(c, key, fn)
			if !ok {
				continue
			}
			if next == nil {
				children := make([]Node, 0, len(v.Children)-1)
				children = append(children, v.Children[:i]...)
				children = append(children, v.Children[i+1:]...)
				return v.withChildren(children), true
			}
			children := make([]Node, len(v.Children))
			copy(children, v.Children)
			children[i] = withParent(next, v.Key)
			return v.withChildren(children), true
		}
	case *TabNode:
		for i, s := range v.Stacks {
			next, ok := replace(s, key, fn)
			if !ok {
				continue
			}
			if next == nil {
				stacks := make([]*StackNode, 0, len(v.Stacks)-1)
				stacks = append(stacks, v.Stacks[:i]...)
				stacks = append(stacks, v.Stacks[i+1:]...)
				if len(stacks) == 0 {
					return nil, true
				}
				active := v.ActiveStackIndex
				if i < active || active >= len(stacks) {
					active--
				}
				return v.withStacks(stacks, active), true
			}
			ns, valid := next.(*StackNode)
			if !valid {
				return root, true
			}
			stacks := make([]*StackNode, len(v.Stacks))
			copy(stacks, v.Stacks)
			stacks[i] = withParent(ns, v.Key).(*StackNode)
			return v.withStacks(stacks, v.ActiveStackIndex), true
		}
	case *PaneNode:
		for _, role := range RoleOrder {
			cfg, present := v.Panes[role]
			if !present {
				continue
			}
			next, ok := replace(cfg.Root, key, fn)
			if !ok {
				continue
			}
			panes := v.clonePanes()
			if next == nil {
				delete(panes, role)
				if len(panes) == 0 {
					return nil, true
				}
				active := v.ActiveRole
				if _, stillThere := panes[active]; !stillThere {
					for _, r := range RoleOrder {
						if _, ok := panes[r]; ok {
							active = r
							break
						}
					}
				}
				return v.withPanes(panes, active), true
			}
			cfg.Root = withParent(next, v.Key)
			panes[role] = cfg
			return v.withPanes(panes, v.ActiveRole), true
		}
	}
	return nil, false
}
