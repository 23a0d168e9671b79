package navtree

import "fmt"

// Validate checks the structural invariants of a tree snapshot:
// unique keys, parent back-references matching the actual parent, tab
// active indices in range, and pane active roles present in the
// configuration map. It returns the first violation found.
func Validate(root Node) error {
	if root == nil {
		return fmt.Errorf("navtree: nil root")
	}
	seen := make(map[string]bool)
	return validate(root, "", seen)
}

func validate(n Node, parent string, seen map[string]bool) error {
	if n.ID() == "" {
		return fmt.Errorf("navtree: node with empty key (parent %q)", parent)
	}
	if seen[n.ID()] {
		return fmt.Errorf("navtree: duplicate key %q", n.ID())
	}
	seen[n.ID()] = true
	if n.ParentID() != parent {
		return fmt.Errorf("navtree: node %q has parent key %q, want %q", n.ID(), n.ParentID(), parent)
	}

	switch v := n.(type) {
	case *ScreenNode:
		if v.Destination == nil {
			return fmt.Errorf("navtree: screen %q has no destination", v.Key)
		}
	case *StackNode:
		for _, c := range v.Children {
			if err := validate(c, v.Key, seen); err != nil {
				return err
			}
		}
	case *TabNode:
		if len(v.Stacks) == 0 {
			return fmt.Errorf("navtree: tab %q has no stacks", v.Key)
		}
		if v.ActiveStackIndex < 0 || v.ActiveStackIndex >= len(v.Stacks) {
			return fmt.Errorf("navtree: tab %q active index %d out of range [0,%d)", v.Key, v.ActiveStackIndex, len(v.Stacks))
		}
		for _, s := range v.Stacks {
			if err := validate(s, v.Key, seen); err != nil {
				return err
			}
		}
	case *PaneNode:
		if len(v.Panes) == 0 {
			return fmt.Errorf("navtree: pane %q has no configurations", v.Key)
		}
		if _, ok := v.Panes[v.ActiveRole]; !ok {
			return fmt.Errorf("navtree: pane %q active role %s has no configuration", v.Key, v.ActiveRole)
		}
		for _, role := range RoleOrder {
			cfg, ok := v.Panes[role]
			if !ok {
				continue
			}
			if cfg.Root == nil {
				return fmt.Errorf("navtree: pane %q role %s has a nil subtree", v.Key, role)
			}
			if err := validate(cfg.Root, v.Key, seen); err != nil {
				return err
			}
		}
	}
	return nil
}
