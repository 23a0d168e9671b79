// Package navigator owns the current navigation tree and serializes all
// mutations through a single atomic root cell. Reads always see a fully
// formed snapshot; commits retry against a fresh base with compare-and-swap
// so concurrent operations are never applied to a stale tree.
package navigator

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/jermeyyy/quovadis/pkg/navtree"
	"github.com/jermeyyy/quovadis/pkg/randgen"
)

// Change describes one committed navigation operation. Previous and
// Current are complete, immutable snapshots.
type Change struct {
	Op       string
	Previous navtree.Node
	Current  navtree.Node
}

// Subscriber is a callback invoked synchronously after every commit.
type Subscriber func(Change)

// snapshot boxes the root so the cell can compare-and-swap on a single
// pointer.
type snapshot struct {
	root navtree.Node
}

// Navigator is the stateful navigation controller. Operations with
// invalid parameters are silent no-ops: they originate from UI events
// (double-taps mid-transition and the like) and must never crash or
// surface errors. Builder-contract violations, by contrast, are
// programming errors and panic.
type Navigator struct {
	registry *Registry
	newKey   KeyFunc
	cell     atomic.Pointer[snapshot]

	mu       sync.Mutex
	subs     []Subscriber
	onCommit []func(Change)
	onReject []func(op string)
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithRegistry supplies the container registry consulted by Navigate.
func WithRegistry(r *Registry) Option {
	return func(n *Navigator) { n.registry = r }
}

// WithKeyFunc overrides how new node keys are allocated. Tests use this to
// get deterministic keys.
func WithKeyFunc(fn KeyFunc) Option {
	return func(n *Navigator) { n.newKey = fn }
}

// New creates a navigator owning the given initial tree. The root is
// typically a stack holding the start screen; an empty root stack is
// allowed before the first push.
func New(root navtree.Node, opts ...Option) *Navigator {
	n := &Navigator{
		registry: NewRegistry(),
		newKey:   randgen.Key,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.cell.Store(&snapshot{root: root})
	return n
}

// State returns the latest committed tree snapshot.
func (n *Navigator) State() navtree.Node {
	return n.cell.Load().root
}

// Subscribe registers a callback invoked synchronously on every commit.
func (n *Navigator) Subscribe(fn Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// OnCommit registers a hook that fires after a commit, before subscribers.
func (n *Navigator) OnCommit(fn func(Change)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onCommit = append(n.onCommit, fn)
}

// OnReject registers a hook that fires when an operation is absorbed as a
// silent no-op.
func (n *Navigator) OnReject(fn func(op string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onReject = append(n.onReject, fn)
}

// commit runs mutate against the freshest snapshot and swaps the root in.
// A CAS failure means another operation landed first; the mutation is
// re-derived from the new base rather than applied stale.
func (n *Navigator) commit(op string, mutate func(root navtree.Node) (navtree.Node, bool)) bool {
	for {
		cur := n.cell.Load()
		next, ok := mutate(cur.root)
		if !ok || next == nil {
			n.reject(op)
			return false
		}
		if next == cur.root {
			// Applicable but already in the requested state.
			return true
		}
		if n.cell.CompareAndSwap(cur, &snapshot{root: next}) {
			n.publish(Change{Op: op, Previous: cur.root, Current: next})
			return true
		}
	}
}

func (n *Navigator) publish(change Change) {
	n.mu.Lock()
	hooks := make([]func(Change), len(n.onCommit))
	copy(hooks, n.onCommit)
	subs := make([]Subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range hooks {
		fn(change)
	}
	for _, fn := range subs {
		fn(change)
	}
}

func (n *Navigator) reject(op string) {
	n.mu.Lock()
	hooks := make([]func(string), len(n.onReject))
	copy(hooks, n.onReject)
	n.mu.Unlock()
	for _, fn := range hooks {
		fn(op)
	}
}

// Navigate pushes a new node for the destination onto the target stack,
// synthesizing a tab or pane container first when the registry says the
// destination is a container root. Scoped destinations target the
// ancestor stack common to the active scope and the destination's scope.
func (n *Navigator) Navigate(dest navtree.Destination) {
	if dest == nil {
		n.reject("navigate")
		return
	}
	node := n.buildNode(dest)
	scope := ""
	if reg, ok := n.registry.Lookup(dest.RouteID()); ok {
		scope = reg.Scope
	}
	n.commit("navigate", func(root navtree.Node) (navtree.Node, bool) {
		target := targetStack(root, scope)
		if target == nil {
			return nil, false
		}
		return navtree.PushTo(root, target.Key, node)
	})
}

// NavigateBack pops with cascade semantics and reports whether a commit
// happened. False tells the caller to fall through to the platform
// default, typically app exit.
func (n *Navigator) NavigateBack() bool {
	return n.commit("back", func(root navtree.Node) (navtree.Node, bool) {
		return navtree.Pop(root, navtree.Cascade)
	})
}

// NavigateAndClearAll replaces the active stack's children with a single
// new screen for the destination.
func (n *Navigator) NavigateAndClearAll(dest navtree.Destination) {
	if dest == nil {
		n.reject("navigate-clear-all")
		return
	}
	node := n.buildNode(dest)
	n.commit("navigate-clear-all", func(root navtree.Node) (navtree.Node, bool) {
		return navtree.ClearAll(root, node)
	})
}

// NavigateAndClearTo removes active-stack entries back to the nearest one
// matching clearRoute (inclusive removes the match too), then pushes the
// destination. When no entry matches, nothing is cleared and the push
// proceeds alone. The whole thing is one commit; observers never see the
// intermediate tree.
func (n *Navigator) NavigateAndClearTo(dest navtree.Destination, clearRoute string, inclusive bool) {
	if dest == nil {
		n.reject("navigate-clear-to")
		return
	}
	node := n.buildNode(dest)
	n.commit("navigate-clear-to", func(root navtree.Node) (navtree.Node, bool) {
		if cleared, ok := navtree.ClearTo(root, clearRoute, inclusive); ok {
			root = cleared
		}
		return navtree.Push(root, node)
	})
}

// NavigateAndReplace swaps the current top for a new screen in a single
// atomic commit, so observers never see the popped intermediate state.
func (n *Navigator) NavigateAndReplace(dest navtree.Destination) {
	if dest == nil {
		n.reject("navigate-replace")
		return
	}
	node := n.buildNode(dest)
	n.commit("navigate-replace", func(root navtree.Node) (navtree.Node, bool) {
		popped, ok := navtree.Pop(root, navtree.PreserveEmpty)
		if !ok {
			return nil, false
		}
		return navtree.Push(popped, node)
	})
}

// SwitchTab activates the stack at index on the deepest tab of the active
// path. Out-of-range indices clamp; a missing tab is a silent no-op.
func (n *Navigator) SwitchTab(index int) {
	n.commit("switch-tab", func(root navtree.Node) (navtree.Node, bool) {
		return navtree.SwitchTab(root, index)
	})
}

// SwitchPane activates the given role on the deepest pane of the active
// path. An unconfigured role or missing pane is a silent no-op.
func (n *Navigator) SwitchPane(role navtree.PaneRole) {
	n.commit("switch-pane", func(root navtree.Node) (navtree.Node, bool) {
		return navtree.SwitchPane(root, role)
	})
}

// Remove deletes the node with the given key anywhere in the tree. An
// unknown key is a silent no-op.
func (n *Navigator) Remove(key string) {
	n.commit("remove", func(root navtree.Node) (navtree.Node, bool) {
		return navtree.Remove(root, key)
	})
}

// UpdateState replaces the whole tree. It is the escape hatch for callers
// doing custom surgery with the navtree functions directly; the only check
// is the structural invariants.
func (n *Navigator) UpdateState(root navtree.Node) error {
	if err := navtree.Validate(root); err != nil {
		return err
	}
	n.commit("update-state", func(navtree.Node) (navtree.Node, bool) {
		return root, true
	})
	return nil
}

// CurrentDestination returns the destination of the active leaf, or nil
// when the active path ends in an empty container.
func (n *Navigator) CurrentDestination() navtree.Destination {
	leaf := navtree.ActiveLeaf(n.State())
	if leaf == nil {
		return nil
	}
	return leaf.Destination
}

// CanNavigateBack reports whether NavigateBack would commit.
func (n *Navigator) CanNavigateBack() bool {
	_, ok := navtree.Pop(n.State(), navtree.Cascade)
	return ok
}

// ActivePath returns the root-to-leaf node sequence of the current tree.
func (n *Navigator) ActivePath() []navtree.Node {
	return navtree.ActivePath(n.State())
}

// buildNode turns a destination into the node Navigate pushes: a plain
// screen, or a synthesized container when the registry says so. A builder
// returning the wrong node kind indicates a broken registration and
// panics.
func (n *Navigator) buildNode(dest navtree.Destination) navtree.Node {
	reg, ok := n.registry.Lookup(dest.RouteID())
	if !ok || reg.Kind == KindScreen {
		return navtree.NewScreen(n.newKey(), dest)
	}
	if reg.Build == nil {
		panic(fmt.Sprintf("navigator: route %q registered as %s without a builder", dest.RouteID(), reg.Kind))
	}
	node := reg.Build(dest, n.newKey)
	switch v := node.(type) {
	case *navtree.TabNode:
		if reg.Kind != KindTab {
			panic(fmt.Sprintf("navigator: builder for route %q returned *navtree.TabNode, want %s", dest.RouteID(), reg.Kind))
		}
		v.Route = dest.RouteID()
	case *navtree.PaneNode:
		if reg.Kind != KindPane {
			panic(fmt.Sprintf("navigator: builder for route %q returned *navtree.PaneNode, want %s", dest.RouteID(), reg.Kind))
		}
		v.Route = dest.RouteID()
	default:
		panic(fmt.Sprintf("navigator: builder for route %q returned %T, want a %s container", dest.RouteID(), node, reg.Kind))
	}
	return node
}

// targetStack resolves where a push lands. Unscoped destinations go to the
// innermost active stack. A scoped destination stops descending at the
// first container belonging to a different scope, so the push lands on the
// stack containing that container: the common ancestor.
func targetStack(root navtree.Node, scope string) *navtree.StackNode {
	var target *navtree.StackNode
	blocked := false
	for _, n := range navtree.ActivePath(root) {
		switch v := n.(type) {
		case *navtree.StackNode:
			if !blocked {
				target = v
			}
		case *navtree.TabNode:
			if scope != "" && v.Route != "" && v.Route != scope {
				blocked = true
			}
		case *navtree.PaneNode:
			if scope != "" && v.Route != "" && v.Route != scope {
				blocked = true
			}
		}
	}
	return target
}
