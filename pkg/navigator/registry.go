package navigator

import (
	"sync"

	"github.com/jermeyyy/quovadis/pkg/navtree"
)

// ContainerKind says what shape of node a destination requires.
type ContainerKind int

const (
	// KindScreen destinations become plain screen leaves. No builder is
	// needed.
	KindScreen ContainerKind = iota
	// KindTab destinations synthesize a tab container on first navigation.
	KindTab
	// KindPane destinations synthesize a pane container on first
	// navigation.
	KindPane
)

func (k ContainerKind) String() string {
	switch k {
	case KindTab:
		return "tab"
	case KindPane:
		return "pane"
	}
	return "screen"
}

// KeyFunc allocates node keys for synthesized containers.
type KeyFunc func() string

// Builder constructs the initial shape of a container node for a
// destination: its stacks or panes and the initial selection. The returned
// node's kind must match the registered ContainerKind; a mismatch is a
// programming error in the registration and makes Navigate panic.
type Builder func(dest navtree.Destination, newKey KeyFunc) navtree.Node

// Registration describes how a route's destinations enter the tree.
type Registration struct {
	Kind  ContainerKind
	Build Builder
	// Scope is the route ID of the container this destination is declared
	// inside. Navigating to a scoped destination while a differently
	// scoped container is active targets the ancestor stack common to
	// both instead of the innermost active stack. "" means unscoped.
	Scope string
}

// Registry maps route IDs to registrations. It is populated at startup and
// safe for concurrent lookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Registration)}
}

// Register records how destinations with the given route enter the tree.
// Registering a route twice replaces the earlier entry.
func (r *Registry) Register(routeID string, reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[routeID] = reg
}

// Lookup returns the registration for a route.
func (r *Registry) Lookup(routeID string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[routeID]
	return reg, ok
}
