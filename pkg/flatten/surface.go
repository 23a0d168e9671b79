// Package flatten projects a navigation tree into the flat, z-ordered list
// of surfaces a renderer draws, together with animation pairings and
// caching hints. Flattening is a pure function of the current tree, the
// previous tree, and the window size class; it keeps no state between
// calls.
package flatten

import "github.com/jermeyyy/quovadis/pkg/navtree"

// Z-order layout. Each nesting level of containers raises the base by
// ZLevelStep, leaving room for a renderer to place an entering surface at
// base+ZTransitionOffset mid-transition without colliding with the next
// level.
const (
	ZLevelStep        = 100
	ZTransitionOffset = 50
)

// WindowSizeClass is a coarse bucket of available display width. It drives
// how pane containers adapt.
type WindowSizeClass int

const (
	SizeCompact WindowSizeClass = iota
	SizeMedium
	SizeExpanded
)

func (s WindowSizeClass) String() string {
	switch s {
	case SizeCompact:
		return "compact"
	case SizeMedium:
		return "medium"
	case SizeExpanded:
		return "expanded"
	}
	return "unknown"
}

// TransitionType classifies what kind of navigation produced the current
// tree relative to the previous one.
type TransitionType int

const (
	TransitionNone TransitionType = iota
	TransitionPush
	TransitionPop
	TransitionTabSwitch
	TransitionPaneSwitch
)

func (t TransitionType) String() string {
	switch t {
	case TransitionPush:
		return "push"
	case TransitionPop:
		return "pop"
	case TransitionTabSwitch:
		return "tab-switch"
	case TransitionPaneSwitch:
		return "pane-switch"
	}
	return "none"
}

// RenderingMode tells the renderer what kind of content a surface carries.
type RenderingMode int

const (
	// ModeSingleScreen is a leaf rendered at the root, outside any stack.
	ModeSingleScreen RenderingMode = iota
	// ModeStackContent is the top leaf of a back stack.
	ModeStackContent
	// ModeTabWrapper is the chrome around a tab container.
	ModeTabWrapper
	// ModeTabContent is the active tab's stack content.
	ModeTabContent
	// ModePaneWrapper is the multi-pane layout chrome.
	ModePaneWrapper
	// ModePaneContent is one pane of a multi-pane layout.
	ModePaneContent
	// ModePaneAsStack is a pane rendered alone at compact width.
	ModePaneAsStack
)

func (m RenderingMode) String() string {
	switch m {
	case ModeSingleScreen:
		return "single-screen"
	case ModeStackContent:
		return "stack-content"
	case ModeTabWrapper:
		return "tab-wrapper"
	case ModeTabContent:
		return "tab-content"
	case ModePaneWrapper:
		return "pane-wrapper"
	case ModePaneContent:
		return "pane-content"
	case ModePaneAsStack:
		return "pane-as-stack"
	}
	return "unknown"
}

// Surface is one unit of renderable content with its own identity,
// stacking order, and transition slot.
type Surface struct {
	// ID identifies the surface. Content surfaces use the node key;
	// wrapper surfaces derive a stable ID from their container's key.
	ID string
	// Key is the tree node this surface renders.
	Key string
	// Destination is the content descriptor for screen surfaces, nil for
	// wrappers.
	Destination navtree.Destination
	Mode        RenderingMode
	ZOrder      int
	// ParentID is the surface this one is composed into, "" at the root.
	ParentID string
	// PreviousSurfaceID is the surface that occupied this slot before the
	// triggering operation, "" when the slot is new. Renderers animate
	// between exactly these two surfaces.
	PreviousSurfaceID string
}

// AnimationPair names the two surfaces a transition animates between.
type AnimationPair struct {
	FromID     string
	ToID       string
	Transition TransitionType
}

// CacheScope says how much of a container a caching hint covers.
type CacheScope int

const (
	// CacheUnit covers a wrapper and its content as one cache entry.
	// Used when a whole container enters, so an expensive wrapper is not
	// rebuilt on return.
	CacheUnit CacheScope = iota
	// CacheContentOnly covers only the content surface. The wrapper
	// composition stays untouched, preserving scroll position and focus.
	CacheContentOnly
)

func (s CacheScope) String() string {
	if s == CacheContentOnly {
		return "content-only"
	}
	return "unit"
}

// CachingHint tells the renderer what to cache or invalidate after this
// flatten pass.
type CachingHint struct {
	SurfaceID  string
	Scope      CacheScope
	Invalidate bool
}

// Result is the complete projection of one tree snapshot.
type Result struct {
	Transition TransitionType
	Surfaces   []Surface
	Animations []AnimationPair
	Caching    []CachingHint
}

// Surface returns the surface with the given ID, or nil.
func (r *Result) Surface(id string) *Surface {
	for i := range r.Surfaces {
		if r.Surfaces[i].ID == id {
			return &r.Surfaces[i]
		}
	}
	return nil
}

// WrapperID returns the surface ID used for the wrapper of the container
// with the given node key.
func WrapperID(key string) string {
	return key + "#wrapper"
}
