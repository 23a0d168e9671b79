package flatten

import "github.com/jermeyyy/quovadis/pkg/navtree"

// Flatten projects the tree into an ordered surface list. previous is the
// tree from before the triggering operation and may be nil on the first
// pass; it is consulted by reference and key lookup only, never modified.
func Flatten(root, previous navtree.Node, size WindowSizeClass) Result {
	f := &flattener{prev: previous, size: size}
	f.result.Transition = detectTransition(previous, root)
	if root != nil {
		f.node(root, context{transition: f.result.Transition})
	}
	return f.result
}

// detectTransition compares active-path lengths: a longer path is a push, a
// shorter one a pop. Equal lengths are refined by looking for the first
// container on the path that kept its key but changed its selection.
func detectTransition(previous, current navtree.Node) TransitionType {
	if previous == nil || current == nil {
		return TransitionNone
	}
	prevPath := navtree.ActivePath(previous)
	curPath := navtree.ActivePath(current)
	switch {
	case len(curPath) > len(prevPath):
		return TransitionPush
	case len(curPath) < len(prevPath):
		return TransitionPop
	}
	for i, n := range curPath {
		if i >= len(prevPath) || prevPath[i].ID() != n.ID() {
			break
		}
		switch cur := n.(type) {
		case *navtree.TabNode:
			if prev, ok := prevPath[i].(*navtree.TabNode); ok && prev.ActiveStackIndex != cur.ActiveStackIndex {
				return TransitionTabSwitch
			}
		case *navtree.PaneNode:
			if prev, ok := prevPath[i].(*navtree.PaneNode); ok && prev.ActiveRole != cur.ActiveRole {
				return TransitionPaneSwitch
			}
		}
	}
	return TransitionNone
}

// context carries the recursion state: z-order base, parent surface,
// animation pairing slot, and per-container mode overrides.
type context struct {
	z           int
	parentID    string
	prevSibling string
	transition  TransitionType
	inStack     bool
	leafMode    RenderingMode
	leafModeSet bool
	// suppressAnim is set inside multi-pane content: the wrapper controls
	// layout, content surfaces carry no independent animation.
	suppressAnim bool
}

type flattener struct {
	prev   navtree.Node
	size   WindowSizeClass
	result Result
}

func (f *flattener) node(n navtree.Node, ctx context) {
	switch v := n.(type) {
	case *navtree.ScreenNode:
		f.screen(v, ctx)
	case *navtree.StackNode:
		f.stack(v, ctx)
	case *navtree.TabNode:
		f.tab(v, ctx)
	case *navtree.PaneNode:
		f.pane(v, ctx)
	}
}

func (f *flattener) screen(n *navtree.ScreenNode, ctx context) {
	mode := ModeSingleScreen
	if ctx.inStack {
		mode = ModeStackContent
	}
	if ctx.leafModeSet {
		mode = ctx.leafMode
	}
	f.result.Surfaces = append(f.result.Surfaces, Surface{
		ID:                n.Key,
		Key:               n.Key,
		Destination:       n.Destination,
		Mode:              mode,
		ZOrder:            ctx.z,
		ParentID:          ctx.parentID,
		PreviousSurfaceID: ctx.prevSibling,
	})
}

// stack flattens only the top of the stack; back-stack entries below the
// top are invisible until popped to. An empty stack contributes nothing.
func (f *flattener) stack(s *navtree.StackNode, ctx context) {
	if len(s.Children) == 0 {
		return
	}
	top := s.Children[len(s.Children)-1]

	// The slot's previous occupant: on push it is the entry below the new
	// top, on pop it is the old top, which only the previous snapshot
	// still holds.
	prevID := ctx.prevSibling
	if len(s.Children) >= 2 {
		prevID = s.Children[len(s.Children)-2].ID()
	}
	var prevTop string
	if prevStack, ok := navtree.Find(f.prev, s.Key).(*navtree.StackNode); ok && len(prevStack.Children) > 0 {
		prevTop = prevStack.Children[len(prevStack.Children)-1].ID()
		if prevTop != top.ID() {
			prevID = prevTop
		}
	}

	childCtx := ctx
	childCtx.inStack = true
	childCtx.prevSibling = prevID
	f.node(top, childCtx)

	if ctx.suppressAnim {
		return
	}
	if prevTop != "" && prevTop != top.ID() {
		switch ctx.transition {
		case TransitionPush, TransitionPop:
			f.result.Animations = append(f.result.Animations, AnimationPair{
				FromID:     prevTop,
				ToID:       top.ID(),
				Transition: ctx.transition,
			})
		}
	}
}

// tab emits a wrapper surface for the chrome plus the active stack's
// content one level above it. Animation pairing never crosses the
// container boundary, so the content context starts with an empty slot.
func (f *flattener) tab(t *navtree.TabNode, ctx context) {
	if len(t.Stacks) == 0 {
		return
	}
	wrapperID := WrapperID(t.Key)
	f.result.Surfaces = append(f.result.Surfaces, Surface{
		ID:                wrapperID,
		Key:               t.Key,
		Mode:              ModeTabWrapper,
		ZOrder:            ctx.z,
		ParentID:          ctx.parentID,
		PreviousSurfaceID: ctx.prevSibling,
	})

	prevTab, existed := navtree.Find(f.prev, t.Key).(*navtree.TabNode)

	contentCtx := context{
		z:            ctx.z + ZLevelStep,
		parentID:     wrapperID,
		transition:   ctx.transition,
		leafMode:     ModeTabContent,
		leafModeSet:  true,
		suppressAnim: ctx.suppressAnim,
	}
	active := t.Stacks[t.ActiveStackIndex]

	switch {
	case existed && prevTab.ActiveStackIndex != t.ActiveStackIndex:
		// Intra-container switch: the wrapper is stable and must not be
		// torn down, so only the content is invalidated.
		oldLeaf := navtree.ActiveLeaf(prevTab.Stacks[prevTab.ActiveStackIndex])
		newLeaf := navtree.ActiveLeaf(active)
		if oldLeaf != nil && newLeaf != nil && !ctx.suppressAnim {
			f.result.Animations = append(f.result.Animations, AnimationPair{
				FromID:     oldLeaf.Key,
				ToID:       newLeaf.Key,
				Transition: TransitionTabSwitch,
			})
			contentCtx.prevSibling = oldLeaf.Key
		}
		if newLeaf != nil {
			f.result.Caching = append(f.result.Caching, CachingHint{
				SurfaceID:  newLeaf.Key,
				Scope:      CacheContentOnly,
				Invalidate: true,
			})
		}
	case !existed:
		// The container itself is entering (cross-node-type navigation):
		// wrapper and content cache as one unit.
		f.result.Caching = append(f.result.Caching, CachingHint{
			SurfaceID: wrapperID,
			Scope:     CacheUnit,
		})
	}

	f.stack(active, contentCtx)
}

// pane adapts to the window size class: compact behaves like a single-pane
// stack showing only the active role, wider classes show every configured
// role simultaneously under a wrapper.
func (f *flattener) pane(p *navtree.PaneNode, ctx context) {
	if f.size == SizeCompact {
		f.paneAsStack(p, ctx)
		return
	}

	wrapperID := WrapperID(p.Key)
	f.result.Surfaces = append(f.result.Surfaces, Surface{
		ID:                wrapperID,
		Key:               p.Key,
		Mode:              ModePaneWrapper,
		ZOrder:            ctx.z,
		ParentID:          ctx.parentID,
		PreviousSurfaceID: ctx.prevSibling,
	})
	if _, existed := navtree.Find(f.prev, p.Key).(*navtree.PaneNode); !existed {
		f.result.Caching = append(f.result.Caching, CachingHint{
			SurfaceID: wrapperID,
			Scope:     CacheUnit,
		})
	}

	for _, role := range navtree.RoleOrder {
		cfg, ok := p.Panes[role]
		if !ok || cfg.Root == nil {
			continue
		}
		f.node(cfg.Root, context{
			z:            ctx.z + ZLevelStep,
			parentID:     wrapperID,
			transition:   ctx.transition,
			leafMode:     ModePaneContent,
			leafModeSet:  true,
			suppressAnim: true,
		})
	}
}

func (f *flattener) paneAsStack(p *navtree.PaneNode, ctx context) {
	role, cfg, ok := compactRole(p)
	if !ok {
		return
	}

	childCtx := ctx
	childCtx.leafMode = ModePaneAsStack
	childCtx.leafModeSet = true

	// Track the previously shown role for a pop-like animation when the
	// selection moved.
	if prevPane, existed := navtree.Find(f.prev, p.Key).(*navtree.PaneNode); existed {
		if prevRole, prevCfg, shown := compactRole(prevPane); shown && prevRole != role {
			oldLeaf := navtree.ActiveLeaf(prevCfg.Root)
			newLeaf := navtree.ActiveLeaf(cfg.Root)
			if oldLeaf != nil && newLeaf != nil && !ctx.suppressAnim {
				childCtx.prevSibling = oldLeaf.Key
				f.result.Animations = append(f.result.Animations, AnimationPair{
					FromID:     oldLeaf.Key,
					ToID:       newLeaf.Key,
					Transition: TransitionPaneSwitch,
				})
			}
		}
	}

	f.node(cfg.Root, childCtx)
}

// compactRole resolves which role a pane shows at compact width: the
// active role, unless it is configured to hide there, in which case the
// first non-hidden role in role order. A pane whose every role hides
// shows nothing.
func compactRole(p *navtree.PaneNode) (navtree.PaneRole, navtree.PaneConfiguration, bool) {
	if cfg, ok := p.Panes[p.ActiveRole]; ok && cfg.Root != nil && cfg.Adaptation != navtree.AdaptHide {
		return p.ActiveRole, cfg, true
	}
	for _, role := range navtree.RoleOrder {
		cfg, ok := p.Panes[role]
		if !ok || cfg.Root == nil || cfg.Adaptation == navtree.AdaptHide {
			continue
		}
		return role, cfg, true
	}
	return 0, navtree.PaneConfiguration{}, false
}
