// Package persist round-trips navigation trees through a plain-data YAML
// document, so callers can save a snapshot on shutdown and restore it on
// launch. Node structure marshals directly; destinations round-trip
// through caller-registered codecs keyed by route ID, falling back to a
// generic route+data form.
package persist

import (
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jermeyyy/quovadis/pkg/navtree"
)

// Codec converts one route's destinations to and from plain data.
type Codec interface {
	Encode(dest navtree.Destination) (map[string]any, error)
	Decode(route string, data map[string]any) (navtree.Destination, error)
}

// FuncCodec adapts a pair of functions to the Codec interface.
type FuncCodec struct {
	EncodeFunc func(dest navtree.Destination) (map[string]any, error)
	DecodeFunc func(route string, data map[string]any) (navtree.Destination, error)
}

func (c FuncCodec) Encode(dest navtree.Destination) (map[string]any, error) {
	return c.EncodeFunc(dest)
}

func (c FuncCodec) Decode(route string, data map[string]any) (navtree.Destination, error) {
	return c.DecodeFunc(route, data)
}

// BasicDestination is the fallback destination form for routes without a
// registered codec: the route plus its raw payload.
type BasicDestination struct {
	Route string
	Data  map[string]any
}

// RouteID implements navtree.Destination.
func (d BasicDestination) RouteID() string { return d.Route }

// Codecs is a registry of destination codecs keyed by route ID. The zero
// value is usable and decodes everything into BasicDestination.
type Codecs struct {
	mu      sync.RWMutex
	byRoute map[string]Codec
}

// Register installs a codec for one route.
func (c *Codecs) Register(routeID string, codec Codec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.byRoute == nil {
		c.byRoute = make(map[string]Codec)
	}
	c.byRoute[routeID] = codec
}

func (c *Codecs) lookup(routeID string) (Codec, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	codec, ok := c.byRoute[routeID]
	return codec, ok
}

// Document node kinds.
const (
	kindScreen = "screen"
	kindStack  = "stack"
	kindTab    = "tab"
	kindPane   = "pane"
)

type nodeDoc struct {
	Kind     string         `yaml:"kind"`
	Key      string         `yaml:"key"`
	Route    string         `yaml:"route,omitempty"`
	Data     map[string]any `yaml:"data,omitempty"`
	Children []*nodeDoc     `yaml:"children,omitempty"`
	Stacks   []*nodeDoc     `yaml:"stacks,omitempty"`
	Active   int            `yaml:"active,omitempty"`
	Panes    []*paneDoc     `yaml:"panes,omitempty"`
	Role     string         `yaml:"role,omitempty"`
}

type paneDoc struct {
	Role       string   `yaml:"role"`
	Adaptation string   `yaml:"adaptation,omitempty"`
	Root       *nodeDoc `yaml:"root"`
}

// Save writes the tree as YAML.
func Save(w io.Writer, root navtree.Node, codecs *Codecs) error {
	doc, err := encode(root, codecs)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return enc.Close()
}

// Load reads a YAML tree and validates its invariants before returning.
func Load(r io.Reader, codecs *Codecs) (navtree.Node, error) {
	var doc nodeDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	root, err := decode(&doc, codecs)
	if err != nil {
		return nil, err
	}
	if err := navtree.Validate(root); err != nil {
		return nil, fmt.Errorf("restored tree is invalid: %w", err)
	}
	return root, nil
}

func encode(n navtree.Node, codecs *Codecs) (*nodeDoc, error) {
	switch v := n.(type) {
	case *navtree.ScreenNode:
		route := v.Destination.RouteID()
		data := map[string]any(nil)
		if codec, ok := codecs.lookup(route); ok {
			var err error
			data, err = codec.Encode(v.Destination)
			if err != nil {
				return nil, fmt.Errorf("encode destination %q: %w", route, err)
			}
		} else if basic, ok := v.Destination.(BasicDestination); ok {
			data = basic.Data
		}
		return &nodeDoc{Kind: kindScreen, Key: v.Key, Route: route, Data: data}, nil

	case *navtree.StackNode:
		doc := &nodeDoc{Kind: kindStack, Key: v.Key}
		for _, c := range v.Children {
			child, err := encode(c, codecs)
			if err != nil {
				return nil, err
			}
			doc.Children = append(doc.Children, child)
		}
		return doc, nil

	case *navtree.TabNode:
		doc := &nodeDoc{Kind: kindTab, Key: v.Key, Route: v.Route, Active: v.ActiveStackIndex}
		for _, s := range v.Stacks {
			stack, err := encode(s, codecs)
			if err != nil {
				return nil, err
			}
			doc.Stacks = append(doc.Stacks, stack)
		}
		return doc, nil

	case *navtree.PaneNode:
		doc := &nodeDoc{Kind: kindPane, Key: v.Key, Route: v.Route, Role: v.ActiveRole.String()}
		for _, role := range navtree.RoleOrder {
			cfg, ok := v.Panes[role]
			if !ok {
				continue
			}
			root, err := encode(cfg.Root, codecs)
			if err != nil {
				return nil, err
			}
			doc.Panes = append(doc.Panes, &paneDoc{
				Role:       role.String(),
				Adaptation: adaptationName(cfg.Adaptation),
				Root:       root,
			})
		}
		return doc, nil
	}
	return nil, fmt.Errorf("unknown node type %T", n)
}

func decode(doc *nodeDoc, codecs *Codecs) (navtree.Node, error) {
	switch doc.Kind {
	case kindScreen:
		dest, err := decodeDestination(doc, codecs)
		if err != nil {
			return nil, err
		}
		return navtree.NewScreen(doc.Key, dest), nil

	case kindStack:
		children := make([]navtree.Node, 0, len(doc.Children))
		for _, c := range doc.Children {
			child, err := decode(c, codecs)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return navtree.NewStack(doc.Key, children...), nil

	case kindTab:
		stacks := make([]*navtree.StackNode, 0, len(doc.Stacks))
		for _, s := range doc.Stacks {
			node, err := decode(s, codecs)
			if err != nil {
				return nil, err
			}
			stack, ok := node.(*navtree.StackNode)
			if !ok {
				return nil, fmt.Errorf("tab %q holds a %q, want stack", doc.Key, s.Kind)
			}
			stacks = append(stacks, stack)
		}
		tab := navtree.NewTab(doc.Key, doc.Active, stacks...)
		tab.Route = doc.Route
		return tab, nil

	case kindPane:
		panes := make(map[navtree.PaneRole]navtree.PaneConfiguration, len(doc.Panes))
		for _, p := range doc.Panes {
			role, err := parseRole(p.Role)
			if err != nil {
				return nil, err
			}
			root, err := decode(p.Root, codecs)
			if err != nil {
				return nil, err
			}
			panes[role] = navtree.PaneConfiguration{
				Root:       root,
				Adaptation: parseAdaptation(p.Adaptation),
			}
		}
		active, err := parseRole(doc.Role)
		if err != nil {
			return nil, err
		}
		pane := navtree.NewPane(doc.Key, active, panes)
		pane.Route = doc.Route
		return pane, nil
	}
	return nil, fmt.Errorf("unknown node kind %q", doc.Kind)
}

func decodeDestination(doc *nodeDoc, codecs *Codecs) (navtree.Destination, error) {
	if codec, ok := codecs.lookup(doc.Route); ok {
		dest, err := codec.Decode(doc.Route, doc.Data)
		if err != nil {
			return nil, fmt.Errorf("decode destination %q: %w", doc.Route, err)
		}
		return dest, nil
	}
	return BasicDestination{Route: doc.Route, Data: doc.Data}, nil
}

func adaptationName(a navtree.PaneAdaptation) string {
	if a == navtree.AdaptHide {
		return "hide"
	}
	return "stack"
}

func parseAdaptation(s string) navtree.PaneAdaptation {
	if s == "hide" {
		return navtree.AdaptHide
	}
	return navtree.AdaptToStack
}

func parseRole(s string) (navtree.PaneRole, error) {
	switch s {
	case "primary", "":
		return navtree.RolePrimary, nil
	case "secondary":
		return navtree.RoleSecondary, nil
	case "extra":
		return navtree.RoleExtra, nil
	}
	return navtree.RolePrimary, fmt.Errorf("unknown pane role %q", s)
}
