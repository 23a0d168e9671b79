// Package demo ships a small mail-flavored TUI that exercises the
// navigation packages end to end: a tab container with per-tab stacks, a
// two-pane split that collapses on narrow terminals, and a compose sheet
// pushed above everything at the root.
package demo

import (
	"fmt"

	"github.com/jermeyyy/quovadis/pkg/navigator"
	"github.com/jermeyyy/quovadis/pkg/navtree"
	"github.com/jermeyyy/quovadis/pkg/persist"
)

// Route IDs used by the demo.
const (
	RouteHome     = "home"
	RouteMail     = "mail"
	RouteInbox    = "inbox"
	RouteArchive  = "archive"
	RouteSettings = "settings"
	RouteThread   = "thread"
	RouteSplit    = "split"
	RouteFolders  = "folders"
	RouteReader   = "reader"
	RouteCompose  = "compose"
)

// HomeDest is the landing screen.
type HomeDest struct{}

func (HomeDest) RouteID() string { return RouteHome }

// MailDest opens the mail tab container: inbox, archive, and settings
// tabs each backed by their own stack.
type MailDest struct{}

func (MailDest) RouteID() string { return RouteMail }

// InboxDest, ArchiveDest and SettingsDest are the tab roots.
type (
	InboxDest    struct{}
	ArchiveDest  struct{}
	SettingsDest struct{}
)

func (InboxDest) RouteID() string    { return RouteInbox }
func (ArchiveDest) RouteID() string  { return RouteArchive }
func (SettingsDest) RouteID() string { return RouteSettings }

// ThreadDest shows a single mail thread. Pushed onto whatever stack is
// active, usually the inbox tab's.
type ThreadDest struct {
	Subject string
}

func (ThreadDest) RouteID() string { return RouteThread }

// SplitDest opens a folder/reader split. On compact terminals the split
// behaves like a stack with only the active side visible.
type SplitDest struct{}

func (SplitDest) RouteID() string { return RouteSplit }

// FoldersDest and ReaderDest are the two sides of the split.
type (
	FoldersDest struct{}
	ReaderDest  struct {
		Item string
	}
)

func (FoldersDest) RouteID() string { return RouteFolders }
func (ReaderDest) RouteID() string  { return RouteReader }

// ComposeDest is a full-window compose sheet. It is scoped to the root so
// navigating to it from inside the mail tabs pushes above the tab
// container instead of inside the active tab.
type ComposeDest struct {
	To string
}

func (ComposeDest) RouteID() string { return RouteCompose }

// NewRegistry describes how each demo route enters the navigation tree.
func NewRegistry() *navigator.Registry {
	reg := navigator.NewRegistry()

	reg.Register(RouteMail, navigator.Registration{
		Kind:  navigator.KindTab,
		Build: buildMailTabs,
	})
	reg.Register(RouteSplit, navigator.Registration{
		Kind:  navigator.KindPane,
		Build: buildSplit,
	})
	reg.Register(RouteCompose, navigator.Registration{
		Kind:  navigator.KindScreen,
		Scope: RouteHome,
	})

	// Plain screens need no registration; unregistered routes become
	// screen leaves on the active stack.

	return reg
}

func buildMailTabs(_ navtree.Destination, newKey navigator.KeyFunc) navtree.Node {
	return navtree.NewTab(newKey(), 0,
		navtree.NewStack(newKey(), navtree.NewScreen(newKey(), InboxDest{})),
		navtree.NewStack(newKey(), navtree.NewScreen(newKey(), ArchiveDest{})),
		navtree.NewStack(newKey(), navtree.NewScreen(newKey(), SettingsDest{})),
	)
}

func buildSplit(_ navtree.Destination, newKey navigator.KeyFunc) navtree.Node {
	return navtree.NewPane(newKey(), navtree.RolePrimary, map[navtree.PaneRole]navtree.PaneConfiguration{
		navtree.RolePrimary: {
			Root:       navtree.NewStack(newKey(), navtree.NewScreen(newKey(), FoldersDest{})),
			Adaptation: navtree.AdaptToStack,
		},
		navtree.RoleSecondary: {
			Root:       navtree.NewStack(newKey(), navtree.NewScreen(newKey(), ReaderDest{})),
			Adaptation: navtree.AdaptToStack,
		},
	})
}

// DestinationFor builds a typed demo destination for a route. Scenario
// replay uses it to turn plain route+data pairs into the same values the
// interactive app navigates with. Unknown routes fall back to the generic
// form.
func DestinationFor(route string, data map[string]any) navtree.Destination {
	str := func(k string) string {
		v, _ := data[k].(string)
		return v
	}

	switch route {
	case RouteHome:
		return HomeDest{}
	case RouteMail:
		return MailDest{}
	case RouteInbox:
		return InboxDest{}
	case RouteArchive:
		return ArchiveDest{}
	case RouteSettings:
		return SettingsDest{}
	case RouteThread:
		return ThreadDest{Subject: str("subject")}
	case RouteSplit:
		return SplitDest{}
	case RouteFolders:
		return FoldersDest{}
	case RouteReader:
		return ReaderDest{Item: str("item")}
	case RouteCompose:
		return ComposeDest{To: str("to")}
	}
	return persist.BasicDestination{Route: route, Data: data}
}

// NewCodecs registers persistence codecs for the demo destinations, so a
// saved tree restores with typed destinations instead of the generic
// fallback.
func NewCodecs() *persist.Codecs {
	codecs := &persist.Codecs{}

	codecs.Register(RouteThread, persist.FuncCodec{
		EncodeFunc: func(dest navtree.Destination) (map[string]any, error) {
			d, ok := dest.(ThreadDest)
			if !ok {
				return nil, fmt.Errorf("expected ThreadDest, got %T", dest)
			}
			return map[string]any{"subject": d.Subject}, nil
		},
		DecodeFunc: func(_ string, data map[string]any) (navtree.Destination, error) {
			subject, _ := data["subject"].(string)
			return ThreadDest{Subject: subject}, nil
		},
	})

	codecs.Register(RouteReader, persist.FuncCodec{
		EncodeFunc: func(dest navtree.Destination) (map[string]any, error) {
			d, ok := dest.(ReaderDest)
			if !ok {
				return nil, fmt.Errorf("expected ReaderDest, got %T", dest)
			}
			return map[string]any{"item": d.Item}, nil
		},
		DecodeFunc: func(_ string, data map[string]any) (navtree.Destination, error) {
			item, _ := data["item"].(string)
			return ReaderDest{Item: item}, nil
		},
	})

	codecs.Register(RouteCompose, persist.FuncCodec{
		EncodeFunc: func(dest navtree.Destination) (map[string]any, error) {
			d, ok := dest.(ComposeDest)
			if !ok {
				return nil, fmt.Errorf("expected ComposeDest, got %T", dest)
			}
			return map[string]any{"to": d.To}, nil
		},
		DecodeFunc: func(_ string, data map[string]any) (navtree.Destination, error) {
			to, _ := data["to"].(string)
			return ComposeDest{To: to}, nil
		},
	})

	simple := map[string]navtree.Destination{
		RouteHome:     HomeDest{},
		RouteInbox:    InboxDest{},
		RouteArchive:  ArchiveDest{},
		RouteSettings: SettingsDest{},
		RouteFolders:  FoldersDest{},
	}
	for route, dest := range simple {
		codecs.Register(route, persist.FuncCodec{
			EncodeFunc: func(navtree.Destination) (map[string]any, error) {
				return nil, nil
			},
			DecodeFunc: func(string, map[string]any) (navtree.Destination, error) {
				return dest, nil
			},
		})
	}

	return codecs
}
