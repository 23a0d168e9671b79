package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jermeyyy/quovadis/pkg/flatten"
	"github.com/jermeyyy/quovadis/pkg/navtree"
	"github.com/jermeyyy/quovadis/pkg/persist"
)

type theme struct {
	accent lipgloss.Color
	dim    lipgloss.Color
	border lipgloss.Color
}

func themeByName(name string) theme {
	if name == "light" {
		return theme{accent: lipgloss.Color("25"), dim: lipgloss.Color("245"), border: lipgloss.Color("240")}
	}
	return theme{accent: lipgloss.Color("212"), dim: lipgloss.Color("241"), border: lipgloss.Color("240")}
}

// renderer draws one frame from the flattener's output. Wrapper surfaces
// get chrome (tab bar, pane split), content surfaces get their
// destination's body.
type renderer struct {
	width  int
	height int
	th     theme
	cache  *renderCache
	tree   navtree.Node
}

func (r renderer) render(res flatten.Result) string {
	var top *flatten.Surface
	depth := 0
	for i := range res.Surfaces {
		s := &res.Surfaces[i]
		if s.ParentID != "" {
			continue
		}
		// Later root-level surfaces sit above earlier ones.
		top = s
		depth++
	}
	if top == nil {
		return lipgloss.Place(r.width, r.height, lipgloss.Center, lipgloss.Center, "nothing to show")
	}

	body := r.unit(*top, res, r.width)
	if depth > 1 {
		under := lipgloss.NewStyle().Foreground(r.th.dim).
			Render(fmt.Sprintf("(%d screen(s) underneath)", depth-1))
		body = lipgloss.JoinVertical(lipgloss.Left, body, under)
	}
	return body
}

// unit renders one surface and its children at the given width.
func (r renderer) unit(s flatten.Surface, res flatten.Result, width int) string {
	children := childrenOf(s.ID, res)

	switch s.Mode {
	case flatten.ModeTabWrapper:
		bar := r.tabBar(s.Key)
		var content string
		if len(children) > 0 {
			content = r.unit(children[0], res, width)
		}
		return lipgloss.JoinVertical(lipgloss.Left, bar, content)

	case flatten.ModePaneWrapper:
		if len(children) == 0 {
			return ""
		}
		cols := make([]string, 0, len(children))
		colWidth := width/len(children) - 1
		for _, c := range children {
			cols = append(cols, r.unit(c, res, colWidth))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	default:
		return r.screenBody(s, width)
	}
}

func childrenOf(id string, res flatten.Result) []flatten.Surface {
	var out []flatten.Surface
	for _, s := range res.Surfaces {
		if s.ParentID == id {
			out = append(out, s)
		}
	}
	return out
}

// tabBar draws the tab labels for the wrapper's tab node, with the active
// tab highlighted.
func (r renderer) tabBar(key string) string {
	tab, ok := navtree.Find(r.tree, key).(*navtree.TabNode)
	if !ok {
		return ""
	}

	active := lipgloss.NewStyle().Foreground(r.th.accent).Bold(true).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(r.th.dim).Padding(0, 1)

	parts := make([]string, 0, len(tab.Stacks))
	for i, stack := range tab.Stacks {
		label := tabLabel(stack)
		if i == tab.ActiveStackIndex {
			parts = append(parts, active.Render("["+label+"]"))
		} else {
			parts = append(parts, inactive.Render(" "+label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// tabLabel names a tab after the route at the bottom of its stack.
func tabLabel(stack *navtree.StackNode) string {
	if len(stack.Children) == 0 {
		return "empty"
	}
	if screen, ok := stack.Children[0].(*navtree.ScreenNode); ok && screen.Destination != nil {
		return screen.Destination.RouteID()
	}
	return stack.Children[0].ID()
}

func (r renderer) screenBody(s flatten.Surface, width int) string {
	if body, ok := r.cache.get(s.ID); ok {
		return body
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.th.border).
		Padding(0, 1).
		Width(max(width-2, 10))

	title := lipgloss.NewStyle().Foreground(r.th.accent).Bold(true).Render(destTitle(s.Destination))
	meta := lipgloss.NewStyle().Foreground(r.th.dim).
		Render(fmt.Sprintf("%s z=%d", s.Mode, s.ZOrder))

	body := box.Render(strings.Join([]string{title, destBody(s.Destination), meta}, "\n\n"))
	r.cache.put(s.ID, body)
	return body
}

func destTitle(d navtree.Destination) string {
	switch v := d.(type) {
	case HomeDest:
		return "Quo Vadis Mail"
	case ThreadDest:
		return "Thread: " + v.Subject
	case ReaderDest:
		if v.Item != "" {
			return "Reading " + v.Item
		}
		return "Reader"
	case ComposeDest:
		if v.To != "" {
			return "Compose to " + v.To
		}
		return "Compose"
	case persist.BasicDestination:
		if v.Route == "" {
			return "untitled"
		}
		return v.Route
	case nil:
		return "untitled"
	}
	route := d.RouteID()
	if route == "" {
		return "untitled"
	}
	return strings.ToUpper(route[:1]) + route[1:]
}

func destBody(d navtree.Destination) string {
	if d == nil {
		return ""
	}
	switch d.RouteID() {
	case RouteHome:
		return "Press enter to open your mail.\nPress c to compose from anywhere."
	case RouteInbox:
		return "12 unread messages.\nPress enter to open the first thread."
	case RouteArchive:
		return "348 archived messages."
	case RouteSettings:
		return "Notifications: on\nSignature: sent from quovadis"
	case RouteThread:
		return "Hi,\n\njust checking in about the release.\nPress enter for the split view."
	case RouteFolders:
		return "inbox\nstarred\ndrafts\nspam"
	case RouteReader:
		return "Select a folder on the left.\nPress p to focus the reader."
	case RouteCompose:
		return "To: ...\nSubject: ...\n\n(esc discards)"
	}
	return "route " + d.RouteID()
}
