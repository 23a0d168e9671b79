package demo

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jermeyyy/quovadis/internal/core/config"
	"github.com/jermeyyy/quovadis/pkg/flatten"
	"github.com/jermeyyy/quovadis/pkg/navigator"
	"github.com/jermeyyy/quovadis/pkg/navtree"
)

type keyMap struct {
	Open    key.Binding
	Back    key.Binding
	Compose key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	NextTab key.Binding
	Pane    key.Binding
	Home    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Compose: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compose")),
		Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "inbox tab")),
		Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "archive tab")),
		Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "settings tab")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Pane:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "switch pane")),
		Home:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "back to home")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Compose, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Back, k.Compose, k.Home},
		{k.Tab1, k.Tab2, k.Tab3, k.NextTab, k.Pane},
		{k.Help, k.Quit},
	}
}

// App is the demo's bubbletea model. It owns the navigator, reflattens
// after every navigation, and renders the resulting surfaces.
type App struct {
	cfg    *config.Config
	nav    *navigator.Navigator
	logger zerolog.Logger

	keys  keyMap
	help  help.Model
	cache *renderCache

	width  int
	height int

	prev   navtree.Node
	result flatten.Result
}

// NewApp wires a navigator for the demo routes and flattens the initial
// tree. The root may come from a restored snapshot; nil starts at home.
func NewApp(cfg *config.Config, root navtree.Node, logger zerolog.Logger) *App {
	if root == nil {
		root = navtree.NewStack("root", navtree.NewScreen("home", HomeDest{}))
	}

	nav := navigator.New(root, navigator.WithRegistry(NewRegistry()))
	navigator.RegisterDebugLogger(nav, logger)

	a := &App{
		cfg:    cfg,
		nav:    nav,
		logger: logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		cache:  newRenderCache(),
		width:  80,
		height: 24,
	}
	a.reflatten()
	return a
}

// Navigator exposes the app's navigator so the command layer can persist
// its state after the program exits.
func (a *App) Navigator() *navigator.Navigator { return a.nav }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		// Bodies are wrapped to the terminal width, so nothing cached
		// survives a resize.
		a.cache.sweep(map[string]struct{}{})
		a.reflatten()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Back):
		if !a.nav.NavigateBack() {
			return a, tea.Quit
		}

	case key.Matches(msg, a.keys.Open):
		a.open()

	case key.Matches(msg, a.keys.Compose):
		a.nav.Navigate(ComposeDest{})

	case key.Matches(msg, a.keys.Tab1):
		a.nav.SwitchTab(0)
	case key.Matches(msg, a.keys.Tab2):
		a.nav.SwitchTab(1)
	case key.Matches(msg, a.keys.Tab3):
		a.nav.SwitchTab(2)

	case key.Matches(msg, a.keys.NextTab):
		a.nextTab()

	case key.Matches(msg, a.keys.Pane):
		a.togglePane()

	case key.Matches(msg, a.keys.Home):
		a.nav.NavigateAndClearTo(HomeDest{}, RouteHome, true)

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	default:
		return a, nil
	}

	a.reflatten()
	return a, nil
}

// open pushes a deeper destination depending on where the user is.
func (a *App) open() {
	cur := a.nav.CurrentDestination()
	if cur == nil {
		return
	}
	switch cur.RouteID() {
	case RouteHome:
		a.nav.Navigate(MailDest{})
	case RouteInbox, RouteArchive:
		a.nav.Navigate(ThreadDest{Subject: "release checkin"})
	case RouteThread:
		a.nav.Navigate(SplitDest{})
	case RouteFolders:
		a.nav.Navigate(ReaderDest{Item: "starred"})
	case RouteSettings:
		a.nav.Navigate(ThreadDest{Subject: "account notices"})
	}
}

// nextTab advances the innermost active tab container.
func (a *App) nextTab() {
	var tab *navtree.TabNode
	for _, n := range a.nav.ActivePath() {
		if t, ok := n.(*navtree.TabNode); ok {
			tab = t
		}
	}
	if tab != nil {
		a.nav.SwitchTab((tab.ActiveStackIndex + 1) % len(tab.Stacks))
	}
}

// togglePane flips between the primary and secondary split roles.
func (a *App) togglePane() {
	var pane *navtree.PaneNode
	for _, n := range a.nav.ActivePath() {
		if p, ok := n.(*navtree.PaneNode); ok {
			pane = p
		}
	}
	if pane == nil {
		return
	}
	next := navtree.RoleSecondary
	if pane.ActiveRole == navtree.RoleSecondary {
		next = navtree.RolePrimary
	}
	a.nav.SwitchPane(next)
}

func (a *App) sizeClass() flatten.WindowSizeClass {
	switch {
	case a.width <= a.cfg.Layout.CompactMaxWidth:
		return flatten.SizeCompact
	case a.width >= a.cfg.Layout.ExpandedMinWidth:
		return flatten.SizeExpanded
	}
	return flatten.SizeMedium
}

// reflatten projects the current tree against the previous one and
// applies the frame's caching hints.
func (a *App) reflatten() {
	cur := a.nav.State()
	res := flatten.Flatten(cur, a.prev, a.sizeClass())

	a.cache.apply(res.Caching)
	live := make(map[string]struct{}, len(res.Surfaces))
	for _, s := range res.Surfaces {
		live[s.ID] = struct{}{}
	}
	a.cache.sweep(live)

	a.prev = cur
	a.result = res
}

func (a *App) View() string {
	r := renderer{
		width:  a.width,
		height: a.height,
		th:     themeByName(a.cfg.Theme),
		cache:  a.cache,
		tree:   a.nav.State(),
	}

	body := r.render(a.result)

	status := lipgloss.NewStyle().Foreground(r.th.dim).Render(fmt.Sprintf(
		"%s · %d surface(s) · %s · cache %d",
		a.sizeClass(), len(a.result.Surfaces), a.result.Transition, a.cache.len(),
	))

	return lipgloss.JoinVertical(lipgloss.Left, body, status, a.help.View(a.keys))
}
