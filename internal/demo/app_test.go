package demo

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jermeyyy/quovadis/internal/core/config"
	"github.com/jermeyyy/quovadis/pkg/flatten"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	return NewApp(&cfg, nil, zerolog.Nop())
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAppSizeClass(t *testing.T) {
	a := newTestApp(t)

	a.width = 60
	assert.Equal(t, flatten.SizeCompact, a.sizeClass())

	a.width = 100
	assert.Equal(t, flatten.SizeMedium, a.sizeClass())

	a.width = 160
	assert.Equal(t, flatten.SizeExpanded, a.sizeClass())
}

func TestAppOpensMailThenThread(t *testing.T) {
	a := newTestApp(t)

	require.Equal(t, RouteHome, a.nav.CurrentDestination().RouteID())

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, RouteInbox, a.nav.CurrentDestination().RouteID())

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, RouteThread, a.nav.CurrentDestination().RouteID())

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, RouteInbox, a.nav.CurrentDestination().RouteID())
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	a.Update(keyPress('2'))
	assert.Equal(t, RouteArchive, a.nav.CurrentDestination().RouteID())

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, RouteSettings, a.nav.CurrentDestination().RouteID())

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, RouteInbox, a.nav.CurrentDestination().RouteID())
}

func TestAppComposeLandsAboveTabs(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(keyPress('c'))

	assert.Equal(t, RouteCompose, a.nav.CurrentDestination().RouteID())

	// Backing out of compose returns to the tabs, not an inner stack
	// entry underneath it.
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, RouteInbox, a.nav.CurrentDestination().RouteID())
}

func TestAppBackFromRootQuits(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppViewRendersSurfaces(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := a.View()
	assert.Contains(t, view, "Quo Vadis Mail")

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = a.View()
	assert.True(t, strings.Contains(view, "inbox"))
}

func TestAppReflattenTracksTransitions(t *testing.T) {
	a := newTestApp(t)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, flatten.TransitionPush, a.result.Transition)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, flatten.TransitionPop, a.result.Transition)
}
