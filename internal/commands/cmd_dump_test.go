package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jermeyyy/quovadis/pkg/flatten"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    flatten.WindowSizeClass
		wantErr bool
	}{
		{in: "", want: flatten.SizeExpanded},
		{in: "expanded", want: flatten.SizeExpanded},
		{in: "medium", want: flatten.SizeMedium},
		{in: "compact", want: flatten.SizeCompact},
		{in: "phone", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseWindow(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestReplayScenario(t *testing.T) {
	scenario := &Scenario{
		Steps: []ScenarioStep{
			{Op: "navigate", Route: "mail"},
			{Op: "navigate", Route: "thread", Data: map[string]any{"subject": "hi"}},
			{Op: "switch-tab", Index: 1},
			{Op: "back"},
		},
	}

	report, err := replay(scenario, flatten.SizeExpanded)
	require.NoError(t, err)
	require.Len(t, report.Frames, 4)

	assert.Equal(t, "push", report.Frames[0].Transition)
	assert.Equal(t, "push", report.Frames[1].Transition)
	assert.Equal(t, "tab-switch", report.Frames[2].Transition)

	// The second frame's top surface is the pushed thread.
	last := report.Frames[1].Surfaces[len(report.Frames[1].Surfaces)-1]
	assert.Equal(t, "thread", last.Route)

	// Switching tabs invalidates the content cache of the tab wrapper.
	require.NotEmpty(t, report.Frames[2].Caching)
	assert.True(t, report.Frames[2].Caching[0].Invalidate)
}

func TestReplayWithInlineTree(t *testing.T) {
	src := `
window: compact
tree:
  kind: stack
  key: root
  children:
    - kind: screen
      key: s1
      route: inbox
    - kind: screen
      key: s2
      route: thread
      data:
        subject: standup
steps:
  - op: back
`
	var scenario Scenario
	require.NoError(t, yaml.Unmarshal([]byte(src), &scenario))

	report, err := replay(&scenario, flatten.SizeCompact)
	require.NoError(t, err)
	require.Len(t, report.Frames, 1)

	assert.Equal(t, "pop", report.Frames[0].Transition)
	surfaces := report.Frames[0].Surfaces
	require.NotEmpty(t, surfaces)
	assert.Equal(t, "inbox", surfaces[len(surfaces)-1].Route)
}

func TestReplayUnknownOp(t *testing.T) {
	scenario := &Scenario{Steps: []ScenarioStep{{Op: "teleport"}}}

	_, err := replay(scenario, flatten.SizeExpanded)
	assert.ErrorContains(t, err, "unknown op")
}

func TestPrintReport(t *testing.T) {
	report := &DumpReport{
		Window: "expanded",
		Frames: []DumpFrame{
			{
				Step:       "navigate mail",
				Transition: "push",
				Surfaces: []DumpSurface{
					{ID: "k1#wrapper", Mode: "tab-wrapper", Z: 0},
					{ID: "k4", Route: "inbox", Mode: "tab-content", Z: 100, Parent: "k1#wrapper"},
				},
			},
		},
	}

	var buf bytes.Buffer
	printReport(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "step 1: navigate mail (push)")
	assert.Contains(t, out, "inbox")
}
