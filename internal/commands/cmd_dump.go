package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/jermeyyy/quovadis/internal/demo"
	"github.com/jermeyyy/quovadis/pkg/flatten"
	"github.com/jermeyyy/quovadis/pkg/iojson"
	"github.com/jermeyyy/quovadis/pkg/navigator"
	"github.com/jermeyyy/quovadis/pkg/navtree"
	"github.com/jermeyyy/quovadis/pkg/persist"
)

// Scenario is a replayable navigation script: a window size class, an
// optional starting tree in the persist format, and a list of operations.
// Without a tree the replay starts at the demo's home screen.
type Scenario struct {
	Window string         `yaml:"window"`
	Tree   yaml.Node      `yaml:"tree"`
	Steps  []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one navigation operation.
type ScenarioStep struct {
	Op        string         `yaml:"op"`
	Route     string         `yaml:"route"`
	Data      map[string]any `yaml:"data"`
	Index     int            `yaml:"index"`
	Role      string         `yaml:"role"`
	Clear     string         `yaml:"clear"`
	Inclusive bool           `yaml:"inclusive"`
}

// DumpReport is the JSON form of a replayed scenario.
type DumpReport struct {
	Window string      `json:"window"`
	Frames []DumpFrame `json:"frames"`
}

// DumpFrame is the flattened output after one step.
type DumpFrame struct {
	Step       string          `json:"step"`
	Transition string          `json:"transition"`
	Surfaces   []DumpSurface   `json:"surfaces"`
	Animations []DumpAnimation `json:"animations,omitempty"`
	Caching    []DumpCaching   `json:"caching,omitempty"`
}

type DumpSurface struct {
	ID     string `json:"id"`
	Route  string `json:"route,omitempty"`
	Mode   string `json:"mode"`
	Z      int    `json:"z"`
	Parent string `json:"parent,omitempty"`
}

type DumpAnimation struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Transition string `json:"transition"`
}

type DumpCaching struct {
	Surface    string `json:"surface"`
	Scope      string `json:"scope"`
	Invalidate bool   `json:"invalidate,omitempty"`
}

type DumpCmd struct {
	flags *Flags

	// flags
	file       string
	jsonOutput bool
}

// NewDumpCmd creates a new dump command
func NewDumpCmd(flags *Flags) *DumpCmd {
	return &DumpCmd{flags: flags}
}

// Register adds the dump command to the application
func (cmd *DumpCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dump",
		Usage:     "Replay a navigation scenario and print the surfaces per step",
		UsageText: "quovadis dump -f scenario.yaml [--json]",
		Description: `Reads a YAML scenario, applies each navigation step to a fresh tree, and
prints the flattened surfaces after every step. Useful for debugging why a
sequence of operations produces a particular surface layout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to scenario file (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DumpCmd) run(_ context.Context, _ *cli.Command) error {
	scenario, err := cmd.readScenario()
	if err != nil {
		if cmd.jsonOutput {
			_ = iojson.WriteError(os.Stderr, "read scenario", map[string]any{"error": err.Error()})
		}
		return err
	}

	size, err := parseWindow(scenario.Window)
	if err != nil {
		return err
	}

	report, err := replay(scenario, size)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.Write(os.Stdout, os.Stderr, report)
	}

	printReport(os.Stdout, report)
	return nil
}

func (cmd *DumpCmd) readScenario() (*Scenario, error) {
	var reader io.Reader

	if cmd.file != "" {
		f, err := os.Open(cmd.file)
		if err != nil {
			return nil, fmt.Errorf("open scenario: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		stat, err := os.Stdin.Stat()
		if err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe a scenario")
		}
		reader = os.Stdin
	}

	var scenario Scenario
	if err := yaml.NewDecoder(reader).Decode(&scenario); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario has no steps")
	}

	return &scenario, nil
}

func parseWindow(s string) (flatten.WindowSizeClass, error) {
	switch s {
	case "", "expanded":
		return flatten.SizeExpanded, nil
	case "medium":
		return flatten.SizeMedium, nil
	case "compact":
		return flatten.SizeCompact, nil
	}
	return 0, fmt.Errorf("unknown window size class %q", s)
}

// replay runs every step against a navigator seeded with the scenario's
// tree, or the demo's home screen, and flattens after each one.
func replay(scenario *Scenario, size flatten.WindowSizeClass) (*DumpReport, error) {
	root, err := scenarioRoot(scenario)
	if err != nil {
		return nil, err
	}
	nav := navigator.New(root, navigator.WithRegistry(demo.NewRegistry()))

	report := &DumpReport{Window: size.String()}

	prev := nav.State()
	for i, step := range scenario.Steps {
		if err := apply(nav, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}

		cur := nav.State()
		res := flatten.Flatten(cur, prev, size)
		prev = cur

		report.Frames = append(report.Frames, frame(step, res))
	}

	return report, nil
}

// scenarioRoot decodes the optional starting tree by re-marshaling the
// raw YAML node through the persist format.
func scenarioRoot(scenario *Scenario) (navtree.Node, error) {
	if scenario.Tree.IsZero() {
		return navtree.NewStack("root", navtree.NewScreen("home", demo.HomeDest{})), nil
	}

	raw, err := yaml.Marshal(&scenario.Tree)
	if err != nil {
		return nil, fmt.Errorf("re-encode tree: %w", err)
	}

	root, err := persist.Load(bytes.NewReader(raw), demo.NewCodecs())
	if err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return root, nil
}

func apply(nav *navigator.Navigator, step ScenarioStep) error {
	switch step.Op {
	case "navigate":
		nav.Navigate(demo.DestinationFor(step.Route, step.Data))
	case "back":
		nav.NavigateBack()
	case "replace":
		nav.NavigateAndReplace(demo.DestinationFor(step.Route, step.Data))
	case "clear-all":
		nav.NavigateAndClearAll(demo.DestinationFor(step.Route, step.Data))
	case "clear-to":
		nav.NavigateAndClearTo(demo.DestinationFor(step.Route, step.Data), step.Clear, step.Inclusive)
	case "switch-tab":
		nav.SwitchTab(step.Index)
	case "switch-pane":
		role, err := parseRole(step.Role)
		if err != nil {
			return err
		}
		nav.SwitchPane(role)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func parseRole(s string) (navtree.PaneRole, error) {
	switch s {
	case "primary":
		return navtree.RolePrimary, nil
	case "secondary":
		return navtree.RoleSecondary, nil
	case "extra":
		return navtree.RoleExtra, nil
	}
	return 0, fmt.Errorf("unknown pane role %q", s)
}

func frame(step ScenarioStep, res flatten.Result) DumpFrame {
	f := DumpFrame{
		Step:       stepLabel(step),
		Transition: res.Transition.String(),
	}

	for _, c := range res.Caching {
		f.Caching = append(f.Caching, DumpCaching{
			Surface:    c.SurfaceID,
			Scope:      c.Scope.String(),
			Invalidate: c.Invalidate,
		})
	}

	for _, s := range res.Surfaces {
		route := ""
		if s.Destination != nil {
			route = s.Destination.RouteID()
		}
		f.Surfaces = append(f.Surfaces, DumpSurface{
			ID:     s.ID,
			Route:  route,
			Mode:   s.Mode.String(),
			Z:      s.ZOrder,
			Parent: s.ParentID,
		})
	}

	for _, a := range res.Animations {
		f.Animations = append(f.Animations, DumpAnimation{
			From:       a.FromID,
			To:         a.ToID,
			Transition: a.Transition.String(),
		})
	}

	return f
}

func stepLabel(step ScenarioStep) string {
	if step.Route != "" {
		return step.Op + " " + step.Route
	}
	return step.Op
}

func printReport(w io.Writer, report *DumpReport) {
	for i, f := range report.Frames {
		fmt.Fprintf(w, "step %d: %s (%s)\n", i+1, f.Step, f.Transition)

		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  Z\tID\tROUTE\tMODE\tPARENT")
		for _, s := range f.Surfaces {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", s.Z, s.ID, s.Route, s.Mode, s.Parent)
		}
		tw.Flush()

		for _, a := range f.Animations {
			fmt.Fprintf(w, "  animate %s: %s -> %s\n", a.Transition, a.From, a.To)
		}
		for _, c := range f.Caching {
			verb := "cache"
			if c.Invalidate {
				verb = "invalidate"
			}
			fmt.Fprintf(w, "  %s %s (%s)\n", verb, c.Surface, c.Scope)
		}
		fmt.Fprintln(w)
	}
}
