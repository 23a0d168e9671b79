package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/jermeyyy/quovadis/internal/demo"
	"github.com/jermeyyy/quovadis/pkg/navtree"
	"github.com/jermeyyy/quovadis/pkg/persist"
)

type DemoCmd struct {
	flags *Flags

	// flags
	stateFile string
}

// NewDemoCmd creates a new demo command
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Flags returns the demo-specific flags for registration on the root command
func (cmd *DemoCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "state",
			Usage:       "path to the navigation state file (overrides config)",
			Sources:     cli.EnvVars("QUOVADIS_STATE"),
			Destination: &cmd.stateFile,
		},
	}
}

// Run executes the demo TUI. Exported for use as default command.
func (cmd *DemoCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *DemoCmd) run(_ context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	codecs := demo.NewCodecs()

	// Flag wins over config; default to the XDG data path so quitting
	// and relaunching picks up where the user left off.
	stateFile := cmd.stateFile
	if stateFile == "" {
		stateFile = cfg.State.File
	}
	if stateFile == "" {
		stateFile = DefaultStateFile()
	}

	var root navtree.Node
	if stateFile != "" && cfg.State.Restore {
		restored, err := loadState(stateFile, codecs)
		if err != nil {
			// A corrupt or stale snapshot shouldn't keep the app from
			// starting.
			log.Warn().Err(err).Str("file", stateFile).Msg("discarding saved navigation state")
		} else if restored != nil {
			root = restored
			log.Info().Str("file", stateFile).Msg("restored navigation state")
		}
	}

	app := demo.NewApp(cfg, root, log.Logger)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run demo: %w", err)
	}

	if stateFile != "" {
		if err := saveState(stateFile, app.Navigator().State(), codecs); err != nil {
			return fmt.Errorf("save navigation state: %w", err)
		}
		log.Info().Str("file", stateFile).Msg("saved navigation state")
	}

	return nil
}

func loadState(path string, codecs *persist.Codecs) (navtree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return persist.Load(f, codecs)
}

func saveState(path string, root navtree.Node, codecs *persist.Codecs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return persist.Save(f, root, codecs)
}
