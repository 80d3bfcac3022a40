package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/fragmede/threadwatch/internal/api"
	"github.com/fragmede/threadwatch/internal/ui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(_ context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) > 2 {
		return fmt.Errorf("expected at most two threads, got %d", len(args))
	}
	var initial [2]string
	for i, arg := range args {
		if api.ThreadIDFromURL(arg) == "" {
			return fmt.Errorf("unknown command or thread %q. Run 'threadwatch --help' for usage", arg)
		}
		initial[i] = arg
	}

	cfg := cmd.flags.Config
	log.Info().
		Int("interval", cfg.RefreshInterval).
		Bool("auto_refresh", cfg.AutoRefresh).
		Strs("threads", args).
		Msg("starting tui")

	app := ui.NewApp(*cfg, NewClient(cfg), initial[0], initial[1])
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
