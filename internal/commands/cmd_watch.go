package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"
	xhtml "golang.org/x/net/html"

	"github.com/fragmede/threadwatch/internal/monitor"
)

const watchPreview = 120

type WatchCmd struct {
	flags *Flags

	// flags
	all bool
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{flags: flags}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Poll threads and print new comments as they arrive",
		UsageText: "threadwatch watch [--all] <left> [right]",
		Description: `Polls one or two threads every --interval seconds without the terminal UI.

Each comment not seen in an earlier poll is printed as one line. Comments
present on the first load are skipped unless --all is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "also print the comments present on the first load",
				Destination: &cmd.all,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("watch takes one or two threads")
	}
	ids, err := threadIDs(args)
	if err != nil {
		return err
	}
	left, right := ids[0], ""
	if len(ids) > 1 {
		right = ids[1]
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := monitor.New(*cmd.flags.Config, NewClient(cmd.flags.Config), watchHandlers(os.Stdout, os.Stderr))
	mon.ReportExisting = cmd.all

	fmt.Fprintf(os.Stderr, "watching %s every %ds (ctrl+c to stop)\n",
		strings.Join(ids, " and "), cmd.flags.Config.RefreshInterval)
	return mon.Run(ctx, left, right)
}

func watchHandlers(out, errOut io.Writer) monitor.Handlers {
	return monitor.Handlers{
		OnComment: func(c monitor.NewComment) {
			fmt.Fprintln(out, formatComment(c))
		},
		OnError: func(e monitor.FetchError) {
			fmt.Fprintf(errOut, "[%s %s] error: %s\n", e.Side, e.Thread, e.Message)
		},
	}
}

// formatComment renders a comment as a single line.
func formatComment(c monitor.NewComment) string {
	body := strings.Join(strings.Fields(ansi.Strip(xhtml.UnescapeString(c.Node.BodyRaw))), " ")
	if r := []rune(body); len(r) > watchPreview {
		body = string(r[:watchPreview-1]) + "…"
	}
	return fmt.Sprintf("[%s %s] %su/%s: %s",
		c.Side, c.Thread, strings.Repeat("  ", c.Depth), c.Node.Author, body)
}
