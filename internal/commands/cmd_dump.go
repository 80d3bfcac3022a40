package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/fragmede/threadwatch/internal/render"
	"github.com/fragmede/threadwatch/internal/thread"
)

const (
	dumpIndent = 2
	dumpWidth  = 80
)

type DumpCmd struct {
	flags *Flags
}

// NewDumpCmd creates a new dump command
func NewDumpCmd(flags *Flags) *DumpCmd {
	return &DumpCmd{flags: flags}
}

// Register adds the dump command to the application
func (cmd *DumpCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dump",
		Usage:     "Print threads as an indented comment tree",
		UsageText: "threadwatch dump <thread> [thread]",
		Description: `Fetches each thread once and prints its title and comments.

Threads may be given as Reddit URLs, redd.it short links or bare ids.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *DumpCmd) run(ctx context.Context, c *cli.Command) error {
	if !c.Args().Present() {
		return fmt.Errorf("dump requires at least one thread")
	}
	ids, err := threadIDs(c.Args().Slice())
	if err != nil {
		return err
	}

	client := NewClient(cmd.flags.Config)
	bodies, err := client.FetchThreads(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	fd := int(os.Stdout.Fd())
	styled := term.IsTerminal(fd)
	width := dumpWidth
	if styled {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	p := newTreePrinter(os.Stdout, width, styled)
	for i, body := range bodies {
		snap, err := thread.Normalize(body)
		if err != nil {
			return fmt.Errorf("thread %s: %w", ids[i], err)
		}
		log.Debug().Str("thread", ids[i]).Int("comments", snap.Count()).Msg("dump")
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		p.print(snap)
	}
	return nil
}

type treePrinter struct {
	w     io.Writer
	width int

	title  lipgloss.Style
	dim    lipgloss.Style
	author lipgloss.Style
}

func newTreePrinter(w io.Writer, width int, styled bool) *treePrinter {
	plain := lipgloss.NewStyle()
	p := &treePrinter{w: w, width: width, title: plain, dim: plain, author: plain}
	if styled {
		p.title = lipgloss.NewStyle().Bold(true)
		p.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		p.author = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600")).Bold(true)
	}
	return p
}

func (p *treePrinter) print(snap thread.Snapshot) {
	if m := snap.Meta; m != nil {
		fmt.Fprintln(p.w, p.title.Render(m.Title))
		fmt.Fprintln(p.w, p.dim.Render(fmt.Sprintf("r/%s | u/%s | %s | %d comments",
			m.Subreddit, m.Author, render.TimeAgo(m.CreatedAt), m.CommentCount)))
		if m.SelfText != "" {
			fmt.Fprintln(p.w)
			p.body(m.SelfText, "")
		}
		fmt.Fprintln(p.w)
	}

	if len(snap.Nodes) == 0 {
		fmt.Fprintln(p.w, p.dim.Render("No comments found"))
		return
	}

	thread.Walk(snap.Nodes, func(n thread.Node, depth int) {
		pad := strings.Repeat(" ", depth*dumpIndent)
		fmt.Fprintf(p.w, "%s%s %s\n", pad, p.author.Render(n.Author),
			p.dim.Render(fmt.Sprintf("%d points · %s", n.Score, render.TimeAgo(n.CreatedAt))))
		p.body(n.BodyRaw, pad+"  ")
	})
}

func (p *treePrinter) body(raw, pad string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	for _, line := range strings.Split(render.Body(raw, max(p.width-len(pad), 20)), "\n") {
		fmt.Fprintln(p.w, strings.TrimRight(pad+line, " "))
	}
}
