package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/agent"
	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	model string
	style string
}

// Name returns the name of the command.
func (*assistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*assistCmd) Synopsis() string { return "Start an interactive session with the AI assistant." }

// Usage returns a long-form usage string.
func (*assistCmd) Usage() string {
	return `wl assist [-model <name>] [question...]

  Start an interactive session with the AI assistant. It reads the live quotes
  of the watchlist and searches the web to answer. The Gemini API key is read
  from GEMINI_API_KEY. Type 'bye' to leave.
`
}

// SetFlags sets the flags for the command.
func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "Gemini model. Overrides the configuration")
	f.StringVar(&c.style, "style", "auto", "Terminal style of the answers, or 'raw' to print markdown")
}

// Execute executes the command.
func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()
	fetcher, err := NewFetcher(s.Config.Feed, nil)
	if err != nil {
		return fail(err)
	}
	model := s.Config.Assist.Model
	if c.model != "" {
		model = c.model
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	snapshot := func(ctx context.Context) (*watchlist.Snapshot, error) {
		return watchlist.Fetch(ctx, fetcher, s.List.Entries())
	}
	a := agent.New(stdout, os.Stdin, model, agent.NewAnalyst(model), agent.NewKeeper(model, snapshot))
	if c.style != "raw" {
		a.Render = func(md string) string {
			out, err := renderer.Terminal(md, c.style, 100)
			if err != nil {
				return md
			}
			return out
		}
	}

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
