package cmd

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type quotesCmd struct {
	view    string
	colored bool
	watch   bool
	style   string
	width   int
	raw     bool
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "display the live quotes of the watchlist" }
func (*quotesCmd) Usage() string {
	return `wl quotes [-view card|table] [-colored] [-watch] [-raw]

  Fetches the quotes of every watchlist entry and renders them, with the daily
  profit of the held positions. With -watch, quotes are refreshed at the
  configured interval until interrupted.
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "", "View: card or table. Defaults to the link, then the persisted view")
	f.BoolVar(&c.colored, "colored", false, "Mark rising and falling quotes")
	f.BoolVar(&c.watch, "watch", false, "Refresh the quotes until interrupted")
	f.StringVar(&c.style, "style", "auto", "Terminal style: auto, dark, light or notty")
	f.IntVar(&c.width, "width", 100, "Terminal word wrap width")
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it")
}

func (c *quotesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	settings := s.Settings(ctx)
	if c.view != "" {
		settings.View = watchlist.ParseView(c.view)
	}
	opts := renderer.Options{Colored: settings.Colored || c.colored}

	fetcher, err := NewFetcher(s.Config.Feed, nil)
	if err != nil {
		return fail(err)
	}

	if !c.watch && !settings.AutoRefresh {
		snap, err := watchlist.Fetch(ctx, fetcher, s.List.Entries())
		if err != nil {
			return fail(err)
		}
		return c.print(renderer.Render(snap, settings.View, opts))
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	interval := s.Config.Refresh.Interval
	if interval <= 0 {
		interval = watchlist.DefaultInterval
	}
	r := &watchlist.Refresher{
		Fetcher:  fetcher,
		Interval: interval,
		Entries:  s.List.Entries,
	}
	r.Run(ctx, func(snap *watchlist.Snapshot, err error) {
		if err != nil {
			fmt.Fprintf(stdout, "refresh failed at %s: %v\n", time.Now().Format(time.TimeOnly), err)
			return
		}
		// clear the screen between refreshes.
		fmt.Fprint(stdout, "\033[H\033[2J")
		c.print(renderer.Render(snap, settings.View, opts))
	})
	return subcommands.ExitSuccess
}

func (c *quotesCmd) print(md string) subcommands.ExitStatus {
	if c.raw {
		fmt.Fprint(stdout, md)
		return subcommands.ExitSuccess
	}
	out, err := renderer.Terminal(md, c.style, c.width)
	if err != nil {
		return fail(err)
	}
	fmt.Fprint(stdout, out)
	return subcommands.ExitSuccess
}
