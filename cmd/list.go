package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/watchlist"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print the numbered watchlist" }
func (*listCmd) Usage() string {
	return `wl list

  Prints the watchlist entries with their position, and where the watchlist
  was loaded from: the -link query, or the persisted store.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()
	printList(stdout, s.List)
	fmt.Fprintf(stdout, "(from %s)\n", s.Source)
	return subcommands.ExitSuccess
}

type linkCmd struct {
	base string
}

func (*linkCmd) Name() string     { return "link" }
func (*linkCmd) Synopsis() string { return "print the shareable link of the watchlist" }
func (*linkCmd) Usage() string {
	return `wl link [-base <url>]

  Prints the link holding the watchlist and its display settings. Opening it
  restores the same watchlist anywhere.
`
}

func (c *linkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "", "Page URL the query is appended to")
}

func (c *linkCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()
	q := s.Link.Encode()
	if c.base != "" {
		q = c.base + "?" + q
	}
	fmt.Fprintln(stdout, q)
	return subcommands.ExitSuccess
}

type viewCmd struct{}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "select the default quotes view" }
func (*viewCmd) Usage() string {
	return `wl view card|table

  Persists the view used by 'wl quotes' when neither -view nor the link sets it.
`
}
func (*viewCmd) SetFlags(*flag.FlagSet) {}

func (*viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || (f.Arg(0) != "card" && f.Arg(0) != "table") {
		fmt.Fprintln(stdout, "Error: view takes either 'card' or 'table'.")
		return subcommands.ExitUsageError
	}
	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()
	if err := s.Saved.SetView(ctx, watchlist.ParseView(f.Arg(0))); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Default view is %s.\n", f.Arg(0))
	return subcommands.ExitSuccess
}
