package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/watchlist"
	"github.com/google/subcommands"
)

// edit runs the edit of a watchlist command and prints the saved watchlist.
func edit(ctx context.Context, fn func(e *watchlist.Editor) error) subcommands.ExitStatus {
	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()
	if err := s.Edit(ctx, fn); err != nil {
		return fail(err)
	}
	printList(stdout, s.List)
	return subcommands.ExitSuccess
}

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a code to the watchlist" }
func (*addCmd) Usage() string {
	return `wl add <code> [lots]

  Appends a market prefixed code (e.g., "sz000001") to the watchlist.
  With a lot count the entry is a position, its daily profit is computed.
  A code already in the watchlist, in any letter case, is rejected.
`
}
func (*addCmd) SetFlags(*flag.FlagSet) {}

func (*addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Fprintln(stdout, "Error: add takes a code and an optional lot count.")
		return subcommands.ExitUsageError
	}
	count, err := parseCount(f.Args()[1:])
	if err != nil {
		return fail(err)
	}
	return edit(ctx, func(e *watchlist.Editor) error { return e.Add(f.Arg(0), count...) })
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove an entry from the watchlist" }
func (*removeCmd) Usage() string {
	return `wl remove <position>

  Removes the entry at position, as numbered by 'wl list'.
`
}
func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (*removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stdout, "Error: remove takes a position.")
		return subcommands.ExitUsageError
	}
	i, err := parseIndex(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	return edit(ctx, func(e *watchlist.Editor) error { return e.Remove(i) })
}

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "change the lots held for an entry" }
func (*updateCmd) Usage() string {
	return `wl update <position> [lots]

  Sets the lots held for the entry at position. Without a lot count the entry
  is only tracked.
`
}
func (*updateCmd) SetFlags(*flag.FlagSet) {}

func (*updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Fprintln(stdout, "Error: update takes a position and an optional lot count.")
		return subcommands.ExitUsageError
	}
	i, err := parseIndex(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	count, err := parseCount(f.Args()[1:])
	if err != nil {
		return fail(err)
	}
	return edit(ctx, func(e *watchlist.Editor) error {
		if err := e.StartEdit(i); err != nil {
			return err
		}
		return e.CommitEdit(count...)
	})
}

// moveCmd moves an entry one position, up or down.
type moveCmd struct {
	name string
	up   bool
}

type upCmd struct{ moveCmd }
type downCmd struct{ moveCmd }

func (c *upCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	c.name, c.up = "up", true
	return c.moveCmd.Execute(ctx, f, args...)
}

func (c *downCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	c.name, c.up = "down", false
	return c.moveCmd.Execute(ctx, f, args...)
}

func (*upCmd) Name() string       { return "up" }
func (*upCmd) Synopsis() string   { return "move an entry one position up" }
func (*downCmd) Name() string     { return "down" }
func (*downCmd) Synopsis() string { return "move an entry one position down" }

func (*upCmd) Usage() string {
	return `wl up <position>

  Swaps the entry at position with the previous one. The first entry stays in place.
`
}

func (*downCmd) Usage() string {
	return `wl down <position>

  Swaps the entry at position with the next one. The last entry stays in place.
`
}

func (*moveCmd) SetFlags(*flag.FlagSet) {}

func (c *moveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(stdout, "Error: %s takes a position.\n", c.name)
		return subcommands.ExitUsageError
	}
	i, err := parseIndex(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	return edit(ctx, func(e *watchlist.Editor) error {
		if c.up {
			return e.MoveUp(i)
		}
		return e.MoveDown(i)
	})
}
