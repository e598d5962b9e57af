package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the watchlist or its quotes" }
func (*exportCmd) Usage() string {
	return `wl export [-o <file>]

  Writes the watchlist tokens as a JSON array, to stdout by default.
  When the output file ends with .xlsx, the quotes are fetched and written as
  a spreadsheet instead.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, .json or .xlsx. Defaults to stdout")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(c.output), ".xlsx") {
		fetcher, err := NewFetcher(s.Config.Feed, nil)
		if err != nil {
			return fail(err)
		}
		snap, err := watchlist.Fetch(ctx, fetcher, s.List.Entries())
		if err != nil {
			return fail(err)
		}
		if err := renderer.WriteXLSX(&buf, snap); err != nil {
			return fail(err)
		}
	} else if err := watchlist.ExportTokens(&buf, s.List.Entries()); err != nil {
		return fail(err)
	}

	if c.output == "" {
		stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0644); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Exported %d entries to %s.\n", s.List.Len(), c.output)
	return subcommands.ExitSuccess
}

type importCmd struct {
	path    string
	replace bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import entries from a JSON document" }
func (*importCmd) Usage() string {
	return `wl import [-path <jsonpath>] [-replace] <file>

  Reads entries from a JSON document: either tokens like "sz000001-10" or
  objects like {"code":"sz000001","count":10}. -path selects them in the
  document. Codes already in the watchlist are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", watchlist.DefaultImportPath, "JSONPath selecting the entries in the document")
	f.BoolVar(&c.replace, "replace", false, "Replace the watchlist instead of appending to it")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stdout, "Error: import takes a file, or - for stdin.")
		return subcommands.ExitUsageError
	}
	in := os.Stdin
	if f.Arg(0) != "-" {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		in = file
	}
	entries, err := watchlist.ImportTokens(in, c.path)
	if err != nil {
		return fail(err)
	}

	s, err := OpenSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if c.replace {
		s.List = watchlist.NewList()
	}
	skipped := 0
	err = s.Edit(ctx, func(e *watchlist.Editor) error {
		for _, entry := range entries {
			var count []int
			if entry.HasCount {
				count = append(count, entry.Count)
			}
			if err := e.Add(entry.Code, count...); err != nil {
				skipped++
			}
		}
		return nil
	})
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Imported %d entries, skipped %d.\n", len(entries)-skipped, skipped)
	printList(stdout, s.List)
	return subcommands.ExitSuccess
}
