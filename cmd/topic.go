package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/watchlist/docs"
	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type topicCmd struct {
	raw bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `wl topic [<topic>...]

  Show documentation for the given topics, '*' for all of them. Without a
  topic, list the available ones.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail(err)
	}
	if !c.raw {
		if doc, err = renderer.Terminal(doc, "auto", 100); err != nil {
			return fail(err)
		}
	}
	fmt.Fprint(stdout, doc)
	return subcommands.ExitSuccess
}
