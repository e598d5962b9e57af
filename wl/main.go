// Command wl manages a stock watchlist and displays its live quotes.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/watchlist/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Shell completion, active when COMP_LINE is set by the shell.
	completion().Complete(path.Base(os.Args[0]))

	flag.Parse()

	if name := flag.Arg(0); name != "" && !known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// known reports whether name is a registered subcommand.
func known(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		if sc.Name() == name {
			found = true
		}
	})
	return found
}

func completion() *complete.Command {
	views := predict.Set{"card", "table"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":     predict.Files("*.yaml"),
			"link":       predict.Nothing,
			"store":      predict.Set{"file", "sqlite", "redis", "memory"},
			"store-path": predict.Files("*"),
			"v":          predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"add":    {},
			"remove": {},
			"update": {},
			"up":     {},
			"down":   {},
			"list":   {},
			"link":   {Flags: map[string]complete.Predictor{"base": predict.Nothing}},
			"view":   {Args: views},
			"quotes": {Flags: map[string]complete.Predictor{
				"view":    views,
				"colored": predict.Nothing,
				"watch":   predict.Nothing,
				"raw":     predict.Nothing,
				"style":   predict.Set{"auto", "dark", "light", "notty"},
				"width":   predict.Nothing,
			}},
			"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*")}},
			"import": {
				Flags: map[string]complete.Predictor{"path": predict.Nothing, "replace": predict.Nothing},
				Args:  predict.Files("*.json"),
			},
			"serve":    {Flags: map[string]complete.Predictor{"addr": predict.Nothing}},
			"assist":   {Flags: map[string]complete.Predictor{"model": predict.Nothing, "style": predict.Nothing}},
			"topic":    {Args: predict.Set{"tokens", "link", "quotes", "import", "config", "server", "extensions"}},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
