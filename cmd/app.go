// Package cmd implements the wl CLI application to manage a watchlist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/config"
	"github.com/etnz/watchlist/kv"
	"github.com/etnz/watchlist/logging"
	"github.com/etnz/watchlist/sina"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "watchlist")
	c.Register(&removeCmd{}, "watchlist")
	c.Register(&updateCmd{}, "watchlist")
	c.Register(&upCmd{}, "watchlist")
	c.Register(&downCmd{}, "watchlist")
	c.Register(&listCmd{}, "watchlist")
	c.Register(&linkCmd{}, "watchlist")
	c.Register(&viewCmd{}, "watchlist")

	c.Register(&quotesCmd{}, "quotes")
	c.Register(&exportCmd{}, "quotes")
	c.Register(&importCmd{}, "watchlist")

	c.Register(&serveCmd{}, "services")
	c.Register(&assistCmd{}, "services")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", config.DefaultPath, "Path to the YAML configuration file")
	linkQuery    = flag.String("link", "", "Shareable link query, like 'code=sz000001-10&view=table'. It takes precedence over the persisted watchlist")
	storeBackend = flag.String("store", "", "Persisted store backend: file, sqlite, redis or memory. Overrides the configuration")
	storePath    = flag.String("store-path", "", "Path of the file or sqlite store. Overrides the configuration")
	Verbose      = flag.Bool("v", false, "Verbose logging")
)

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// LoadConfig loads the configuration: .env, then the config file, then the
// command line flags. It also installs the process logger.
func LoadConfig() (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *storeBackend != "" {
		cfg.Store.Backend = *storeBackend
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *Verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	logging.Set(logger)
	return cfg, nil
}

// OpenStore opens the persisted store configured in cfg. The returned
// function releases it.
func OpenStore(ctx context.Context, cfg config.Store) (watchlist.KV, func() error, error) {
	nop := func() error { return nil }
	switch cfg.Backend {
	case "", "file":
		return kv.NewFile(cfg.Path), nop, nil
	case "sqlite":
		s, err := kv.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "redis":
		s, err := kv.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "memory":
		return new(kv.Memory), nop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewFetcher returns the feed client configured in cfg.
func NewFetcher(cfg config.Feed, reg prometheus.Registerer) (*sina.Client, error) {
	return sina.New(sina.Options{URL: cfg.URL, Referer: cfg.Referer, Timeout: cfg.Timeout, Registerer: reg})
}

// Session is the watchlist of a command: the -link query, the persisted store
// and their reconciliation.
type Session struct {
	Config *config.Config
	Link   *watchlist.Link
	Saved  *watchlist.Saved
	Sync   *watchlist.Sync
	List   *watchlist.List
	Source watchlist.Source

	close func() error
}

// OpenSession loads the configuration and reconciles the watchlist.
func OpenSession(ctx context.Context) (*Session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	link, err := watchlist.ParseLink(*linkQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid -link %q: %w", *linkQuery, err)
	}
	store, closeStore, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	s := &Session{Config: cfg, Link: link, Saved: watchlist.NewSaved(store), close: closeStore}
	s.Sync = watchlist.NewSync(s.Link, s.Saved)
	if s.List, s.Source, err = s.Sync.Load(ctx); err != nil {
		closeStore()
		return nil, err
	}
	return s, nil
}

// Close releases the persisted store.
func (s *Session) Close() error { return s.close() }

// Settings returns the display settings: the link ones, with the persisted
// view when the link has none.
func (s *Session) Settings(ctx context.Context) watchlist.Settings {
	settings := s.Link.Settings()
	if !s.Link.Values().Has(watchlist.ParamView) {
		if v, err := s.Saved.View(ctx); err == nil {
			settings.View = v
		}
	}
	return settings
}

// Edit applies edit to the watchlist through an editor, and saves the result.
func (s *Session) Edit(ctx context.Context, edit func(e *watchlist.Editor) error) error {
	e := watchlist.NewEditor(s.List)
	if err := e.Open(); err != nil {
		return err
	}
	if err := edit(e); err != nil {
		e.Close()
		return err
	}
	if err := e.Save(ctx, s.Sync); err != nil {
		return err
	}
	s.List = e.List()
	return nil
}

// printList prints the numbered entries of l, the numbers commands take.
func printList(w io.Writer, l *watchlist.List) {
	if l.Len() == 0 {
		fmt.Fprintln(w, "The watchlist is empty.")
		return
	}
	for i, e := range l.Entries() {
		if e.Held() {
			fmt.Fprintf(w, "%3d  %-10s %d lots\n", i, e.Code, e.Count)
		} else {
			fmt.Fprintf(w, "%3d  %s\n", i, e.Code)
		}
	}
}

var errUsage = errors.New("usage")

// parseIndex parses a position argument.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", arg, errUsage)
	}
	return i, nil
}

// parseCount parses an optional lot count argument: none returns no count.
func parseCount(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid lot count %q: %w", args[0], errUsage)
	}
	return []int{n}, nil
}

// fail prints err and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errUsage) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
