package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/watchlist/logging"
	"github.com/etnz/watchlist/server"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the watchlist over HTTP" }
func (*serveCmd) Usage() string {
	return `wl serve [-addr <host:port>]

  Serves the watchlist API, the live quotes websocket and the metrics.
  Every request carries its shareable link as query string.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides the configuration")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return fail(err)
	}
	if c.addr != "" {
		cfg.Server.Addr = c.addr
	}
	store, closeStore, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	fetcher, err := NewFetcher(cfg.Feed, reg)
	if err != nil {
		return fail(err)
	}
	srv, err := server.New(store, fetcher, server.Options{Interval: cfg.Refresh.Interval, Registry: reg})
	if err != nil {
		return fail(err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hs := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	logging.L().Info("serving watchlist", zap.String("addr", cfg.Server.Addr), zap.String("store", cfg.Store.Backend))

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fail(err)
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdown); err != nil {
			return fail(fmt.Errorf("shutdown: %w", err))
		}
		logging.L().Info("server stopped")
	}
	return subcommands.ExitSuccess
}
