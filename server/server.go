// Package server exposes a watchlist over HTTP.
//
// Every request carries the shareable link as its query string: the link and
// the server side persisted store are reconciled on each request, exactly as
// a freshly opened page would.
//
//	GET /api/watchlist     the reconciled watchlist, settings and link
//	PUT /api/watchlist     replace the watchlist by a JSON array of tokens
//	GET /api/quotes        one fetch cycle, as JSON or markdown (format=markdown)
//	GET /ws                a websocket pushing one snapshot per refresh interval
//	GET /metrics           prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/logging"
	"github.com/etnz/watchlist/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configure a Server.
type Options struct {
	// Interval between two snapshots pushed on /ws.
	Interval time.Duration
	// Registry holds the metrics served on /metrics, the server registers its
	// own in it. Nil disables /metrics.
	Registry *prometheus.Registry
}

// Server is the request-handling layer of a watchlist.
type Server struct {
	kv       watchlist.KV
	fetcher  watchlist.Fetcher
	interval time.Duration
	registry *prometheus.Registry
	requests *prometheus.CounterVec

	// mu serializes reconciliations, requests share the persisted store.
	mu sync.Mutex
}

// New returns a server persisting the watchlist in kv and fetching quotes
// with f.
func New(kv watchlist.KV, f watchlist.Fetcher, opts Options) (*Server, error) {
	s := &Server{kv: kv, fetcher: f, interval: opts.Interval, registry: opts.Registry}
	if s.interval <= 0 {
		s.interval = watchlist.DefaultInterval
	}
	if s.registry != nil {
		s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "watchlist_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"})
		if err := s.registry.Register(s.requests); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.count)

	r.Route("/api", func(r chi.Router) {
		r.Get("/watchlist", s.getWatchlist)
		r.Put("/watchlist", s.putWatchlist)
		r.Get("/quotes", s.getQuotes)
	})
	r.Get("/ws", s.stream)
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// count counts requests by route pattern and status.
func (s *Server) count(next http.Handler) http.Handler {
	if s.requests == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unknown"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// session is the state of a watchlist as seen by one request.
type session struct {
	link     *watchlist.Link
	saved    *watchlist.Saved
	sync     *watchlist.Sync
	list     *watchlist.List
	source   watchlist.Source
	settings watchlist.Settings
}

// load reconciles the request link q with the persisted store.
//
// A link without view parameter inherits the cached view selection, a link
// with one refreshes the cache.
func (s *Server) load(ctx context.Context, q url.Values) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ss := &session{link: watchlist.NewLink(q), saved: watchlist.NewSaved(s.kv)}
	ss.sync = watchlist.NewSync(ss.link, ss.saved)
	var err error
	if ss.list, ss.source, err = ss.sync.Load(ctx); err != nil {
		return nil, err
	}
	ss.settings = ss.link.Settings()
	if q.Has(watchlist.ParamView) {
		err = ss.saved.SetView(ctx, ss.settings.View)
	} else {
		ss.settings.View, err = ss.saved.View(ctx)
	}
	if err != nil {
		return nil, err
	}
	return ss, nil
}

// save publishes l in the session link and the persisted store.
func (s *Server) save(ctx context.Context, ss *session, l *watchlist.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ss.sync.Save(ctx, l); err != nil {
		return err
	}
	ss.list = l
	return nil
}

type entryJSON struct {
	Code  string `json:"code"`
	Count *int   `json:"count,omitempty"`
}

// watchlistJSON is the body of /api/watchlist responses.
type watchlistJSON struct {
	Entries  []entryJSON        `json:"entries"`
	Tokens   []string           `json:"tokens"`
	Source   string             `json:"source"`
	Settings watchlist.Settings `json:"settings"`
	// Query is the link to republish, it holds the watchlist and its settings.
	Query string `json:"query"`
}

func newWatchlistJSON(ss *session) watchlistJSON {
	resp := watchlistJSON{
		Entries:  []entryJSON{},
		Tokens:   ss.list.Tokens(),
		Source:   ss.source.String(),
		Settings: ss.settings,
		Query:    ss.link.Encode(),
	}
	for _, e := range ss.list.Entries() {
		je := entryJSON{Code: e.Code}
		if e.HasCount {
			je.Count = &e.Count
		}
		resp.Entries = append(resp.Entries, je)
	}
	return resp
}

func (s *Server) getWatchlist(w http.ResponseWriter, r *http.Request) {
	ss, err := s.load(r.Context(), r.URL.Query())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newWatchlistJSON(ss))
}

func (s *Server) putWatchlist(w http.ResponseWriter, r *http.Request) {
	var tokens []string
	if err := json.NewDecoder(r.Body).Decode(&tokens); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	l := watchlist.NewList()
	for _, e := range watchlist.DecodeTokens(tokens) {
		var err error
		if e.HasCount {
			err = l.Add(e.Code, e.Count)
		} else {
			err = l.Add(e.Code)
		}
		switch {
		case errors.Is(err, watchlist.ErrDuplicateEntry):
			s.fail(w, r, http.StatusConflict, err)
			return
		case err != nil:
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
	}

	// the request link is only used for its settings, the body replaces its
	// codes.
	q := r.URL.Query()
	q.Del(watchlist.ParamCode)
	ss, err := s.load(r.Context(), q)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	if err := s.save(r.Context(), ss, l); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, newWatchlistJSON(ss))
}

func (s *Server) getQuotes(w http.ResponseWriter, r *http.Request) {
	ss, err := s.load(r.Context(), r.URL.Query())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	snap, err := watchlist.Fetch(r.Context(), s.fetcher, ss.list.Entries())
	if err != nil {
		s.fail(w, r, http.StatusBadGateway, err)
		return
	}
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(renderer.Render(snap, ss.settings.View, renderer.Options{Colored: ss.settings.Colored})))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// fail writes err as a JSON error body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		logging.L().Error("request failed", zap.String("path", r.URL.Path), zap.Int("status", code), zap.Error(err))
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
