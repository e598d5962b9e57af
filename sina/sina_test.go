package sina

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/watchlist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var _ watchlist.Fetcher = (*Client)(nil)

const feed = `var hq_str_sz000001="平安银行,10.00,9.98,10.05,10.10,9.95,10.04,10.05,150000000,1500000000.00,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,2025-10-17,15:00:03,00";` + "\n"

func TestFetch(t *testing.T) {
	var gotPath, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotReferer = r.URL.Path, r.Header.Get("Referer")
		body, err := simplifiedchinese.GBK.NewEncoder().String(feed)
		if err != nil {
			t.Errorf("cannot encode the feed: %v", err)
		}
		w.Header().Set("Content-Type", "application/javascript; charset=GBK")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c, err := New(Options{URL: srv.URL + "/list=", Registerer: reg})
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Fetch(context.Background(), []string{"sz000001", "sh600000"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got != feed {
		t.Errorf("Fetch() = %q, want %q", got, feed)
	}
	if want := "/list=sz000001,sh600000"; gotPath != want {
		t.Errorf("requested %q, want %q", gotPath, want)
	}
	if gotReferer != DefaultReferer {
		t.Errorf("Referer = %q, want %q", gotReferer, DefaultReferer)
	}
	if n := testutil.ToFloat64(c.metrics.requests.WithLabelValues(outcomeOK)); n != 1 {
		t.Errorf("ok requests = %v, want 1", n)
	}

	q := watchlist.DecodeFeed(got, []string{"sz000001"})[0]
	if q == nil || q.Name != "平安银行" {
		t.Errorf("decoded quote = %+v", q)
	}
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c, err := New(Options{URL: srv.URL + "/list=", Registerer: reg})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Fetch(context.Background(), []string{"sz000001"})
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("Fetch() error = %v, want a 403 status error", err)
	}
	if n := testutil.ToFloat64(c.metrics.requests.WithLabelValues(outcomeStatus)); n != 1 {
		t.Errorf("status requests = %v, want 1", n)
	}
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c, err := New(Options{URL: srv.URL + "/list="})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Fetch(ctx, []string{"sz000001"}); err == nil {
		t.Errorf("Fetch() with a canceled context succeeded")
	}
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(Options{Registerer: reg}); err != nil {
		t.Fatal(err)
	}
	if _, err := New(Options{Registerer: reg}); err == nil {
		t.Errorf("New() registered the same metrics twice")
	}
}
