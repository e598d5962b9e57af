package watchlist

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeFeed serves a fixed feed and records requested codes.
type fakeFeed struct {
	mu       sync.Mutex
	feed     string
	err      error
	requests [][]string
}

func (f *fakeFeed) Fetch(_ context.Context, codes []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, slices.Clone(codes))
	return f.feed, f.err
}

func TestFetch(t *testing.T) {
	f := &fakeFeed{feed: priced("sz000001", "9.98", "10.05") + priced("sh510300", "9.98", "10.05")}
	entries := []Entry{P("sz000001", 10), E("sh600000"), P("sh510300", 10)}
	s, err := Fetch(context.Background(), f, entries)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"sz000001", "sh600000", "sh510300"}; !slices.Equal(f.requests[0], want) {
		t.Errorf("requested %q, want %q", f.requests[0], want)
	}
	if len(s.Quotes) != 3 || s.Quotes[1] != nil {
		t.Fatalf("Fetch() quotes = %v", s.Quotes)
	}
	if got, want := s.TotalProfit, "140.0"; got != want {
		t.Errorf("TotalProfit = %q, want %q", got, want)
	}
	if got, want := s.Quotes[0].VolumeFormatted, "3万"; got != want {
		t.Errorf("VolumeFormatted = %q, want %q", got, want)
	}
}

func TestFetchEmpty(t *testing.T) {
	f := &fakeFeed{}
	s, err := Fetch(context.Background(), f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.requests) != 0 {
		t.Errorf("empty list was fetched")
	}
	if len(s.Quotes) != 0 || s.TotalProfit != "0.0" {
		t.Errorf("Fetch(empty) = %+v", s)
	}
}

func TestFetchError(t *testing.T) {
	f := &fakeFeed{err: errBroken}
	if _, err := Fetch(context.Background(), f, []Entry{E("sz000001")}); !errors.Is(err, errBroken) {
		t.Errorf("Fetch() error = %v, want %v", err, errBroken)
	}
}

func TestRefresher(t *testing.T) {
	f := &fakeFeed{feed: priced("sz000001", "1", "2")}
	r := &Refresher{
		Fetcher:  f,
		Interval: time.Millisecond,
		Entries:  func() []Entry { return []Entry{P("sz000001", 1)} },
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []*Snapshot
	err := r.Run(ctx, func(s *Snapshot, err error) {
		if err != nil {
			t.Errorf("cycle error: %v", err)
		}
		got = append(got, s)
		if len(got) == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want %v", err, context.Canceled)
	}
	if len(got) != 3 {
		t.Fatalf("delivered %d snapshots, want 3", len(got))
	}
	for i, s := range got {
		if s.TotalProfit != "100.0" {
			t.Errorf("snapshot %d TotalProfit = %q", i, s.TotalProfit)
		}
		if i > 0 && s.Time.Before(got[i-1].Time) {
			t.Errorf("snapshots delivered out of order")
		}
	}
}

func TestRefresherDeliversErrors(t *testing.T) {
	f := &fakeFeed{err: errBroken}
	r := &Refresher{Fetcher: f, Interval: time.Hour, Entries: func() []Entry { return []Entry{E("sz000001")} }}
	ctx, cancel := context.WithCancel(context.Background())
	var errs []string
	r.Run(ctx, func(_ *Snapshot, err error) {
		errs = append(errs, err.Error())
		cancel()
	})
	if len(errs) != 1 || !strings.Contains(errs[0], "broken") {
		t.Errorf("delivered errors %q", errs)
	}
}
