package watchlist

import (
	"context"
	"time"
)

// Fetcher retrieves the raw feed text for market-prefixed codes.
type Fetcher interface {
	Fetch(ctx context.Context, codes []string) (string, error)
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc func(ctx context.Context, codes []string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, codes []string) (string, error) { return f(ctx, codes) }

// Fetch runs one fetch cycle for entries: fetch, decode and derive.
//
// Fetch errors are returned unchanged. An empty list returns an empty snapshot
// without fetching.
func Fetch(ctx context.Context, f Fetcher, entries []Entry) (*Snapshot, error) {
	s := &Snapshot{Time: time.Now(), Codes: make([]string, len(entries)), Quotes: []*Derived{}, TotalProfit: TotalProfit(nil)}
	for i, e := range entries {
		s.Codes[i] = e.Code
	}
	if len(entries) == 0 {
		return s, nil
	}
	feed, err := f.Fetch(ctx, s.Codes)
	if err != nil {
		return nil, err
	}
	s.Quotes = DeriveAll(DecodeEntries(feed, entries))
	s.TotalProfit = TotalProfit(s.Quotes)
	return s, nil
}
