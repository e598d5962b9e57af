package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
)

// KV is a persisted key/value store. Package kv provides implementations.
type KV interface {
	// Get returns the value stored at key. A missing key is not an error, ok is
	// false instead.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Keys used in the persisted store.
const (
	KeyTokens = "stockCodes"
	KeyView   = "view"
)

// Saved is the persisted representation of the watchlist: a JSON array of
// tokens stored under KeyTokens, and the last view selection under KeyView.
type Saved struct {
	kv KV
}

// NewSaved returns the persisted representation stored in kv.
func NewSaved(kv KV) *Saved { return &Saved{kv: kv} }

// ReadTokens returns the persisted tokens, none if nothing was saved yet.
func (s *Saved) ReadTokens(ctx context.Context) ([]string, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTokens)
	if err != nil || !ok {
		return nil, err
	}
	var tokens []string
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return nil, fmt.Errorf("cannot decode persisted %q: %w", KeyTokens, err)
	}
	return tokens, nil
}

// WriteTokens replaces the persisted tokens.
func (s *Saved) WriteTokens(ctx context.Context, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyTokens, string(raw))
}

// View returns the cached view selection, ViewCard if none.
func (s *Saved) View(ctx context.Context) (View, error) {
	raw, _, err := s.kv.Get(ctx, KeyView)
	if err != nil {
		return ViewCard, err
	}
	return ParseView(raw), nil
}

// SetView caches the view selection. The card view, being the default, clears
// the cache.
func (s *Saved) SetView(ctx context.Context, v View) error {
	if v == ViewTable {
		return s.kv.Set(ctx, KeyView, string(ViewTable))
	}
	return s.kv.Delete(ctx, KeyView)
}
