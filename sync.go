package watchlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/etnz/watchlist/logging"
	"go.uber.org/zap"
)

// TokenSource is an external copy of the watchlist, held as tokens.
type TokenSource interface {
	ReadTokens(ctx context.Context) ([]string, error)
	WriteTokens(ctx context.Context, tokens []string) error
}

// Source tells which representation a loaded list came from.
type Source int

const (
	FromNone Source = iota
	FromLink
	FromSaved
)

func (s Source) String() string {
	switch s {
	case FromLink:
		return "link"
	case FromSaved:
		return "saved"
	default:
		return "none"
	}
}

// Sync keeps a watchlist consistent between a shareable link, a persisted
// store and the in-memory list.
//
// Load and Save are serialized, a Load never observes half of a Save.
type Sync struct {
	Link  TokenSource
	Saved TokenSource

	mu sync.Mutex
}

// NewSync returns a Sync between link and saved.
func NewSync(link, saved TokenSource) *Sync { return &Sync{Link: link, Saved: saved} }

// Load reconciles the two external copies and returns the list.
//
// A non-empty link wins and overwrites the persisted copy with its tokens.
// Otherwise a non-empty persisted copy wins and is republished into the link.
// Otherwise the list is empty.
func (s *Sync) Load(ctx context.Context) (*List, Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.Link.ReadTokens(ctx)
	if err != nil {
		return nil, FromNone, fmt.Errorf("cannot read link: %w", err)
	}
	if len(tokens) > 0 {
		if err := s.Saved.WriteTokens(ctx, tokens); err != nil {
			return nil, FromNone, fmt.Errorf("cannot persist link tokens: %w", err)
		}
		logging.L().Debug("watchlist loaded", zap.Stringer("source", FromLink), zap.Strings("tokens", tokens))
		return NewList(DecodeTokens(tokens)...), FromLink, nil
	}

	tokens, err = s.Saved.ReadTokens(ctx)
	if err != nil {
		return nil, FromNone, fmt.Errorf("cannot read persisted tokens: %w", err)
	}
	if len(tokens) > 0 {
		if err := s.Link.WriteTokens(ctx, tokens); err != nil {
			return nil, FromNone, fmt.Errorf("cannot republish persisted tokens: %w", err)
		}
		logging.L().Debug("watchlist loaded", zap.Stringer("source", FromSaved), zap.Strings("tokens", tokens))
		return NewList(DecodeTokens(tokens)...), FromSaved, nil
	}
	return NewList(), FromNone, nil
}

// Save writes the list to both external copies.
//
// If the link cannot be written the persisted copy is restored to its previous
// tokens, so that either both copies hold the list or none changed.
func (s *Sync) Save(ctx context.Context, l *List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := l.Tokens()
	previous, err := s.Saved.ReadTokens(ctx)
	if err != nil {
		return fmt.Errorf("cannot read persisted tokens: %w", err)
	}
	if err := s.Saved.WriteTokens(ctx, tokens); err != nil {
		return fmt.Errorf("cannot persist tokens: %w", err)
	}
	if err := s.Link.WriteTokens(ctx, tokens); err != nil {
		if rerr := s.Saved.WriteTokens(ctx, previous); rerr != nil {
			logging.L().Warn("cannot restore persisted tokens", zap.Error(rerr))
		}
		return fmt.Errorf("cannot publish tokens: %w", err)
	}
	return nil
}
