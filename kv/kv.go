// Package kv provides the persisted key/value stores a watchlist can be saved
// in.
//
// All stores implement watchlist.KV: Get reports a missing key with ok false,
// never with an error.
package kv

import (
	"context"
	"maps"
	"sync"
)

// Memory is a store held in memory. Its zero value is ready to use.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns a store holding a copy of values.
func NewMemory(values map[string]string) *Memory { return &Memory{m: maps.Clone(values)} }

func (s *Memory) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string]string)
	}
	s.m[key] = value
	return nil
}

func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Snapshot returns a copy of all values.
func (s *Memory) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.m)
}
