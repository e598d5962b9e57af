package watchlist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// memKV is a KV held in a map, for tests.
type memKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemKV() *memKV { return &memKV{m: make(map[string]string)} }

func (k *memKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

func (k *memKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.m, key)
	return nil
}

var errBroken = errors.New("broken")

// tokens is a TokenSource in memory whose writes can be made to fail.
type tokens struct {
	values    []string
	failWrite bool
}

func (s *tokens) ReadTokens(context.Context) ([]string, error) { return slices.Clone(s.values), nil }

func (s *tokens) WriteTokens(_ context.Context, t []string) error {
	if s.failWrite {
		return errBroken
	}
	s.values = slices.Clone(t)
	return nil
}

// statement builds a feed statement for code with the given values at their
// field positions. Other fields are zero.
func statement(code, name, open, yesterdayClose, price, high, low, volume, date, time string) string {
	fields := make([]string, 33)
	for i := range fields {
		fields[i] = "0"
	}
	fields[fieldName] = name
	fields[fieldOpen] = open
	fields[fieldYesterdayClose] = yesterdayClose
	fields[fieldPrice] = price
	fields[fieldHigh] = high
	fields[fieldLow] = low
	fields[fieldVolume] = volume
	fields[fieldDate] = date
	fields[fieldTime] = time
	fields[32] = "00"
	return fmt.Sprintf("var %s%s=\"%s\";\n", StatementPrefix, code, strings.Join(fields, ","))
}

// priced is a statement with only the prices that matter for derivation.
func priced(code, yesterdayClose, price string) string {
	return statement(code, "测试", yesterdayClose, yesterdayClose, price, price, yesterdayClose, "25000", "2025-10-17", "15:00:00")
}
