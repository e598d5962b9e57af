package watchlist

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

var (
	// ErrDuplicateEntry is returned when adding a code already in the list,
	// letter case ignored.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrIndexOutOfRange is returned by operations addressing a missing position.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptyCode is returned when adding a blank code.
	ErrEmptyCode = errors.New("empty code")
	// ErrInvalidCount is returned for a lot count a token cannot hold: negative
	// or above math.MaxInt32.
	ErrInvalidCount = errors.New("invalid lot count")
)

// List is the canonical ordered list of entries.
//
// No two entries share a case-insensitively equal code. Display order is list
// order, and it only changes through MoveUp and MoveDown.
// Its zero value is an empty list ready to use.
type List struct {
	entries []Entry
}

// NewList returns a list made of entries, in order. Entries whose code
// duplicates an earlier one are dropped. See Dedup.
func NewList(entries ...Entry) *List {
	l := &List{entries: slices.Clone(entries)}
	l.Dedup()
	return l
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in order.
func (l *List) Entries() []Entry { return slices.Clone(l.entries) }

// At returns the entry at index i.
func (l *List) At(i int) (Entry, error) {
	if err := l.check(i); err != nil {
		return Entry{}, err
	}
	return l.entries[i], nil
}

// Codes returns the codes in order.
func (l *List) Codes() []string {
	codes := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		codes = append(codes, e.Code)
	}
	return codes
}

// Tokens returns the encoded entries in order.
func (l *List) Tokens() []string { return EncodeTokens(l.entries) }

// Clone returns an independent copy of the list.
func (l *List) Clone() *List { return &List{entries: slices.Clone(l.entries)} }

// Index returns the position of code, letter case ignored, or -1.
func (l *List) Index(code string) int {
	return slices.IndexFunc(l.entries, func(e Entry) bool { return strings.EqualFold(e.Code, code) })
}

// Add appends code, lowercased. count is optional, pass none for a tracked
// only entry.
//
// It fails with ErrDuplicateEntry, leaving the list unchanged, if the code is
// already present.
func (l *List) Add(code string, count ...int) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ErrEmptyCode
	}
	if err := checkCount(count); err != nil {
		return fmt.Errorf("cannot add %q: %w", code, err)
	}
	if l.Index(code) >= 0 {
		return fmt.Errorf("cannot add %q: %w", code, ErrDuplicateEntry)
	}
	e := E(code)
	if len(count) > 0 {
		e = P(code, count[0])
	}
	l.entries = append(l.entries, e)
	return nil
}

// Remove deletes the entry at index i, shifting later entries left.
func (l *List) Remove(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return nil
}

// Update replaces only the count of the entry at index i. With no count the
// entry becomes tracked only.
func (l *List) Update(i int, count ...int) error {
	if err := l.check(i); err != nil {
		return err
	}
	if err := checkCount(count); err != nil {
		return fmt.Errorf("cannot update %q: %w", l.entries[i].Code, err)
	}
	code := l.entries[i].Code
	if len(count) > 0 {
		l.entries[i] = P(code, count[0])
	} else {
		l.entries[i] = E(code)
	}
	return nil
}

// MoveUp swaps the entry at index i with its predecessor. It does nothing for
// the first entry.
func (l *List) MoveUp(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	if i == 0 {
		return nil
	}
	l.entries[i-1], l.entries[i] = l.entries[i], l.entries[i-1]
	return nil
}

// MoveDown swaps the entry at index i with its successor. It does nothing for
// the last entry.
func (l *List) MoveDown(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	if i == len(l.entries)-1 {
		return nil
	}
	l.entries[i], l.entries[i+1] = l.entries[i+1], l.entries[i]
	return nil
}

// Dedup drops every entry whose code, letter case ignored, appears earlier in
// the list. It returns the number of dropped entries.
func (l *List) Dedup() int {
	seen := make(map[string]bool, len(l.entries))
	kept := l.entries[:0]
	for _, e := range l.entries {
		key := strings.ToLower(e.Code)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, e)
	}
	dropped := len(l.entries) - len(kept)
	clear(l.entries[len(kept):])
	l.entries = kept
	return dropped
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.entries) {
		return fmt.Errorf("position %d in a list of %d: %w", i, len(l.entries), ErrIndexOutOfRange)
	}
	return nil
}

// checkCount rejects an optional count that would not survive its token.
func checkCount(count []int) error {
	if len(count) > 0 && (count[0] < 0 || count[0] > math.MaxInt32) {
		return fmt.Errorf("%d: %w", count[0], ErrInvalidCount)
	}
	return nil
}
