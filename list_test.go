package watchlist

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestListAdd(t *testing.T) {
	l := NewList()
	if err := l.Add("SZ000001", 10); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := l.Add(" sh600000 "); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	want := []string{"sz000001-10", "sh600000"}
	if got := l.Tokens(); !slices.Equal(got, want) {
		t.Errorf("Tokens() = %q, want %q", got, want)
	}
	if err := l.Add("  "); !errors.Is(err, ErrEmptyCode) {
		t.Errorf("Add(blank) error = %v, want %v", err, ErrEmptyCode)
	}
}

func TestListAddDuplicate(t *testing.T) {
	for _, code := range []string{"sz000001", "SZ000001", "Sz000001"} {
		l := NewList(P("sz000001", 10), E("sh600000"))
		before := l.Tokens()
		err := l.Add(code, 5)
		if !errors.Is(err, ErrDuplicateEntry) {
			t.Errorf("Add(%q) error = %v, want %v", code, err, ErrDuplicateEntry)
		}
		if got := l.Tokens(); !slices.Equal(got, before) {
			t.Errorf("Add(%q) changed the list: %q, want %q", code, got, before)
		}
	}
}

func TestListIndexOutOfRange(t *testing.T) {
	ops := map[string]func(l *List, i int) error{
		"remove":   (*List).Remove,
		"update":   func(l *List, i int) error { return l.Update(i, 3) },
		"moveUp":   (*List).MoveUp,
		"moveDown": (*List).MoveDown,
	}
	for name, op := range ops {
		for _, i := range []int{-1, 2, 10} {
			l := NewList(E("sz000001"), E("sh600000"))
			if err := op(l, i); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("%s(%d) error = %v, want %v", name, i, err, ErrIndexOutOfRange)
			}
			if got, want := l.Tokens(), []string{"sz000001", "sh600000"}; !slices.Equal(got, want) {
				t.Errorf("%s(%d) changed the list: %q", name, i, got)
			}
		}
	}
}

func TestListRemoveUpdate(t *testing.T) {
	l := NewList(E("a"), P("b", 2), E("c"))
	if err := l.Remove(1); err != nil {
		t.Fatal(err)
	}
	if got, want := l.Tokens(), []string{"a", "c"}; !slices.Equal(got, want) {
		t.Errorf("after Remove(1) = %q, want %q", got, want)
	}
	if err := l.Update(1, 7); err != nil {
		t.Fatal(err)
	}
	if err := l.Update(0); err != nil {
		t.Fatal(err)
	}
	if got, want := l.Tokens(), []string{"a", "c-7"}; !slices.Equal(got, want) {
		t.Errorf("after Update = %q, want %q", got, want)
	}
	if err := l.Update(1); err != nil {
		t.Fatal(err)
	}
	if got, want := l.Tokens(), []string{"a", "c"}; !slices.Equal(got, want) {
		t.Errorf("after Update(1) = %q, want %q", got, want)
	}
}

func TestListMove(t *testing.T) {
	testCases := []struct {
		name string
		op   func(l *List) error
		want []string
	}{
		{"up first is no-op", func(l *List) error { return l.MoveUp(0) }, []string{"a", "b", "c", "d"}},
		{"down last is no-op", func(l *List) error { return l.MoveDown(3) }, []string{"a", "b", "c", "d"}},
		{"up", func(l *List) error { return l.MoveUp(2) }, []string{"a", "c", "b", "d"}},
		{"down", func(l *List) error { return l.MoveDown(1) }, []string{"a", "c", "b", "d"}},
		{"down first", func(l *List) error { return l.MoveDown(0) }, []string{"b", "a", "c", "d"}},
		{"up last", func(l *List) error { return l.MoveUp(3) }, []string{"a", "b", "d", "c"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewList(E("a"), E("b"), E("c"), E("d"))
			if err := tc.op(l); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := l.Codes(); !slices.Equal(got, tc.want) {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestListDedup(t *testing.T) {
	l := NewList(P("sz000001", 1), E("sh600000"), P("SZ000001", 2), E("sh600000"))
	if got, want := l.Tokens(), []string{"sz000001-1", "sh600000"}; !slices.Equal(got, want) {
		t.Errorf("NewList() = %q, want %q", got, want)
	}
	if n := l.Dedup(); n != 0 {
		t.Errorf("Dedup() on a clean list dropped %d", n)
	}
}

func TestListClone(t *testing.T) {
	l := NewList(E("a"), E("b"))
	c := l.Clone()
	if err := c.Remove(0); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 {
		t.Errorf("Clone() shares entries with the original")
	}
}

func TestListInvalidCount(t *testing.T) {
	testCases := []struct {
		name  string
		count int
	}{
		{"negative", -5},
		{"minus one", -1},
		{"above int32", math.MaxInt32 + 1},
		{"three billion", 3_000_000_000},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewList(E("sh600000"))
			if err := l.Add("sz000001", tc.count); !errors.Is(err, ErrInvalidCount) {
				t.Errorf("Add(%d) error = %v, want %v", tc.count, err, ErrInvalidCount)
			}
			if err := l.Update(0, tc.count); !errors.Is(err, ErrInvalidCount) {
				t.Errorf("Update(%d) error = %v, want %v", tc.count, err, ErrInvalidCount)
			}
			if got, want := l.Tokens(), []string{"sh600000"}; !slices.Equal(got, want) {
				t.Errorf("list changed: %q, want %q", got, want)
			}
		})
	}
}

func TestListCountBoundsRoundTrip(t *testing.T) {
	for _, count := range []int{0, 1, math.MaxInt32} {
		l := NewList()
		if err := l.Add("sz000001", count); err != nil {
			t.Fatalf("Add(%d) error: %v", count, err)
		}
		if err := l.Update(0, count); err != nil {
			t.Fatalf("Update(%d) error: %v", count, err)
		}
		e, _ := l.At(0)
		got := DecodeToken(EncodeToken(e))
		if got.Code != e.Code || got.Held() != e.Held() || (e.Held() && got.Count != count) {
			t.Errorf("round trip of %+v = %+v", e, got)
		}
	}
}
