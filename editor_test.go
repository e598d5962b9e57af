package watchlist

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestEditorTransitions(t *testing.T) {
	e := NewEditor(NewList(E("a")))
	invalid := map[string]func() error{
		"add":    func() error { return e.Add("b") },
		"remove": func() error { return e.Remove(0) },
		"edit":   func() error { return e.StartEdit(0) },
		"commit": func() error { return e.CommitEdit() },
		"cancel": func() error { return e.CancelEdit() },
		"close":  func() error { return e.Close() },
		"moveUp": func() error { return e.MoveUp(0) },
		"save":   func() error { return e.Save(context.Background(), nil) },
	}
	for name, op := range invalid {
		if err := op(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s while browsing: error = %v, want %v", name, err, ErrInvalidTransition)
		}
	}

	if err := e.Open(); err != nil {
		t.Fatal(err)
	}
	if err := e.Open(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Open() twice: error = %v", err)
	}
	if err := e.StartEdit(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("StartEdit(3) error = %v, want %v", err, ErrIndexOutOfRange)
	}
	if e.State() != FormOpen {
		t.Errorf("state = %v after a failed StartEdit", e.State())
	}
	if err := e.StartEdit(0); err != nil {
		t.Fatal(err)
	}
	if i, ok := e.Editing(); !ok || i != 0 {
		t.Errorf("Editing() = %d, %v", i, ok)
	}
	if err := e.Add("b"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Add() while editing: error = %v", err)
	}
	if err := e.CommitEdit(4); err != nil {
		t.Fatal(err)
	}
	if got, want := e.List().Tokens(), []string{"a-4"}; !slices.Equal(got, want) {
		t.Errorf("after commit = %q, want %q", got, want)
	}
	if err := e.StartEdit(0); err != nil {
		t.Fatal(err)
	}
	if err := e.CancelEdit(); err != nil {
		t.Fatal(err)
	}
	if got, want := e.List().Tokens(), []string{"a-4"}; !slices.Equal(got, want) {
		t.Errorf("after cancel = %q, want %q", got, want)
	}
}

func TestEditorCloseDiscards(t *testing.T) {
	l := NewList(E("a"))
	e := NewEditor(l)
	e.Open()
	e.Add("b", 1)
	e.MoveUp(1)
	if got, want := e.List().Tokens(), []string{"b-1", "a"}; !slices.Equal(got, want) {
		t.Errorf("working copy = %q, want %q", got, want)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if got, want := e.List().Tokens(), []string{"a"}; !slices.Equal(got, want) {
		t.Errorf("after Close() = %q, want %q", got, want)
	}
	if e.State() != Browsing {
		t.Errorf("state = %v", e.State())
	}
}

func TestEditorSave(t *testing.T) {
	ctx := context.Background()
	link, saved := &tokens{}, &tokens{}
	s := NewSync(link, saved)

	e := NewEditor(nil)
	e.Open()
	e.Add("sz000001", 10)
	e.Add("sh600000")
	e.MoveDown(0)
	if err := e.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	want := []string{"sh600000", "sz000001-10"}
	if !slices.Equal(link.values, want) || !slices.Equal(saved.values, want) {
		t.Errorf("saved link=%q saved=%q, want %q", link.values, saved.values, want)
	}
	if e.State() != Browsing || !slices.Equal(e.List().Tokens(), want) {
		t.Errorf("after Save() state=%v list=%q", e.State(), e.List().Tokens())
	}

	link.failWrite = true
	e.Open()
	e.Remove(0)
	if err := e.Save(ctx, s); !errors.Is(err, errBroken) {
		t.Fatalf("Save() error = %v", err)
	}
	if e.State() != FormOpen {
		t.Errorf("state = %v after a failed save, want %v", e.State(), FormOpen)
	}
}
