package watchlist

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by Editor operations not allowed in its
// current state.
var ErrInvalidTransition = errors.New("invalid transition")

// EditorState is the state of an Editor.
type EditorState int

const (
	// Browsing shows quotes, the list is not being edited.
	Browsing EditorState = iota
	// FormOpen allows structural edits: add, remove, reorder.
	FormOpen
	// Editing is changing the count of one entry, see Editor.Editing.
	Editing
)

func (s EditorState) String() string {
	switch s {
	case FormOpen:
		return "form open"
	case Editing:
		return "editing"
	default:
		return "browsing"
	}
}

// Editor drives interactive editing of a watchlist.
//
// Edits apply to a working copy. Save publishes it, Close drops it.
//
//	Browsing --Open--> FormOpen --StartEdit(i)--> Editing(i)
//	Editing(i) --CommitEdit/CancelEdit--> FormOpen
//	FormOpen --Save/Close--> Browsing
type Editor struct {
	list    *List
	working *List
	state   EditorState
	index   int
}

// NewEditor returns an editor browsing l.
func NewEditor(l *List) *Editor {
	if l == nil {
		l = NewList()
	}
	return &Editor{list: l}
}

// State returns the current state.
func (e *Editor) State() EditorState { return e.state }

// Editing returns the index of the entry being edited, and whether an entry
// is being edited.
func (e *Editor) Editing() (int, bool) { return e.index, e.state == Editing }

// List returns the working copy while editing, the published list otherwise.
func (e *Editor) List() *List {
	if e.state == Browsing {
		return e.list
	}
	return e.working
}

func (e *Editor) expect(op string, s EditorState) error {
	if e.state != s {
		return fmt.Errorf("cannot %s while %s: %w", op, e.state, ErrInvalidTransition)
	}
	return nil
}

// Open starts editing a copy of the list.
func (e *Editor) Open() error {
	if err := e.expect("open", Browsing); err != nil {
		return err
	}
	e.working = e.list.Clone()
	e.state = FormOpen
	return nil
}

// Add appends an entry to the working copy. See List.Add.
func (e *Editor) Add(code string, count ...int) error {
	if err := e.expect("add", FormOpen); err != nil {
		return err
	}
	return e.working.Add(code, count...)
}

// Remove deletes an entry from the working copy.
func (e *Editor) Remove(i int) error {
	if err := e.expect("remove", FormOpen); err != nil {
		return err
	}
	return e.working.Remove(i)
}

// MoveUp moves an entry of the working copy one position up.
func (e *Editor) MoveUp(i int) error {
	if err := e.expect("move", FormOpen); err != nil {
		return err
	}
	return e.working.MoveUp(i)
}

// MoveDown moves an entry of the working copy one position down.
func (e *Editor) MoveDown(i int) error {
	if err := e.expect("move", FormOpen); err != nil {
		return err
	}
	return e.working.MoveDown(i)
}

// StartEdit starts editing the count of entry i.
func (e *Editor) StartEdit(i int) error {
	if err := e.expect("edit", FormOpen); err != nil {
		return err
	}
	if err := e.working.check(i); err != nil {
		return err
	}
	e.index, e.state = i, Editing
	return nil
}

// CommitEdit sets the count of the edited entry, none to make it tracked only.
func (e *Editor) CommitEdit(count ...int) error {
	if err := e.expect("commit", Editing); err != nil {
		return err
	}
	if err := e.working.Update(e.index, count...); err != nil {
		return err
	}
	e.state = FormOpen
	return nil
}

// CancelEdit leaves the edited entry unchanged.
func (e *Editor) CancelEdit() error {
	if err := e.expect("cancel", Editing); err != nil {
		return err
	}
	e.state = FormOpen
	return nil
}

// Save publishes the working copy through s and returns to browsing. On
// failure the editor stays open so that the save can be retried.
func (e *Editor) Save(ctx context.Context, s *Sync) error {
	if err := e.expect("save", FormOpen); err != nil {
		return err
	}
	if err := s.Save(ctx, e.working); err != nil {
		return err
	}
	e.list, e.working, e.state = e.working, nil, Browsing
	return nil
}

// Close drops the working copy and returns to browsing.
func (e *Editor) Close() error {
	if err := e.expect("close", FormOpen); err != nil {
		return err
	}
	e.working, e.state = nil, Browsing
	return nil
}
