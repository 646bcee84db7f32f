// Package navstack implements the drawer controller: an ordered stack of
// frames rendered one at a time in a single overlay panel. The stack is what
// allows unbounded drill-down (client → invoice → project → …) with LIFO
// unwind, mirroring browser history semantics without touching the URL.
package navstack

import (
	"context"
	"sync"

	"github.com/looplab/fsm"
)

// Mode is the presentation mode of a frame.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// EntityType names the kind of record a frame shows.
type EntityType string

const (
	EntityClient  EntityType = "client"
	EntityProject EntityType = "project"
	EntityInvoice EntityType = "invoice"
	EntityIncome  EntityType = "income"
	EntityExpense EntityType = "expense"
)

// Drawer state machine states and events.
const (
	stateClosed = "closed"
	stateOpen   = "open"

	eventOpen  = "open"
	eventClose = "close"
)

// Frame is one entry on the stack: which entity is shown, its data, and
// whether it is being viewed or edited. A frame with EntityID zero in edit
// mode represents "create a new entity of this type".
type Frame struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   uint       `json:"entity_id"`
	Entity     any        `json:"entity"`
	Mode       Mode       `json:"mode"`
}

// IsNew reports whether the frame represents a not-yet-created entity.
func (f *Frame) IsNew() bool {
	return f.EntityID == 0 && f.Entity == nil
}

// Stack owns the drawer's frames. The drawer is open iff the stack is
// non-empty; the embedded state machine and the slice are only ever mutated
// together, under the lock.
type Stack struct {
	mu     sync.Mutex
	frames []Frame
	drawer *fsm.FSM
}

// New creates an empty, closed stack.
func New() *Stack {
	return &Stack{
		drawer: fsm.NewFSM(
			stateClosed,
			fsm.Events{
				{Name: eventOpen, Src: []string{stateClosed}, Dst: stateOpen},
				{Name: eventClose, Src: []string{stateOpen}, Dst: stateClosed},
			},
			fsm.Callbacks{},
		),
	}
}

// Push appends a frame, opening the drawer if it was closed. Re-pushing the
// identical target (same type, id and mode as the current top) is a no-op so
// re-clicking a row cannot grow the stack.
func (s *Stack) Push(t EntityType, id uint, entity any, mode Mode) {
	if mode != ModeEdit {
		mode = ModeView
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if top := s.top(); top != nil &&
		top.EntityType == t && top.EntityID == id && id != 0 && top.Mode == mode {
		return
	}

	s.frames = append(s.frames, Frame{EntityType: t, EntityID: id, Entity: entity, Mode: mode})
	if s.drawer.Current() == stateClosed {
		_ = s.drawer.Event(context.Background(), eventOpen)
	}
}

// Pop removes the top frame, closing the drawer when the stack empties.
// Popping an empty stack is a no-op, not an error.
func (s *Stack) Pop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pop()
}

func (s *Stack) pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
	if len(s.frames) == 0 && s.drawer.Current() == stateOpen {
		_ = s.drawer.Event(context.Background(), eventClose)
	}
}

// Back is the user-facing back affordance. At depth > 1 it unwinds one
// frame. At depth 1 there is no lower frame to return to, so an edit-mode
// frame is demoted to view instead and a view-mode frame is left alone.
func (s *Stack) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) > 1 {
		s.pop()
		return
	}
	if top := s.top(); top != nil && top.Mode == ModeEdit {
		top.Mode = ModeView
	}
}

// SetMode switches the top frame between view and edit without changing
// depth. No-op on an empty stack.
func (s *Stack) SetMode(mode Mode) {
	if mode != ModeEdit {
		mode = ModeView
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if top := s.top(); top != nil {
		top.Mode = mode
	}
}

// CancelEdit reverts the top frame to view mode. A frame for a
// not-yet-created entity has nothing to revert to, so it is popped instead.
func (s *Stack) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := s.top()
	if top == nil || top.Mode != ModeEdit {
		return
	}
	if top.IsNew() {
		s.pop()
		return
	}
	top.Mode = ModeView
}

// ReplaceTop refreshes the top frame's entity after a successful mutation
// and resets it to view mode; depth is unchanged. A successful create lands
// the user on the detail view of what they just made.
func (s *Stack) ReplaceTop(id uint, entity any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if top := s.top(); top != nil {
		top.EntityID = id
		top.Entity = entity
		top.Mode = ModeView
	}
}

// RefreshTop swaps in newer entity data for the top frame, preserving mode.
// No-op unless the top frame still shows the same type and id, so a stale
// fetch for a frame the user already left cannot land anywhere.
func (s *Stack) RefreshTop(t EntityType, id uint, entity any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if top := s.top(); top != nil && top.EntityType == t && top.EntityID == id {
		top.Entity = entity
	}
}

// CloseAll clears the stack and closes the drawer unconditionally.
func (s *Stack) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
	if s.drawer.Current() == stateOpen {
		_ = s.drawer.Event(context.Background(), eventClose)
	}
}

// Depth returns the number of frames.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// IsOpen reports whether the drawer is rendered.
func (s *Stack) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer.Current() == stateOpen
}

// Top returns a copy of the top frame.
func (s *Stack) Top() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if top := s.top(); top != nil {
		return *top, true
	}
	return Frame{}, false
}

// CanGoBack reports whether the back affordance should be offered: either a
// lower frame exists, or the top frame can be demoted from edit to view.
func (s *Stack) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) > 1 {
		return true
	}
	top := s.top()
	return top != nil && top.Mode == ModeEdit
}

// Title returns the drawer title, a pure function of the top frame's type
// and mode. Empty when the drawer is closed.
func (s *Stack) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := s.top()
	if top == nil {
		return ""
	}
	name := entityTitle(top.EntityType)
	switch {
	case top.Mode == ModeEdit && top.IsNew():
		return "New " + name
	case top.Mode == ModeEdit:
		return "Edit " + name
	default:
		return name + " Details"
	}
}

func (s *Stack) top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func entityTitle(t EntityType) string {
	switch t {
	case EntityClient:
		return "Client"
	case EntityProject:
		return "Project"
	case EntityInvoice:
		return "Invoice"
	case EntityIncome:
		return "Income"
	case EntityExpense:
		return "Expense"
	default:
		return "Record"
	}
}
