package navstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushOpensDrawer(t *testing.T) {
	s := New()
	assert.False(t, s.IsOpen())
	assert.Equal(t, 0, s.Depth())

	s.Push(EntityClient, 1, nil, ModeView)
	assert.True(t, s.IsOpen())
	assert.Equal(t, 1, s.Depth())
}

func TestPushIdenticalTopIsNoOp(t *testing.T) {
	s := New()
	s.Push(EntityClient, 7, nil, ModeView)
	s.Push(EntityClient, 7, nil, ModeView)
	s.Push(EntityClient, 7, nil, ModeView)

	assert.Equal(t, 1, s.Depth())

	// A different mode for the same entity is a real push
	s.Push(EntityClient, 7, nil, ModeEdit)
	assert.Equal(t, 2, s.Depth())

	// New-entity frames (id 0) always stack
	s.Push(EntityIncome, 0, nil, ModeEdit)
	s.Push(EntityIncome, 0, nil, ModeEdit)
	assert.Equal(t, 4, s.Depth())
}

func TestPopClosesWhenEmpty(t *testing.T) {
	s := New()
	s.Push(EntityProject, 1, nil, ModeView)
	s.Push(EntityInvoice, 2, nil, ModeView)

	s.Pop()
	assert.True(t, s.IsOpen())
	assert.Equal(t, 1, s.Depth())

	s.Pop()
	assert.False(t, s.IsOpen())
	assert.Equal(t, 0, s.Depth())

	// Popping an empty stack is a no-op
	s.Pop()
	assert.Equal(t, 0, s.Depth())
	assert.False(t, s.IsOpen())
}

func TestOpenTracksNonEmpty(t *testing.T) {
	s := New()

	for i := 0; i < 3; i++ {
		s.Push(EntityExpense, uint(i+1), nil, ModeView)
		assert.Equal(t, s.Depth() > 0, s.IsOpen())
	}
	for i := 0; i < 4; i++ {
		s.Pop()
		assert.Equal(t, s.Depth() > 0, s.IsOpen())
	}
}

func TestSetModePreservesDepth(t *testing.T) {
	s := New()
	s.Push(EntityClient, 1, nil, ModeView)
	s.Push(EntityProject, 2, nil, ModeView)

	s.SetMode(ModeEdit)
	assert.Equal(t, 2, s.Depth())
	top, ok := s.Top()
	assert.True(t, ok)
	assert.Equal(t, ModeEdit, top.Mode)

	s.SetMode(ModeView)
	assert.Equal(t, 2, s.Depth())
	top, _ = s.Top()
	assert.Equal(t, ModeView, top.Mode)

	// Unknown modes sanitize to view
	s.SetMode(Mode("delete"))
	top, _ = s.Top()
	assert.Equal(t, ModeView, top.Mode)
}

func TestBack(t *testing.T) {
	s := New()
	s.Push(EntityClient, 1, nil, ModeView)
	s.Push(EntityInvoice, 2, nil, ModeEdit)

	// Depth > 1: back unwinds a frame
	s.Back()
	assert.Equal(t, 1, s.Depth())

	// Depth 1 in view mode: back does nothing
	s.Back()
	assert.Equal(t, 1, s.Depth())
	assert.True(t, s.IsOpen())

	// Depth 1 in edit mode: back demotes to view
	s.SetMode(ModeEdit)
	s.Back()
	assert.Equal(t, 1, s.Depth())
	top, _ := s.Top()
	assert.Equal(t, ModeView, top.Mode)
}

func TestCancelEdit(t *testing.T) {
	s := New()

	// Editing an existing entity reverts to view
	s.Push(EntityExpense, 5, nil, ModeEdit)
	s.CancelEdit()
	assert.Equal(t, 1, s.Depth())
	top, _ := s.Top()
	assert.Equal(t, ModeView, top.Mode)

	// Cancelling a new-entity frame pops it
	s.Push(EntityExpense, 0, nil, ModeEdit)
	assert.Equal(t, 2, s.Depth())
	s.CancelEdit()
	assert.Equal(t, 1, s.Depth())

	// Cancelling outside edit mode is a no-op
	s.CancelEdit()
	assert.Equal(t, 1, s.Depth())
}

func TestReplaceTopLandsOnView(t *testing.T) {
	s := New()
	s.Push(EntityClient, 0, nil, ModeEdit)

	s.ReplaceTop(42, map[string]any{"name": "Studio North"})

	top, ok := s.Top()
	assert.True(t, ok)
	assert.Equal(t, uint(42), top.EntityID)
	assert.Equal(t, ModeView, top.Mode)
	assert.Equal(t, 1, s.Depth())
}

func TestRefreshTopGuardsIdentity(t *testing.T) {
	s := New()
	s.Push(EntityInvoice, 9, "stale", ModeEdit)

	// Matching type+id refreshes data, mode untouched
	s.RefreshTop(EntityInvoice, 9, "fresh")
	top, _ := s.Top()
	assert.Equal(t, "fresh", top.Entity)
	assert.Equal(t, ModeEdit, top.Mode)

	// A mismatched frame ignores the refresh
	s.RefreshTop(EntityInvoice, 10, "other")
	top, _ = s.Top()
	assert.Equal(t, "fresh", top.Entity)
}

func TestCloseAll(t *testing.T) {
	s := New()
	s.Push(EntityClient, 1, nil, ModeView)
	s.Push(EntityProject, 2, nil, ModeView)
	s.Push(EntityInvoice, 3, nil, ModeEdit)

	s.CloseAll()
	assert.Equal(t, 0, s.Depth())
	assert.False(t, s.IsOpen())

	// Safe on an already-empty stack
	s.CloseAll()
	assert.False(t, s.IsOpen())
}

func TestTitle(t *testing.T) {
	s := New()
	assert.Equal(t, "", s.Title())

	s.Push(EntityClient, 3, nil, ModeView)
	assert.Equal(t, "Client Details", s.Title())

	s.SetMode(ModeEdit)
	assert.Equal(t, "Edit Client", s.Title())

	s.Push(EntityInvoice, 0, nil, ModeEdit)
	assert.Equal(t, "New Invoice", s.Title())

	s.Pop()
	assert.Equal(t, "Edit Client", s.Title())
}

func TestDrillDownScenario(t *testing.T) {
	s := New()

	// Client list row → client detail → one of its invoices → its project
	s.Push(EntityClient, 1, nil, ModeView)
	s.Push(EntityInvoice, 11, nil, ModeView)
	s.Push(EntityProject, 4, nil, ModeView)

	assert.Equal(t, 3, s.Depth())
	assert.Equal(t, "Project Details", s.Title())
	assert.True(t, s.CanGoBack())

	s.Back()
	assert.Equal(t, "Invoice Details", s.Title())
	s.Back()
	assert.Equal(t, "Client Details", s.Title())
	assert.False(t, s.CanGoBack())

	s.Back()
	assert.Equal(t, 1, s.Depth(), "back at depth 1 in view mode keeps the frame")
}
