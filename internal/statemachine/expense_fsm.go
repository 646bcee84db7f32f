package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/atelierhq/atelier-api/internal/models"
)

// ExpenseFSM wraps an expense with its approval state machine
type ExpenseFSM struct {
	expense *models.Expense
	fsm     *fsm.FSM
}

// NewExpenseFSM creates a new expense state machine
func NewExpenseFSM(expense *models.Expense) *ExpenseFSM {
	efsm := &ExpenseFSM{
		expense: expense,
	}

	efsm.fsm = fsm.NewFSM(
		expense.Status,
		fsm.Events{
			// pending → approved
			{Name: "approve", Src: []string{models.ExpenseStatusPending}, Dst: models.ExpenseStatusApproved},

			// pending → rejected
			{Name: "reject", Src: []string{models.ExpenseStatusPending}, Dst: models.ExpenseStatusRejected},

			// approved → paid
			{Name: "pay", Src: []string{models.ExpenseStatusApproved}, Dst: models.ExpenseStatusPaid},

			// rejected → pending (resubmit)
			{Name: "resubmit", Src: []string{models.ExpenseStatusRejected}, Dst: models.ExpenseStatusPending},
		},
		fsm.Callbacks{},
	)

	return efsm
}

// Approve transitions the expense to approved state
func (e *ExpenseFSM) Approve(ctx context.Context) error {
	if !e.expense.MayApprove() {
		return fmt.Errorf("expense cannot be approved in current state: %s", e.expense.Status)
	}

	if err := e.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve expense: %w", err)
	}

	e.expense.Status = e.fsm.Current()
	return nil
}

// Reject transitions the expense to rejected state
func (e *ExpenseFSM) Reject(ctx context.Context) error {
	if !e.expense.MayReject() {
		return fmt.Errorf("expense cannot be rejected in current state: %s", e.expense.Status)
	}

	if err := e.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("failed to reject expense: %w", err)
	}

	e.expense.Status = e.fsm.Current()
	return nil
}

// Pay transitions the expense to paid state
func (e *ExpenseFSM) Pay(ctx context.Context) error {
	if !e.expense.MayMarkPaid() {
		return fmt.Errorf("expense cannot be paid in current state: %s", e.expense.Status)
	}

	if err := e.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to mark expense paid: %w", err)
	}

	e.expense.Status = e.fsm.Current()
	return nil
}

// Resubmit transitions a rejected expense back to pending
func (e *ExpenseFSM) Resubmit(ctx context.Context) error {
	if err := e.fsm.Event(ctx, "resubmit"); err != nil {
		return fmt.Errorf("failed to resubmit expense: %w", err)
	}

	e.expense.Status = e.fsm.Current()
	return nil
}

// Current returns the current state
func (e *ExpenseFSM) Current() string {
	return e.fsm.Current()
}

// Can checks if a transition is possible
func (e *ExpenseFSM) Can(event string) bool {
	return e.fsm.Can(event)
}
