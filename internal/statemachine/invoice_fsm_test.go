package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelierhq/atelier-api/internal/models"
)

func TestInvoiceLifecycle(t *testing.T) {
	ctx := context.Background()

	inv := &models.Invoice{Status: models.InvoiceStatusDraft}
	fsm := NewInvoiceFSM(inv)

	assert.NoError(t, fsm.Send(ctx))
	assert.Equal(t, models.InvoiceStatusSent, inv.Status)

	assert.NoError(t, fsm.MarkOverdue(ctx))
	assert.Equal(t, models.InvoiceStatusOverdue, inv.Status)

	// Resend after overdue is allowed
	assert.NoError(t, fsm.Send(ctx))
	assert.Equal(t, models.InvoiceStatusSent, inv.Status)

	assert.NoError(t, fsm.Pay(ctx))
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
}

func TestInvoiceTerminalStates(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status string
	}{
		{"Paid", models.InvoiceStatusPaid},
		{"Cancelled", models.InvoiceStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &models.Invoice{Status: tt.status}
			fsm := NewInvoiceFSM(inv)

			assert.Error(t, fsm.Send(ctx))
			assert.Error(t, fsm.Pay(ctx))
			assert.Error(t, fsm.Cancel(ctx))
			assert.Equal(t, tt.status, inv.Status, "status unchanged after rejected transitions")
		})
	}
}

func TestInvoiceCancelFromOpenStates(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{
		models.InvoiceStatusDraft,
		models.InvoiceStatusSent,
		models.InvoiceStatusOverdue,
	} {
		inv := &models.Invoice{Status: status}
		assert.NoError(t, NewInvoiceFSM(inv).Cancel(ctx), status)
		assert.Equal(t, models.InvoiceStatusCancelled, inv.Status)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	ctx := context.Background()

	e := &models.Expense{Status: models.ExpenseStatusPending}
	fsm := NewExpenseFSM(e)

	assert.NoError(t, fsm.Approve(ctx))
	assert.Equal(t, models.ExpenseStatusApproved, e.Status)

	assert.NoError(t, fsm.Pay(ctx))
	assert.Equal(t, models.ExpenseStatusPaid, e.Status)

	// Paid is terminal
	assert.Error(t, fsm.Approve(ctx))
	assert.Error(t, fsm.Reject(ctx))
}

func TestExpenseRejectResubmit(t *testing.T) {
	ctx := context.Background()

	e := &models.Expense{Status: models.ExpenseStatusPending}
	fsm := NewExpenseFSM(e)

	assert.NoError(t, fsm.Reject(ctx))
	assert.Equal(t, models.ExpenseStatusRejected, e.Status)

	assert.NoError(t, fsm.Resubmit(ctx))
	assert.Equal(t, models.ExpenseStatusPending, e.Status)

	// Rejected expenses cannot be paid directly
	assert.NoError(t, fsm.Reject(ctx))
	assert.Error(t, fsm.Pay(ctx))
}
