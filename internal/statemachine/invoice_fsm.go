package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/atelierhq/atelier-api/internal/models"
)

// InvoiceFSM wraps an invoice with its state machine. The backend owns the
// persisted status; this machine validates transitions client-side before a
// mutation is issued, so an impossible request never leaves the service.
type InvoiceFSM struct {
	invoice *models.Invoice
	fsm     *fsm.FSM
}

// NewInvoiceFSM creates a new invoice state machine
func NewInvoiceFSM(invoice *models.Invoice) *InvoiceFSM {
	ifsm := &InvoiceFSM{
		invoice: invoice,
	}

	ifsm.fsm = fsm.NewFSM(
		invoice.Status,
		fsm.Events{
			// draft/overdue → sent (initial send or resend)
			{Name: "send", Src: []string{models.InvoiceStatusDraft, models.InvoiceStatusOverdue}, Dst: models.InvoiceStatusSent},

			// sent → overdue
			{Name: "mark_overdue", Src: []string{models.InvoiceStatusSent}, Dst: models.InvoiceStatusOverdue},

			// draft/sent/overdue → paid (via income creation side effect)
			{Name: "pay", Src: []string{models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue}, Dst: models.InvoiceStatusPaid},

			// draft/sent/overdue → cancelled
			{Name: "cancel", Src: []string{models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue}, Dst: models.InvoiceStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// Send transitions the invoice to sent state
func (i *InvoiceFSM) Send(ctx context.Context) error {
	if !i.invoice.MaySend() {
		return fmt.Errorf("invoice cannot be sent in current state: %s", i.invoice.Status)
	}

	if err := i.fsm.Event(ctx, "send"); err != nil {
		return fmt.Errorf("failed to send invoice: %w", err)
	}

	i.invoice.Status = i.fsm.Current()
	return nil
}

// Pay transitions the invoice to paid state
func (i *InvoiceFSM) Pay(ctx context.Context) error {
	if !i.invoice.MayMarkPaid() {
		return fmt.Errorf("invoice cannot be paid in current state: %s", i.invoice.Status)
	}

	if err := i.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	i.invoice.Status = i.fsm.Current()
	return nil
}

// MarkOverdue transitions the invoice to overdue state
func (i *InvoiceFSM) MarkOverdue(ctx context.Context) error {
	if err := i.fsm.Event(ctx, "mark_overdue"); err != nil {
		return fmt.Errorf("failed to mark invoice overdue: %w", err)
	}

	i.invoice.Status = i.fsm.Current()
	return nil
}

// Cancel transitions the invoice to cancelled state
func (i *InvoiceFSM) Cancel(ctx context.Context) error {
	if !i.invoice.MayCancel() {
		return fmt.Errorf("invoice cannot be cancelled in current state: %s", i.invoice.Status)
	}

	if err := i.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("failed to cancel invoice: %w", err)
	}

	i.invoice.Status = i.fsm.Current()
	return nil
}

// Current returns the current state
func (i *InvoiceFSM) Current() string {
	return i.fsm.Current()
}

// Can checks if a transition is possible
func (i *InvoiceFSM) Can(event string) bool {
	return i.fsm.Can(event)
}
