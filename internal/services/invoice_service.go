package services

import (
	"context"
	"strings"

	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/listview"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/internal/statemachine"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// InvoiceService exposes invoice operations over the gateway. Status
// changes are validated through the invoice state machine before any
// mutation is issued; marking paid is expressed as income creation, never a
// direct field write.
type InvoiceService struct {
	gw *gateway.Gateway
}

// InvoiceForm carries the UI's field names.
type InvoiceForm struct {
	InvoiceNumber string            `json:"invoiceNumber" binding:"required"`
	ClientID      uint              `json:"clientId" binding:"required"`
	ProjectID     uint              `json:"projectId"`
	Amount        float64           `json:"amount"`
	GeneratedDate string            `json:"generatedDate"`
	DueDate       string            `json:"dueDate"`
	Description   string            `json:"description"`
	Items         []InvoiceItemForm `json:"items"`
}

// InvoiceItemForm is one invoice line as the UI submits it.
type InvoiceItemForm struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// PaymentForm records a payment against an invoice.
type PaymentForm struct {
	Amount        float64 `json:"amount"`
	ReceivedDate  string  `json:"receivedDate"`
	PaymentMethod string  `json:"paymentMethod"`
	Description   string  `json:"description"`
}

func NewInvoiceService(gw *gateway.Gateway) *InvoiceService {
	return &InvoiceService{gw: gw}
}

func invoiceFields() listview.Fields[models.Invoice] {
	return listview.Fields[models.Invoice]{
		Search: []func(models.Invoice) string{
			func(i models.Invoice) string { return i.InvoiceNumber },
			func(i models.Invoice) string { return i.ClientName },
			func(i models.Invoice) string { return i.ProjectName },
		},
		Status: func(i models.Invoice) string { return i.Status },
		Date:   func(i models.Invoice) string { return i.GeneratedDate },
		Sort: map[string]func(models.Invoice) any{
			"number":   func(i models.Invoice) any { return i.InvoiceNumber },
			"client":   func(i models.Invoice) any { return i.ClientName },
			"amount":   func(i models.Invoice) any { return i.Amount },
			"status":   func(i models.Invoice) any { return i.Status },
			"due_date": func(i models.Invoice) any { return listview.DateString(i.DueDate) },
		},
	}
}

// List loads all invoices and applies the UI's search/filter/sort.
func (s *InvoiceService) List(ctx context.Context, q listview.Query) []models.Invoice {
	return listview.Apply(s.gw.Invoices.GetAll(ctx), q, invoiceFields())
}

// Get fetches one invoice by id.
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.gw.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &invoice, nil
}

// Create validates the form and creates the invoice.
func (s *InvoiceService) Create(ctx context.Context, form *InvoiceForm) (*models.Invoice, error) {
	if strings.TrimSpace(form.InvoiceNumber) == "" || form.ClientID == 0 {
		return nil, ErrInvalidPayload
	}
	created, err := s.gw.Invoices.Create(ctx, form.payload())
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update validates the form and updates the invoice.
func (s *InvoiceService) Update(ctx context.Context, id uint, form *InvoiceForm) (*models.Invoice, error) {
	if strings.TrimSpace(form.InvoiceNumber) == "" {
		return nil, ErrInvalidPayload
	}
	updated, err := s.gw.Invoices.Update(ctx, id, form.payload())
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

// Delete removes the invoice.
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	return mapGatewayErr(s.gw.Invoices.Delete(ctx, id))
}

// Send transitions a draft or overdue invoice to sent.
func (s *InvoiceService) Send(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.transition(ctx, id, func(fsm *statemachine.InvoiceFSM) error {
		return fsm.Send(ctx)
	})
}

// MarkOverdue flags a sent invoice whose due date has passed.
func (s *InvoiceService) MarkOverdue(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.transition(ctx, id, func(fsm *statemachine.InvoiceFSM) error {
		return fsm.MarkOverdue(ctx)
	})
}

// Cancel transitions an open invoice to cancelled.
func (s *InvoiceService) Cancel(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.transition(ctx, id, func(fsm *statemachine.InvoiceFSM) error {
		return fsm.Cancel(ctx)
	})
}

func (s *InvoiceService) transition(ctx context.Context, id uint, event func(*statemachine.InvoiceFSM) error) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := event(statemachine.NewInvoiceFSM(invoice)); err != nil {
		return nil, ErrInvalidState
	}

	updated, err := s.gw.Invoices.Update(ctx, id, map[string]any{"status": invoice.Status})
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

// RecordPayment marks an invoice paid by creating an income record with
// invoice_id set; the backend flips the invoice status as a side effect.
// The returned invoice is re-fetched so callers see the new status.
func (s *InvoiceService) RecordPayment(ctx context.Context, id uint, form *PaymentForm) (*models.Invoice, error) {
	if form.Amount <= 0 {
		return nil, ErrAmountRequired
	}
	received := dates.ToAPIFormat(form.ReceivedDate)
	if received == "" {
		return nil, ErrDateRequired
	}

	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := statemachine.NewInvoiceFSM(invoice).Pay(ctx); err != nil {
		return nil, ErrInvalidState
	}

	method := form.PaymentMethod
	if method == "" {
		method = models.PaymentMethodBankTransfer
	}

	_, err = s.gw.Incomes.Create(ctx, gateway.IncomePayload{
		AmountReceived: form.Amount,
		ReceivedDate:   received,
		PaymentMethod:  method,
		ClientID:       invoice.ClientID,
		ProjectID:      invoice.ProjectID,
		InvoiceID:      id,
		Description:    form.Description,
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// FindOverdue returns open invoices whose due date has passed.
func (s *InvoiceService) FindOverdue(ctx context.Context, today string) []models.Invoice {
	var overdue []models.Invoice
	for _, inv := range s.gw.Invoices.GetAll(ctx) {
		if inv.IsOpen() && inv.DueDate != "" && dates.Before(inv.DueDate, today) {
			overdue = append(overdue, inv)
		}
	}
	return overdue
}

func (f *InvoiceForm) payload() gateway.InvoicePayload {
	items := make([]gateway.InvoiceItemPayload, 0, len(f.Items))
	total := 0.0
	for _, it := range f.Items {
		amount := it.Amount
		if amount == 0 {
			amount = it.Quantity * it.Rate
		}
		total += amount
		items = append(items, gateway.InvoiceItemPayload{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      amount,
		})
	}

	amount := f.Amount
	if amount == 0 {
		amount = total
	}

	return gateway.InvoicePayload{
		InvoiceNumber: strings.TrimSpace(f.InvoiceNumber),
		ClientID:      f.ClientID,
		ProjectID:     f.ProjectID,
		Amount:        amount,
		GeneratedDate: dates.ToAPIFormat(f.GeneratedDate),
		DueDate:       dates.ToAPIFormat(f.DueDate),
		Description:   f.Description,
		Items:         items,
	}
}
