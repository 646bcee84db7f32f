package services

import (
	"context"

	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/listview"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// IncomeService exposes income operations over the gateway.
type IncomeService struct {
	gw *gateway.Gateway
}

// IncomeForm carries the UI's field names. InvoiceID links the income to an
// invoice (a payment); left zero, the record is free-standing income.
type IncomeForm struct {
	AmountReceived float64 `json:"amountReceived"`
	ReceivedDate   string  `json:"receivedDate"`
	PaymentMethod  string  `json:"paymentMethod"`
	ClientID       uint    `json:"clientId"`
	ProjectID      uint    `json:"projectId"`
	InvoiceID      uint    `json:"invoiceId"`
	Description    string  `json:"description"`
}

func NewIncomeService(gw *gateway.Gateway) *IncomeService {
	return &IncomeService{gw: gw}
}

func incomeFields() listview.Fields[models.Income] {
	return listview.Fields[models.Income]{
		Search: []func(models.Income) string{
			func(i models.Income) string { return i.Description },
			func(i models.Income) string { return i.PaymentMethod },
		},
		Date: func(i models.Income) string { return i.ReceivedDate },
		Sort: map[string]func(models.Income) any{
			"amount": func(i models.Income) any { return i.AmountReceived },
			"date":   func(i models.Income) any { return listview.DateString(i.ReceivedDate) },
			"method": func(i models.Income) any { return i.PaymentMethod },
		},
	}
}

// List loads all income records and applies the UI's search/filter/sort.
func (s *IncomeService) List(ctx context.Context, q listview.Query) []models.Income {
	return listview.Apply(s.gw.Incomes.GetAll(ctx), q, incomeFields())
}

// Get fetches one income record by id.
func (s *IncomeService) Get(ctx context.Context, id uint) (*models.Income, error) {
	income, err := s.gw.Incomes.GetByID(ctx, id)
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &income, nil
}

// Create validates the form and creates the income record. Creating income
// with an invoice id marks that invoice paid backend-side.
func (s *IncomeService) Create(ctx context.Context, form *IncomeForm) (*models.Income, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	created, err := s.gw.Incomes.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update validates the form and updates the income record.
func (s *IncomeService) Update(ctx context.Context, id uint, form *IncomeForm) (*models.Income, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	updated, err := s.gw.Incomes.Update(ctx, id, payload)
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

// Delete removes the income record.
func (s *IncomeService) Delete(ctx context.Context, id uint) error {
	return mapGatewayErr(s.gw.Incomes.Delete(ctx, id))
}

func (f *IncomeForm) payload() (gateway.IncomePayload, error) {
	if f.AmountReceived <= 0 {
		return gateway.IncomePayload{}, ErrAmountRequired
	}
	received := dates.ToAPIFormat(f.ReceivedDate)
	if received == "" {
		return gateway.IncomePayload{}, ErrDateRequired
	}

	method := f.PaymentMethod
	if method == "" {
		method = models.PaymentMethodBankTransfer
	}

	return gateway.IncomePayload{
		AmountReceived: f.AmountReceived,
		ReceivedDate:   received,
		PaymentMethod:  method,
		ClientID:       f.ClientID,
		ProjectID:      f.ProjectID,
		InvoiceID:      f.InvoiceID,
		Description:    f.Description,
	}, nil
}
