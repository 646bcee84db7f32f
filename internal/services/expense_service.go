package services

import (
	"context"

	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/listview"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/internal/statemachine"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// ExpenseService exposes expense operations over the gateway. Approval
// transitions are validated through the expense state machine.
type ExpenseService struct {
	gw *gateway.Gateway
}

// ExpenseForm carries the UI's field names.
type ExpenseForm struct {
	Amount            float64 `json:"amount"`
	ExpenseDate       string  `json:"expenseDate"`
	Description       string  `json:"description"`
	ResponsiblePerson string  `json:"responsiblePerson"`
	ProjectID         uint    `json:"projectId"`
}

func NewExpenseService(gw *gateway.Gateway) *ExpenseService {
	return &ExpenseService{gw: gw}
}

func expenseFields() listview.Fields[models.Expense] {
	return listview.Fields[models.Expense]{
		Search: []func(models.Expense) string{
			func(e models.Expense) string { return e.Description },
			func(e models.Expense) string { return e.ResponsiblePerson },
			func(e models.Expense) string { return e.ProjectName },
		},
		Status: func(e models.Expense) string { return e.Status },
		Date:   func(e models.Expense) string { return e.ExpenseDate },
		Sort: map[string]func(models.Expense) any{
			"amount":      func(e models.Expense) any { return e.Amount },
			"date":        func(e models.Expense) any { return listview.DateString(e.ExpenseDate) },
			"status":      func(e models.Expense) any { return e.Status },
			"responsible": func(e models.Expense) any { return e.ResponsiblePerson },
		},
	}
}

// List loads all expenses and applies the UI's search/filter/sort.
func (s *ExpenseService) List(ctx context.Context, q listview.Query) []models.Expense {
	return listview.Apply(s.gw.Expenses.GetAll(ctx), q, expenseFields())
}

// Get fetches one expense by id.
func (s *ExpenseService) Get(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.gw.Expenses.GetByID(ctx, id)
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &expense, nil
}

// Create validates the form and creates the expense.
func (s *ExpenseService) Create(ctx context.Context, form *ExpenseForm) (*models.Expense, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	created, err := s.gw.Expenses.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update validates the form and updates the expense.
func (s *ExpenseService) Update(ctx context.Context, id uint, form *ExpenseForm) (*models.Expense, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	updated, err := s.gw.Expenses.Update(ctx, id, payload)
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

// Delete removes the expense.
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	return mapGatewayErr(s.gw.Expenses.Delete(ctx, id))
}

// Approve transitions a pending expense to approved.
func (s *ExpenseService) Approve(ctx context.Context, id uint) (*models.Expense, error) {
	return s.transition(ctx, id, func(fsm *statemachine.ExpenseFSM) error {
		return fsm.Approve(ctx)
	})
}

// Reject transitions a pending expense to rejected.
func (s *ExpenseService) Reject(ctx context.Context, id uint) (*models.Expense, error) {
	return s.transition(ctx, id, func(fsm *statemachine.ExpenseFSM) error {
		return fsm.Reject(ctx)
	})
}

// MarkPaid settles an approved expense.
func (s *ExpenseService) MarkPaid(ctx context.Context, id uint) (*models.Expense, error) {
	return s.transition(ctx, id, func(fsm *statemachine.ExpenseFSM) error {
		return fsm.Pay(ctx)
	})
}

func (s *ExpenseService) transition(ctx context.Context, id uint, event func(*statemachine.ExpenseFSM) error) (*models.Expense, error) {
	expense, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := event(statemachine.NewExpenseFSM(expense)); err != nil {
		return nil, ErrInvalidState
	}

	updated, err := s.gw.Expenses.Update(ctx, id, map[string]any{"status": expense.Status})
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

func (f *ExpenseForm) payload() (gateway.ExpensePayload, error) {
	if f.Amount <= 0 {
		return gateway.ExpensePayload{}, ErrAmountRequired
	}
	date := dates.ToAPIFormat(f.ExpenseDate)
	if date == "" {
		return gateway.ExpensePayload{}, ErrDateRequired
	}

	return gateway.ExpensePayload{
		Amount:            f.Amount,
		ExpenseDate:       date,
		Description:       f.Description,
		ResponsiblePerson: f.ResponsiblePerson,
		ProjectID:         f.ProjectID,
	}, nil
}
