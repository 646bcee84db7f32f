package gateway

import (
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// ExpenseDTO is the loose wire record for an expense.
type ExpenseDTO struct {
	ID          LooseID    `json:"id"`
	Amount      LooseFloat `json:"amount"`
	ExpenseDate *string    `json:"expense_date"`
	Date        *string    `json:"date"`
	Description *string    `json:"description"`
	Responsible *string    `json:"responsible_person"`
	RespAlt     *string    `json:"responsible"`
	ProjectID   LooseID    `json:"project_id"`
	Project     *string    `json:"project"`
	ProjectName *string    `json:"project_name"`
	Status      *string    `json:"status"`
}

var expenseStatuses = []string{
	models.ExpenseStatusPending,
	models.ExpenseStatusApproved,
	models.ExpenseStatusRejected,
	models.ExpenseStatusPaid,
}

func mapExpense(d *ExpenseDTO) models.Expense {
	return models.Expense{
		ID:                uint(d.ID),
		Amount:            float64(d.Amount),
		ExpenseDate:       dates.ToAPIFormat(firstString("", d.ExpenseDate, d.Date)),
		Description:       firstString("", d.Description),
		ResponsiblePerson: firstString("", d.Responsible, d.RespAlt),
		ProjectID:         uint(d.ProjectID),
		ProjectName:       firstString("", d.Project, d.ProjectName),
		Status:            normalizeStatus(d.Status, expenseStatuses, models.ExpenseStatusPending),
	}
}

// ExpensePayload is the create/update body in the backend's naming.
type ExpensePayload struct {
	Amount            float64 `json:"amount"`
	ExpenseDate       string  `json:"expense_date"`
	Description       string  `json:"description"`
	ResponsiblePerson string  `json:"responsible_person"`
	ProjectID         uint    `json:"project_id"`
	Status            string  `json:"status,omitempty"`
}
