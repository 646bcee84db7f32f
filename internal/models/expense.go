package models

// Expense status constants
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
	ExpenseStatusPaid     = "paid"
)

// Expense is a cost recorded against a project.
type Expense struct {
	ID                uint    `json:"id"`
	Amount            float64 `json:"amount"`
	ExpenseDate       string  `json:"expense_date"`
	Description       string  `json:"description"`
	ResponsiblePerson string  `json:"responsible_person"`
	ProjectID         uint    `json:"project_id"`
	ProjectName       string  `json:"project_name"`
	Status            string  `json:"status"`
}

// MayApprove reports whether the expense can be approved.
func (e *Expense) MayApprove() bool {
	return e.Status == ExpenseStatusPending
}

// MayReject reports whether the expense can be rejected.
func (e *Expense) MayReject() bool {
	return e.Status == ExpenseStatusPending
}

// MayMarkPaid reports whether the expense can be settled.
func (e *Expense) MayMarkPaid() bool {
	return e.Status == ExpenseStatusApproved
}
