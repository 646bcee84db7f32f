package models

// Invoice status constants
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceItem is a single line on an invoice.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Invoice is the normalized shape of a studio invoice. An invoice is never
// flipped to paid directly; the backend performs the status update as a side
// effect of an Income record created with this invoice's id.
type Invoice struct {
	ID            uint          `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	ClientID      uint          `json:"client_id"`
	ClientName    string        `json:"client_name"`
	ProjectID     uint          `json:"project_id"`
	ProjectName   string        `json:"project_name"`
	Amount        float64       `json:"amount"`
	GeneratedDate string        `json:"generated_date"`
	DueDate       string        `json:"due_date"`
	Status        string        `json:"status"`
	Description   string        `json:"description"`
	Items         []InvoiceItem `json:"items"`
}

// MaySend reports whether the invoice can transition to sent.
func (i *Invoice) MaySend() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusOverdue
}

// MayMarkPaid reports whether a payment may be recorded against the invoice.
func (i *Invoice) MayMarkPaid() bool {
	switch i.Status {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusOverdue:
		return true
	}
	return false
}

// MayCancel reports whether the invoice can be cancelled.
func (i *Invoice) MayCancel() bool {
	return i.Status != InvoiceStatusPaid && i.Status != InvoiceStatusCancelled
}

// IsOpen reports whether the invoice still awaits payment.
func (i *Invoice) IsOpen() bool {
	return i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue
}
