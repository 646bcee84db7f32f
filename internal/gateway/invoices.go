package gateway

import (
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// InvoiceDTO is the loose wire record for an invoice.
type InvoiceDTO struct {
	ID          LooseID          `json:"id"`
	Number      *string          `json:"invoice_number"`
	NumberAlt   *string          `json:"number"`
	ClientID    LooseID          `json:"client_id"`
	Client      *string          `json:"client"`
	ClientName  *string          `json:"client_name"`
	ProjectID   LooseID          `json:"project_id"`
	Project     *string          `json:"project"`
	ProjectName *string          `json:"project_name"`
	Amount      LooseFloat       `json:"amount"`
	TotalAmount LooseFloat       `json:"total_amount"`
	Generated   *string          `json:"generated_date"`
	InvoiceDate *string          `json:"invoice_date"`
	DueDate     *string          `json:"due_date"`
	Status      *string          `json:"status"`
	Description *string          `json:"description"`
	Items       []InvoiceItemDTO `json:"items"`
}

// InvoiceItemDTO is one loose invoice line.
type InvoiceItemDTO struct {
	Description *string    `json:"description"`
	Quantity    LooseFloat `json:"quantity"`
	Rate        LooseFloat `json:"rate"`
	Amount      LooseFloat `json:"amount"`
}

var invoiceStatuses = []string{
	models.InvoiceStatusDraft,
	models.InvoiceStatusSent,
	models.InvoiceStatusOverdue,
	models.InvoiceStatusPaid,
	models.InvoiceStatusCancelled,
}

func mapInvoice(d *InvoiceDTO) models.Invoice {
	amount := float64(d.Amount)
	if amount == 0 {
		amount = float64(d.TotalAmount)
	}

	items := make([]models.InvoiceItem, 0, len(d.Items))
	for _, it := range d.Items {
		qty := float64(it.Quantity)
		if qty == 0 {
			qty = 1
		}
		line := float64(it.Amount)
		if line == 0 {
			line = qty * float64(it.Rate)
		}
		items = append(items, models.InvoiceItem{
			Description: firstString("", it.Description),
			Quantity:    qty,
			Rate:        float64(it.Rate),
			Amount:      line,
		})
	}

	return models.Invoice{
		ID:            uint(d.ID),
		InvoiceNumber: firstString("", d.Number, d.NumberAlt),
		ClientID:      uint(d.ClientID),
		ClientName:    firstString("", d.Client, d.ClientName),
		ProjectID:     uint(d.ProjectID),
		ProjectName:   firstString("", d.Project, d.ProjectName),
		Amount:        amount,
		GeneratedDate: dates.ToAPIFormat(firstString("", d.Generated, d.InvoiceDate)),
		DueDate:       dates.ToAPIFormat(firstString("", d.DueDate)),
		Status:        normalizeStatus(d.Status, invoiceStatuses, models.InvoiceStatusDraft),
		Description:   firstString("", d.Description),
		Items:         items,
	}
}

// InvoicePayload is the create/update body in the backend's naming.
type InvoicePayload struct {
	InvoiceNumber string               `json:"invoice_number"`
	ClientID      uint                 `json:"client_id"`
	ProjectID     uint                 `json:"project_id"`
	Amount        float64              `json:"amount"`
	GeneratedDate string               `json:"generated_date,omitempty"`
	DueDate       string               `json:"due_date,omitempty"`
	Status        string               `json:"status,omitempty"`
	Description   string               `json:"description"`
	Items         []InvoiceItemPayload `json:"items,omitempty"`
}

// InvoiceItemPayload is one invoice line in a mutation body.
type InvoiceItemPayload struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}
