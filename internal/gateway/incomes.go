package gateway

import (
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// IncomeDTO is the loose wire record for an income entry. The backend has
// shipped both amount and amount_received for the same field; the specific
// name wins when both are present.
type IncomeDTO struct {
	ID            LooseID    `json:"id"`
	Amount        LooseFloat `json:"amount"`
	AmountRcv     LooseFloat `json:"amount_received"`
	ReceivedDate  *string    `json:"received_date"`
	Date          *string    `json:"date"`
	PaymentMethod *string    `json:"payment_method"`
	ClientID      LooseID    `json:"client_id"`
	ProjectID     LooseID    `json:"project_id"`
	InvoiceID     LooseID    `json:"invoice_id"`
	Description   *string    `json:"description"`
}

func mapIncome(d *IncomeDTO) models.Income {
	amount := float64(d.AmountRcv)
	if amount == 0 {
		amount = float64(d.Amount)
	}

	return models.Income{
		ID:             uint(d.ID),
		AmountReceived: amount,
		ReceivedDate:   dates.ToAPIFormat(firstString("", d.ReceivedDate, d.Date)),
		PaymentMethod:  firstString(models.PaymentMethodBankTransfer, d.PaymentMethod),
		ClientID:       uint(d.ClientID),
		ProjectID:      uint(d.ProjectID),
		InvoiceID:      uint(d.InvoiceID),
		Description:    firstString("", d.Description),
	}
}

// IncomePayload is the create/update body in the backend's naming. Setting
// InvoiceID makes the backend mark that invoice paid as a side effect; that
// is the only supported way to flip an invoice to paid.
type IncomePayload struct {
	AmountReceived float64 `json:"amount_received"`
	ReceivedDate   string  `json:"received_date"`
	PaymentMethod  string  `json:"payment_method"`
	ClientID       uint    `json:"client_id,omitempty"`
	ProjectID      uint    `json:"project_id,omitempty"`
	InvoiceID      uint    `json:"invoice_id,omitempty"`
	Description    string  `json:"description"`
}
