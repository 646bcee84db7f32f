package models

// Payment method constants
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"
	PaymentMethodCheque       = "cheque"
	PaymentMethodCard         = "card"
)

// Income is a received payment. When InvoiceID is set the record represents
// payment of that invoice and the backend marks the invoice paid; otherwise
// it is free-standing ("other" income).
type Income struct {
	ID             uint    `json:"id"`
	AmountReceived float64 `json:"amount_received"`
	ReceivedDate   string  `json:"received_date"`
	PaymentMethod  string  `json:"payment_method"`
	ClientID       uint    `json:"client_id"`
	ProjectID      uint    `json:"project_id"`
	InvoiceID      uint    `json:"invoice_id"`
	Description    string  `json:"description"`
}

// IsInvoicePayment reports whether the income settles an invoice.
func (i *Income) IsInvoicePayment() bool {
	return i.InvoiceID != 0
}
