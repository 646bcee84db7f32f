package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/logger"
)

func init() {
	logger.Setup("test")
}

func newTestGateway(t *testing.T, handler http.Handler) *gateway.Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.New(srv.URL, 5*time.Second, nil)
}

// fakeInvoiceBackend serves one invoice whose status flips to paid when an
// income referencing it is created, mirroring the real backend's side effect.
type fakeInvoiceBackend struct {
	status        string
	incomeCreated *gateway.IncomePayload
	statusUpdates []string
}

func (f *fakeInvoiceBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/invoices/5":
		fmt.Fprintf(w, `{"success": true, "data": {
			"id": 5, "invoice_number": "INV-005", "client_id": 2,
			"amount": 1200, "due_date": "01/06/2026", "status": %q
		}}`, f.status)
	case r.Method == http.MethodPut && r.URL.Path == "/invoices/5":
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if s, ok := body["status"].(string); ok {
			f.status = s
			f.statusUpdates = append(f.statusUpdates, s)
		}
		fmt.Fprintf(w, `{"success": true, "data": {"id": 5, "invoice_number": "INV-005", "status": %q}}`, f.status)
	case r.Method == http.MethodPost && r.URL.Path == "/income":
		var payload gateway.IncomePayload
		json.NewDecoder(r.Body).Decode(&payload)
		f.incomeCreated = &payload
		if payload.InvoiceID == 5 {
			f.status = models.InvoiceStatusPaid
		}
		w.Write([]byte(`{"success": true, "data": {"id": 31, "amount_received": 1200, "received_date": "15/05/2026"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestRecordPaymentCreatesIncome(t *testing.T) {
	backend := &fakeInvoiceBackend{status: models.InvoiceStatusSent}
	svc := NewInvoiceService(newTestGateway(t, backend))

	invoice, err := svc.RecordPayment(context.Background(), 5, &PaymentForm{
		Amount:       1200,
		ReceivedDate: "2026-05-15",
	})
	require.NoError(t, err)

	// The payment went through income creation, not a status write
	require.NotNil(t, backend.incomeCreated)
	assert.Equal(t, uint(5), backend.incomeCreated.InvoiceID)
	assert.Equal(t, 1200.0, backend.incomeCreated.AmountReceived)
	assert.Equal(t, "15/05/2026", backend.incomeCreated.ReceivedDate, "date converted to wire form")
	assert.Equal(t, models.PaymentMethodBankTransfer, backend.incomeCreated.PaymentMethod)
	assert.Empty(t, backend.statusUpdates, "no direct status update was issued")

	// The re-fetched invoice reflects the backend's side effect
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)
}

func TestRecordPaymentValidation(t *testing.T) {
	backend := &fakeInvoiceBackend{status: models.InvoiceStatusSent}
	svc := NewInvoiceService(newTestGateway(t, backend))

	_, err := svc.RecordPayment(context.Background(), 5, &PaymentForm{Amount: 0, ReceivedDate: "2026-05-15"})
	assert.ErrorIs(t, err, ErrAmountRequired)

	_, err = svc.RecordPayment(context.Background(), 5, &PaymentForm{Amount: 100, ReceivedDate: "garbage"})
	assert.ErrorIs(t, err, ErrDateRequired)

	assert.Nil(t, backend.incomeCreated, "invalid forms never reach the backend")
}

func TestRecordPaymentRejectsPaidInvoice(t *testing.T) {
	backend := &fakeInvoiceBackend{status: models.InvoiceStatusPaid}
	svc := NewInvoiceService(newTestGateway(t, backend))

	_, err := svc.RecordPayment(context.Background(), 5, &PaymentForm{
		Amount:       1200,
		ReceivedDate: "2026-05-15",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, backend.incomeCreated)
}

func TestSendValidatesTransition(t *testing.T) {
	backend := &fakeInvoiceBackend{status: models.InvoiceStatusDraft}
	svc := NewInvoiceService(newTestGateway(t, backend))

	invoice, err := svc.Send(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, invoice.Status)
	assert.Equal(t, []string{models.InvoiceStatusSent}, backend.statusUpdates)

	// Cancelled is terminal: no further send
	backend.status = models.InvoiceStatusCancelled
	_, err = svc.Send(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFindOverdue(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": [
			{"id": 1, "invoice_number": "A", "status": "sent", "due_date": "01/01/2026"},
			{"id": 2, "invoice_number": "B", "status": "sent", "due_date": "01/12/2026"},
			{"id": 3, "invoice_number": "C", "status": "paid", "due_date": "01/01/2026"},
			{"id": 4, "invoice_number": "D", "status": "sent"}
		]}`))
	})
	svc := NewInvoiceService(newTestGateway(t, handler))

	overdue := svc.FindOverdue(context.Background(), "01/06/2026")
	require.Len(t, overdue, 1)
	assert.Equal(t, uint(1), overdue[0].ID)
}
