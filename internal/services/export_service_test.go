package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier-api/pkg/dates"
)

func TestAgingBucketLabel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-5, "Current"},
		{0, "Current"},
		{1, "1-30"},
		{30, "1-30"},
		{31, "31-60"},
		{60, "31-60"},
		{61, "61-90"},
		{90, "61-90"},
		{91, "90+"},
		{365, "90+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, agingBucketLabel(tt.days), "days=%d", tt.days)
	}
}

func TestInvoiceAgingReport(t *testing.T) {
	due := func(daysAgo int) string {
		return time.Now().AddDate(0, 0, -daysAgo).Format(dates.APILayout)
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invoices" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `[
			{"id": 1, "invoice_number": "INV-1", "client_name": "Harbor", "amount": 1000, "status": "sent", "due_date": %q},
			{"id": 2, "invoice_number": "INV-2", "client_name": "Loft", "amount": 500, "status": "overdue", "due_date": %q},
			{"id": 3, "invoice_number": "INV-3", "client_name": "Pavilion", "amount": 300, "status": "sent", "due_date": %q},
			{"id": 4, "invoice_number": "INV-4", "client_name": "Paid Co", "amount": 900, "status": "paid", "due_date": %q},
			{"id": 5, "invoice_number": "INV-5", "client_name": "Draft Co", "amount": 700, "status": "draft", "due_date": %q}
		]`, due(-10), due(45), due(120), due(45), due(45))
	})
	gw := newTestGateway(t, handler)
	svc := NewExportService(NewDashboardService(gw), NewInvoiceService(gw))

	lines := svc.agingLines(context.Background())
	require.Len(t, lines, 3, "only open invoices are aged")

	byNumber := make(map[string]agingLine, len(lines))
	for _, l := range lines {
		byNumber[l.invoice.InvoiceNumber] = l
	}
	assert.Equal(t, "Current", byNumber["INV-1"].bucket, "not yet due")
	assert.Equal(t, "31-60", byNumber["INV-2"].bucket)
	assert.Equal(t, "90+", byNumber["INV-3"].bucket)

	totals := agingTotals(lines)
	assert.Equal(t, 1000.0, totals["Current"])
	assert.Equal(t, 500.0, totals["31-60"])
	assert.Equal(t, 300.0, totals["90+"])
	assert.Equal(t, 0.0, totals["1-30"])

	data, filename, err := svc.InvoiceAgingCSV(context.Background())
	require.NoError(t, err)
	assert.Contains(t, filename, "invoice_aging_")
	assert.Contains(t, string(data), "INV-2")
	assert.Contains(t, string(data), "31-60")
	assert.NotContains(t, string(data), "INV-4", "paid invoices stay out of the report")
}

func TestInvoiceAgingEmptyWhenBackendDown(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	svc := NewExportService(NewDashboardService(gw), NewInvoiceService(gw))

	data, _, err := svc.InvoiceAgingCSV(context.Background())
	require.NoError(t, err, "a backend outage yields an empty report, not an error")
	assert.Contains(t, string(data), "Invoice Aging Report")
}
