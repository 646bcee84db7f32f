package services

import (
	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/jobs"
	"github.com/atelierhq/atelier-api/internal/storage"
)

// Services aggregates all business services so handlers receive a single
// dependency.
type Services struct {
	Clients   *ClientService
	Projects  *ProjectService
	Invoices  *InvoiceService
	Incomes   *IncomeService
	Expenses  *ExpenseService
	Dashboard *DashboardService
	Documents *DocumentService
	Exports   *ExportService
}

func NewServices(gw *gateway.Gateway, store *storage.LocalStorage, worker *jobs.Worker) *Services {
	invoiceSvc := NewInvoiceService(gw)
	dashboardSvc := NewDashboardService(gw)

	return &Services{
		Clients:   NewClientService(gw),
		Projects:  NewProjectService(gw),
		Invoices:  invoiceSvc,
		Incomes:   NewIncomeService(gw),
		Expenses:  NewExpenseService(gw),
		Dashboard: dashboardSvc,
		Documents: NewDocumentService(invoiceSvc, store, worker),
		Exports:   NewExportService(dashboardSvc, invoiceSvc),
	}
}
