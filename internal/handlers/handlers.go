package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/jobs"
	"github.com/atelierhq/atelier-api/internal/services"
	"github.com/atelierhq/atelier-api/internal/session"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Client    *ClientHandler
	Project   *ProjectHandler
	Invoice   *InvoiceHandler
	Income    *IncomeHandler
	Expense   *ExpenseHandler
	Dashboard *DashboardHandler
	Drawer    *DrawerHandler
	Report    *ReportHandler
	Document  *DocumentHandler
	Job       *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, sessions *session.Store, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Client:    NewClientHandler(svcs.Clients),
		Project:   NewProjectHandler(svcs.Projects),
		Invoice:   NewInvoiceHandler(svcs.Invoices, svcs.Documents),
		Income:    NewIncomeHandler(svcs.Incomes),
		Expense:   NewExpenseHandler(svcs.Expenses),
		Dashboard: NewDashboardHandler(svcs.Dashboard),
		Drawer:    NewDrawerHandler(svcs, sessions),
		Report:    NewReportHandler(svcs.Exports),
		Document:  NewDocumentHandler(svcs.Documents),
		Job:       NewJobHandler(worker),
	}
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// @Summary Health Check
// @Description Service liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}
