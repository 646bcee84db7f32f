package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/services"
)

type ReportHandler struct {
	exportService *services.ExportService
}

func NewReportHandler(exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

// @Summary Financial Report
// @Description Download the financial report as csv, xlsx or pdf
// @Tags Reports
// @Produce application/octet-stream
// @Param format query string false "Report format: csv, xlsx or pdf" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/financials [get]
func (h *ReportHandler) Financials(c *gin.Context) {
	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, filename, err = h.exportService.FinancialsCSV(c.Request.Context())
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exportService.FinancialsXLSX(c.Request.Context())
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = h.exportService.FinancialsPDF(c.Request.Context())
		contentType = "application/pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// @Summary Invoice Aging Report
// @Description Download the open-invoice aging report as csv, xlsx or pdf
// @Tags Reports
// @Produce application/octet-stream
// @Param format query string false "Report format: csv, xlsx or pdf" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/invoice_aging [get]
func (h *ReportHandler) InvoiceAging(c *gin.Context) {
	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, filename, err = h.exportService.InvoiceAgingCSV(c.Request.Context())
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exportService.InvoiceAgingXLSX(c.Request.Context())
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = h.exportService.InvoiceAgingPDF(c.Request.Context())
		contentType = "application/pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
