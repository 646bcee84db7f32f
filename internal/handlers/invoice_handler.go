package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/internal/services"
)

type InvoiceHandler struct {
	invoiceService  *services.InvoiceService
	documentService *services.DocumentService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, documentService *services.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, documentService: documentService}
}

// @Summary List Invoices
// @Description Get invoices with search, status filter and sorting applied
// @Tags Invoices
// @Produce json
// @Param search query string false "Substring search over number, client, project"
// @Param status query string false "Comma-separated status filter"
// @Param date_from query string false "Generated date range start (dd/mm/yyyy)"
// @Param date_to query string false "Generated date range end (dd/mm/yyyy)"
// @Param sort query string false "Sort as field-direction, e.g. due_date-asc"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) Index(c *gin.Context) {
	invoices := h.invoiceService.List(c.Request.Context(), parseListQuery(c))
	c.JSON(http.StatusOK, gin.H{
		"invoices": invoices,
		"total":    len(invoices),
	})
}

// @Summary Get Invoice
// @Description Get a single invoice by ID
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Show(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// @Summary Create Invoice
// @Description Create a new invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body services.InvoiceForm true "Invoice data"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var form services.InvoiceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

// @Summary Update Invoice
// @Description Update an existing invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param invoice body services.InvoiceForm true "Invoice data"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var form services.InvoiceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// @Summary Delete Invoice
// @Description Delete an invoice
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

// @Summary Send Invoice
// @Description Transition a draft or overdue invoice to sent
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	h.transition(c, h.invoiceService.Send)
}

// @Summary Cancel Invoice
// @Description Transition an open invoice to cancelled
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoiceService.Cancel)
}

// @Summary Record Payment
// @Description Record a payment against an invoice; the invoice becomes paid through income creation
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param payment body services.PaymentForm true "Payment data"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var form services.PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), id, &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// @Summary Download Invoice PDF
// @Description Render and download the invoice as a PDF document
// @Tags Invoices
// @Produce application/pdf
// @Param id path int true "Invoice ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	buf, filename, err := h.documentService.GenerateInvoicePDF(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *InvoiceHandler) transition(c *gin.Context, fn func(context.Context, uint) (*models.Invoice, error)) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	invoice, err := fn(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}
