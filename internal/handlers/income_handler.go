package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/services"
)

type IncomeHandler struct {
	incomeService *services.IncomeService
}

func NewIncomeHandler(incomeService *services.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// @Summary List Income
// @Description Get income records with search, date filter and sorting applied
// @Tags Income
// @Produce json
// @Param search query string false "Substring search over description and method"
// @Param date_from query string false "Received date range start (dd/mm/yyyy)"
// @Param date_to query string false "Received date range end (dd/mm/yyyy)"
// @Param sort query string false "Sort as field-direction, e.g. amount-desc"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /income [get]
func (h *IncomeHandler) Index(c *gin.Context) {
	incomes := h.incomeService.List(c.Request.Context(), parseListQuery(c))
	c.JSON(http.StatusOK, gin.H{
		"income": incomes,
		"total":  len(incomes),
	})
}

// @Summary Get Income
// @Description Get a single income record by ID
// @Tags Income
// @Produce json
// @Param id path int true "Income ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /income/{id} [get]
func (h *IncomeHandler) Show(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid income ID"})
		return
	}

	income, err := h.incomeService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"income": income})
}

// @Summary Create Income
// @Description Create an income record; an invoice_id marks that invoice paid
// @Tags Income
// @Accept json
// @Produce json
// @Param income body services.IncomeForm true "Income data"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /income [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	var form services.IncomeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	income, err := h.incomeService.Create(c.Request.Context(), &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// @Summary Update Income
// @Description Update an existing income record
// @Tags Income
// @Accept json
// @Produce json
// @Param id path int true "Income ID"
// @Param income body services.IncomeForm true "Income data"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /income/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid income ID"})
		return
	}

	var form services.IncomeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	income, err := h.incomeService.Update(c.Request.Context(), id, &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"income": income})
}

// @Summary Delete Income
// @Description Delete an income record
// @Tags Income
// @Produce json
// @Param id path int true "Income ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /income/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid income ID"})
		return
	}

	if err := h.incomeService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Income deleted"})
}
