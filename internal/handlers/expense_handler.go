package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/internal/services"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// @Summary List Expenses
// @Description Get expenses with search, status filter and sorting applied
// @Tags Expenses
// @Produce json
// @Param search query string false "Substring search over description, responsible, project"
// @Param status query string false "Comma-separated status filter"
// @Param date_from query string false "Expense date range start (dd/mm/yyyy)"
// @Param date_to query string false "Expense date range end (dd/mm/yyyy)"
// @Param sort query string false "Sort as field-direction, e.g. date-desc"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) Index(c *gin.Context) {
	expenses := h.expenseService.List(c.Request.Context(), parseListQuery(c))
	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
		"total":    len(expenses),
	})
}

// @Summary Get Expense
// @Description Get a single expense by ID
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Show(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}

	expense, err := h.expenseService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// @Summary Create Expense
// @Description Create a new expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expense body services.ExpenseForm true "Expense data"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var form services.ExpenseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// @Summary Update Expense
// @Description Update an existing expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body services.ExpenseForm true "Expense data"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}

	var form services.ExpenseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// @Summary Delete Expense
// @Description Delete an expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// @Summary Approve Expense
// @Description Transition a pending expense to approved
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses/{id}/approve [post]
func (h *ExpenseHandler) Approve(c *gin.Context) {
	h.transition(c, h.expenseService.Approve)
}

// @Summary Reject Expense
// @Description Transition a pending expense to rejected
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses/{id}/reject [post]
func (h *ExpenseHandler) Reject(c *gin.Context) {
	h.transition(c, h.expenseService.Reject)
}

// @Summary Pay Expense
// @Description Settle an approved expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses/{id}/pay [post]
func (h *ExpenseHandler) Pay(c *gin.Context) {
	h.transition(c, h.expenseService.MarkPaid)
}

func (h *ExpenseHandler) transition(c *gin.Context, fn func(context.Context, uint) (*models.Expense, error)) {
	id := parseID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}

	expense, err := fn(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}
