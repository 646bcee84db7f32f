package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// @Summary Dashboard Stats
// @Description Get the KPI snapshot; pass fresh=true to bypass the cached snapshot
// @Tags Dashboard
// @Produce json
// @Param fresh query bool false "Force a fresh computation"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	if c.Query("fresh") != "true" {
		if stats, refreshedAt, ok := h.dashboardService.Snapshot(); ok {
			c.JSON(http.StatusOK, gin.H{
				"stats":        stats,
				"refreshed_at": refreshedAt,
				"cached":       true,
			})
			return
		}
	}

	stats := h.dashboardService.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"stats":  stats,
		"cached": false,
	})
}
