package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/listview"
	"github.com/atelierhq/atelier-api/internal/services"
)

// parseID reads the :id path param. Zero means the param was missing or not
// numeric; handlers treat that as a bad request.
func parseID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// parseListQuery maps the list screens' query params onto a listview query.
// Sort arrives as "field-direction" (e.g. "name-asc").
func parseListQuery(c *gin.Context) listview.Query {
	q := listview.Query{
		Search:   c.Query("search"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	if status := c.Query("status"); status != "" {
		q.Statuses = strings.Split(status, ",")
	}

	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		q.SortKey = parts[0]
		q.SortDir = listview.SortAsc
		if len(parts) > 1 && parts[1] == "desc" {
			q.SortDir = listview.SortDesc
		}
	}

	return q
}

// respondServiceError translates service sentinels into HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPayload),
		errors.Is(err, services.ErrAmountRequired),
		errors.Is(err, services.ErrDateRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
