package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/services"
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Download serves a previously archived document by its storage path
// @Summary Download Archived Document
// @Description Re-download a document from the archive by its storage path
// @Tags Documents
// @Produce application/octet-stream
// @Param path path string true "Storage path, e.g. invoices/2026/08/ab12cd34.pdf"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /documents/{path} [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	relPath := strings.TrimPrefix(c.Param("path"), "/")

	data, err := h.documentService.ReadArchived(relPath)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	contentType := "application/octet-stream"
	if path.Ext(relPath) == ".pdf" {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", path.Base(relPath)))
	c.Data(http.StatusOK, contentType, data)
}
