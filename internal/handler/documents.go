package handler

import (
	"errors"
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentsHandler struct{ svc service.DocumentService }

func NewDocumentsHandler(svc service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{svc: svc}
}

// DownloadPDF godoc
// @Summary      Download bill PDF
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Document UUID"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/documents/{id}/pdf [get]
func (h *DocumentsHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	path, err := h.svc.PDFFilePath(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotReady) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
