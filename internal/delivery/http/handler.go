package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/partsight/backend/internal/domain"
	"github.com/partsight/backend/internal/usecase"
)

// xlsxContentType is the spreadsheet MIME type of the reconciled download
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// outputFilename is the fixed name of the reconciled workbook
const outputFilename = "reconciled.xlsx"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	fetcher    domain.ProductFetcher
	reconciler *usecase.ReconcileService
}

// NewHandler creates a new HTTP handler
func NewHandler(fetcher domain.ProductFetcher, reconciler *usecase.ReconcileService) *Handler {
	return &Handler{
		fetcher:    fetcher,
		reconciler: reconciler,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "partsight-backend",
		"version": "1.0.0",
	})
}

// GetProduct handles single-key product retrieval requests
func (h *Handler) GetProduct(c *gin.Context) {
	key, ok := domain.ParseProductKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidKey.Error()})
		return
	}

	record, err := h.fetcher.FetchProduct(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[HTTP] fetch %s failed: %v", key, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.ErrCatalogFailure.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// Reconcile handles batch reconciliation of an uploaded parts list. The
// response body is the augmented workbook.
func (h *Handler) Reconcile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	upload, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrWorkbookUnreadable.Error()})
		return
	}
	defer upload.Close()

	workbook, err := excelize.OpenReader(upload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrWorkbookUnreadable.Error()})
		return
	}
	defer workbook.Close()

	if err := h.reconciler.ReconcileWorkbook(c.Request.Context(), workbook); err != nil {
		log.Printf("[HTTP] reconcile %q failed: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		log.Printf("[HTTP] serializing workbook failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "workbook serialization failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+outputFilename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}
