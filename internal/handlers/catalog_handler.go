package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CatalogHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
	exportService     services.ExportService
}

func NewCatalogHandler(assessmentService services.AssessmentService, exportService services.ExportService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
		exportService:     exportService,
	}
}

// GetCatalog lists the detailed assessment questions
// @Summary Question catalog
// @Tags catalog
// @Produce json
// @Success 200 {array} models.QuestionDefinition
// @Router /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.assessmentService.Catalog(c.Request.Context()))
}

// ExportCatalog downloads the question catalog as a spreadsheet
// @Summary Export question catalog
// @Tags catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Router /catalog/export [get]
func (h *CatalogHandler) ExportCatalog(c *gin.Context) {
	data, err := h.exportService.ExportCatalogToExcel(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="readiness-catalog.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
