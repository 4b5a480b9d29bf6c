package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/service"
	"github.com/jengzang/travel-report-go/pkg/response"
)

// ReportHandler handles HTTP requests for travel reports
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetEntityReport handles GET /api/v1/entities/:id/report
func (h *ReportHandler) GetEntityReport(c *gin.Context) {
	var filter models.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	filter.EntityID = c.Param("id")

	report, err := h.service.GenerateForEntity(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, "Failed to generate report", err)
		return
	}

	response.Success(c, report)
}

// PostReport handles POST /api/v1/reports
func (h *ReportHandler) PostReport(c *gin.Context) {
	var batch models.SampleBatch
	if err := bindBatch(c, &batch); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	report, err := h.service.GenerateFromSamples(c.Request.Context(), batch.EntityID, batch.Samples)
	if err != nil {
		respondServiceError(c, "Failed to generate report", err)
		return
	}

	response.Success(c, report)
}

// respondServiceError maps service sentinel errors to status codes
func respondServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrBatchTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "Too many samples", err)
	case errors.Is(err, service.ErrInvalidSample),
		errors.Is(err, service.ErrNoSamples),
		errors.Is(err, service.ErrMixedEntities),
		errors.Is(err, service.ErrInvalidWindow):
		response.BadRequest(c, message, err)
	default:
		response.InternalError(c, message, err)
	}
}
