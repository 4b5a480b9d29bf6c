package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/service"
	"github.com/jengzang/travel-report-go/pkg/response"
)

// SampleHandler handles HTTP requests for location samples
type SampleHandler struct {
	service *service.SampleService
}

// NewSampleHandler creates a new sample handler
func NewSampleHandler(service *service.SampleService) *SampleHandler {
	return &SampleHandler{service: service}
}

// ListEntities handles GET /api/v1/entities
func (h *SampleHandler) ListEntities(c *gin.Context) {
	entities, err := h.service.ListEntities(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to list entities", err)
		return
	}

	response.Success(c, gin.H{
		"data":  entities,
		"total": len(entities),
	})
}

// IngestSamples handles POST /api/v1/entities/:id/samples
func (h *SampleHandler) IngestSamples(c *gin.Context) {
	var batch models.SampleBatch
	if err := bindBatch(c, &batch); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	stored, err := h.service.Ingest(c.Request.Context(), c.Param("id"), batch.Samples)
	if err != nil {
		respondServiceError(c, "Failed to store samples", err)
		return
	}

	response.Created(c, gin.H{
		"entityId": c.Param("id"),
		"stored":   stored,
	})
}

// bindBatch decodes a sample batch as msgpack or JSON depending on Content-Type
func bindBatch(c *gin.Context, batch *models.SampleBatch) error {
	if c.ContentType() == response.MIMEMsgpack {
		return msgpack.NewDecoder(c.Request.Body).Decode(batch)
	}
	return c.ShouldBindWith(batch, binding.JSON)
}
