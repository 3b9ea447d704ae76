package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	"github.com/noah-isme/mrp-capacity-api/pkg/response"
)

type workCenterRegistry interface {
	Lookup(ctx context.Context, id string) (*models.WorkCenter, error)
	Invalidate(ctx context.Context, id string)
}

// WorkCenterHandler exposes the cached work center registry.
type WorkCenterHandler struct {
	registry workCenterRegistry
}

// NewWorkCenterHandler builds a new handler.
func NewWorkCenterHandler(registry workCenterRegistry) *WorkCenterHandler {
	return &WorkCenterHandler{registry: registry}
}

// Get godoc
// @Summary Resolve a work center
// @Tags WorkCenters
// @Produce json
// @Param id path string true "Work center ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /work-centers/{id} [get]
func (h *WorkCenterHandler) Get(c *gin.Context) {
	wc, err := h.registry.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, wc)
}

// InvalidateCache godoc
// @Summary Drop the cached copy of a work center after it changed in the host application
// @Tags WorkCenters
// @Param id path string true "Work center ID"
// @Success 204
// @Router /work-centers/{id}/cache [delete]
func (h *WorkCenterHandler) InvalidateCache(c *gin.Context) {
	h.registry.Invalidate(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
