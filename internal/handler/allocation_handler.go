package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
	"github.com/noah-isme/mrp-capacity-api/pkg/response"
)

type allocationService interface {
	Create(ctx context.Context, req dto.CreateAllocationRequest) (*models.Allocation, error)
	List(ctx context.Context, query dto.AllocationQuery, loc *time.Location) ([]models.Allocation, error)
}

// AllocationHandler exposes planning slots.
type AllocationHandler struct {
	service  allocationService
	location *time.Location
}

// NewAllocationHandler builds a new handler.
func NewAllocationHandler(svc allocationService, location *time.Location) *AllocationHandler {
	if location == nil {
		location = time.UTC
	}
	return &AllocationHandler{service: svc, location: location}
}

// List godoc
// @Summary List planning slots of a work center
// @Tags Allocations
// @Produce json
// @Param workcenter_id query string true "Work center ID"
// @Param shift_type query string false "Shift (1, 2 or 3)"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /allocations [get]
func (h *AllocationHandler) List(c *gin.Context) {
	var query dto.AllocationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid allocation filter"))
		return
	}
	ec, err := evaluationContext(c, "", h.location)
	if err != nil {
		response.Error(c, err)
		return
	}
	slots, err := h.service.List(c.Request.Context(), query, ec.Location)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, map[string]interface{}{"count": len(slots)})
}

// Create godoc
// @Summary Book a planning slot
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body dto.CreateAllocationRequest true "Allocation payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /allocations [post]
func (h *AllocationHandler) Create(c *gin.Context) {
	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid allocation payload"))
		return
	}
	alloc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, alloc)
}
