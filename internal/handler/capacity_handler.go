package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	"github.com/noah-isme/mrp-capacity-api/internal/models"
	"github.com/noah-isme/mrp-capacity-api/internal/service"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
	"github.com/noah-isme/mrp-capacity-api/pkg/response"
)

type capacityService interface {
	Evaluate(ctx context.Context, req models.CapacityRequest) (models.CapacityVerdict, error)
	FindEarliestAvailable(ctx context.Context, req models.CapacityRequest, horizonDays int) (*models.SearchResult, error)
}

// CapacityHandler exposes shift capacity checks.
type CapacityHandler struct {
	service   capacityService
	localizer *service.Localizer
	validator *validator.Validate
	location  *time.Location
}

// NewCapacityHandler builds a new handler. location is the zone used when the caller names none.
func NewCapacityHandler(svc capacityService, localizer *service.Localizer, location *time.Location) *CapacityHandler {
	if location == nil {
		location = time.UTC
	}
	return &CapacityHandler{service: svc, localizer: localizer, validator: validator.New(), location: location}
}

// Shifts godoc
// @Summary List the shift windows
// @Tags Capacity
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /shifts [get]
func (h *CapacityHandler) Shifts(c *gin.Context) {
	defs := models.ShiftDefinitions()
	items := make([]dto.ShiftResponse, 0, len(defs))
	for _, def := range defs {
		items = append(items, dto.ShiftResponse{
			ID:              def.ID,
			Label:           def.Label,
			Start:           def.LocalStart.String(),
			End:             def.LocalEnd.String(),
			EndsNextDay:     def.EndsNextDay(),
			DurationMinutes: def.DurationMinutes(),
		})
	}
	response.JSON(c, http.StatusOK, items)
}

// Evaluate godoc
// @Summary Check whether a duration fits in one shift on one date
// @Tags Capacity
// @Accept json
// @Produce json
// @Param payload body dto.CapacityCheckRequest true "Capacity request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /capacity/evaluate [post]
func (h *CapacityHandler) Evaluate(c *gin.Context) {
	var req dto.CapacityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid capacity payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid capacity payload"))
		return
	}
	capReq, ok := h.request(c, req)
	if !ok {
		return
	}

	verdict, err := h.service.Evaluate(c.Request.Context(), capReq)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp := dto.CapacityVerdictResponse{CapacityVerdict: verdict}
	if !verdict.Date.IsZero() {
		resp.DateDisplay = h.localizer.FormatDate(capReq.Locale, verdict.Date)
	}
	response.JSON(c, http.StatusOK, resp)
}

// Search godoc
// @Summary Find the first date within the horizon where a duration fits
// @Tags Capacity
// @Accept json
// @Produce json
// @Param payload body dto.CapacitySearchRequest true "Search request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /capacity/search [post]
func (h *CapacityHandler) Search(c *gin.Context) {
	var req dto.CapacitySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search payload"))
		return
	}
	capReq, ok := h.request(c, req.CapacityCheckRequest)
	if !ok {
		return
	}

	result, err := h.service.FindEarliestAvailable(c.Request.Context(), capReq, req.HorizonDays)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CapacitySearchResponse{
		SearchResult:        *result,
		ResolvedDateDisplay: h.localizer.FormatDate(capReq.Locale, result.ResolvedDate),
	})
}

func (h *CapacityHandler) request(c *gin.Context, req dto.CapacityCheckRequest) (models.CapacityRequest, bool) {
	ec, err := evaluationContext(c, req.Timezone, h.location)
	if err != nil {
		response.Error(c, err)
		return models.CapacityRequest{}, false
	}
	return models.CapacityRequest{
		WorkCenterID:     req.WorkCenterID,
		ShiftID:          models.ShiftID(req.ShiftType),
		Date:             req.Date,
		RequestedMinutes: req.DurationMinutes,
		Location:         ec.Location,
		Locale:           ec.Locale,
	}, true
}
