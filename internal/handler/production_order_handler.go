package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	"github.com/noah-isme/mrp-capacity-api/internal/models"
	"github.com/noah-isme/mrp-capacity-api/internal/service"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
	"github.com/noah-isme/mrp-capacity-api/pkg/response"
)

type productionOrderService interface {
	Check(ctx context.Context, orderID string, ec service.EvaluationContext) (*dto.PlanResponse, error)
	Plan(ctx context.Context, orderID string, ec service.EvaluationContext) (*dto.PlanResponse, error)
	AssignWorkCenter(ctx context.Context, orderID string, req dto.AssignWorkCenterRequest) (*models.ProductionOrder, error)
}

type planningQueue interface {
	EnqueuePlan(orderID string, ec service.EvaluationContext) (*dto.PlanningJobResponse, error)
	Status(jobID string) (*service.PlanningJobStatus, error)
}

// ProductionOrderHandler exposes the check and plan actions of production orders.
type ProductionOrderHandler struct {
	service  productionOrderService
	queue    planningQueue
	location *time.Location
}

// NewProductionOrderHandler builds a new handler. queue may be nil when async planning is disabled.
func NewProductionOrderHandler(svc productionOrderService, queue planningQueue, location *time.Location) *ProductionOrderHandler {
	if location == nil {
		location = time.UTC
	}
	return &ProductionOrderHandler{service: svc, queue: queue, location: location}
}

// Check godoc
// @Summary Check capacity for a production order's requested shift
// @Tags ProductionOrders
// @Produce json
// @Param id path string true "Production order ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /production-orders/{id}/check [post]
func (h *ProductionOrderHandler) Check(c *gin.Context) {
	ec, err := evaluationContext(c, "", h.location)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.service.Check(c.Request.Context(), c.Param("id"), ec)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Plan godoc
// @Summary Plan a production order on the first date with capacity
// @Tags ProductionOrders
// @Produce json
// @Param id path string true "Production order ID"
// @Param async query bool false "Queue the plan action and return 202"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /production-orders/{id}/plan [post]
func (h *ProductionOrderHandler) Plan(c *gin.Context) {
	ec, err := evaluationContext(c, "", h.location)
	if err != nil {
		response.Error(c, err)
		return
	}
	orderID := c.Param("id")

	async, _ := strconv.ParseBool(c.Query("async"))
	if async && h.queue != nil {
		job, err := h.queue.EnqueuePlan(orderID, ec)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Accepted(c, job)
		return
	}

	resp, err := h.service.Plan(c.Request.Context(), orderID, ec)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// JobStatus godoc
// @Summary Get the state of an asynchronous plan job
// @Tags ProductionOrders
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planning-jobs/{id} [get]
func (h *ProductionOrderHandler) JobStatus(c *gin.Context) {
	if h.queue == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "asynchronous planning is disabled"))
		return
	}
	status, err := h.queue.Status(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// AssignWorkCenter godoc
// @Summary Change the requested work center of a production order
// @Tags ProductionOrders
// @Accept json
// @Produce json
// @Param id path string true "Production order ID"
// @Param payload body dto.AssignWorkCenterRequest true "Work center assignment"
// @Success 200 {object} response.Envelope
// @Router /production-orders/{id}/work-center [put]
func (h *ProductionOrderHandler) AssignWorkCenter(c *gin.Context) {
	var req dto.AssignWorkCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid work center payload"))
		return
	}
	order, err := h.service.AssignWorkCenter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order)
}
