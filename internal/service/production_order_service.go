package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

type productionOrderStore interface {
	FindByID(ctx context.Context, id string) (*models.ProductionOrder, error)
	UpdateRequest(ctx context.Context, order *models.ProductionOrder) error
	SetPlannedDate(ctx context.Context, id string, date models.Date) error
	SumExpectedDuration(ctx context.Context, orderID, workCenterID string) (float64, bool, error)
}

type capacitySearcher interface {
	FindEarliestAvailable(ctx context.Context, req models.CapacityRequest, horizonDays int) (*models.SearchResult, error)
}

// EvaluationContext carries the invoking user's zone and locale.
type EvaluationContext struct {
	Location *time.Location
	Locale   string
}

// ProductionOrderService runs the check and plan actions of production orders.
type ProductionOrderService struct {
	orders      productionOrderStore
	capacity    capacitySearcher
	workCenters workCenterResolver
	localizer   *Localizer
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewProductionOrderService builds the service.
func NewProductionOrderService(
	orders productionOrderStore,
	capacity capacitySearcher,
	workCenters workCenterResolver,
	localizer *Localizer,
	validate *validator.Validate,
	logger *zap.Logger,
) *ProductionOrderService {
	if localizer == nil {
		localizer = NewLocalizer("en")
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionOrderService{
		orders:      orders,
		capacity:    capacity,
		workCenters: workCenters,
		localizer:   localizer,
		validator:   validate,
		logger:      logger,
	}
}

// Check searches for capacity using the order's requested fields without changing the order.
func (s *ProductionOrderService) Check(ctx context.Context, orderID string, ec EvaluationContext) (*dto.PlanResponse, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	result, err := s.search(ctx, order, ec)
	if err != nil {
		return nil, err
	}
	return s.toResponse(order.ID, result, ec, false), nil
}

// Plan runs the same search as Check and writes the resolved date onto the order.
func (s *ProductionOrderService) Plan(ctx context.Context, orderID string, ec EvaluationContext) (*dto.PlanResponse, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Plannable() {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("production order %s in state %s cannot be planned", order.Name, order.State))
	}
	result, err := s.search(ctx, order, ec)
	if err != nil {
		return nil, err
	}
	if err := s.orders.SetPlannedDate(ctx, order.ID, result.ResolvedDate); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store planned date")
	}
	s.logger.Info("production order planned",
		zap.String("order_id", order.ID),
		zap.Stringer("planned_date", result.ResolvedDate),
		zap.String("outcome", string(result.Outcome)),
	)
	return s.toResponse(order.ID, result, ec, true), nil
}

// AssignWorkCenter changes the requested work center. Without an explicit duration the
// requested minutes default to the expected durations of the order's work orders there.
func (s *ProductionOrderService) AssignWorkCenter(ctx context.Context, orderID string, req dto.AssignWorkCenterRequest) (*models.ProductionOrder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid work center assignment")
	}
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workCenters.Lookup(ctx, req.WorkCenterID); err != nil {
		return nil, err
	}

	wcID := req.WorkCenterID
	order.RequestedWorkCenterID = &wcID
	if req.ShiftType != nil {
		shift := models.ShiftID(*req.ShiftType)
		order.RequestedShift = &shift
	}
	if req.Date != nil {
		d := *req.Date
		order.RequestedDate = &d
	}
	if req.DurationMinutes != nil {
		order.RequestedMinutes = *req.DurationMinutes
	} else {
		minutes, ok, err := s.orders.SumExpectedDuration(ctx, order.ID, wcID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read work order durations")
		}
		if ok {
			order.RequestedMinutes = minutes
		}
	}

	if err := s.orders.UpdateRequest(ctx, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "production order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update production order")
	}
	return order, nil
}

func (s *ProductionOrderService) load(ctx context.Context, orderID string) (*models.ProductionOrder, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "production order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load production order")
	}
	return order, nil
}

// search requires every requested field; a production order never falls back to today.
func (s *ProductionOrderService) search(ctx context.Context, order *models.ProductionOrder, ec EvaluationContext) (*models.SearchResult, error) {
	if order.RequestedWorkCenterID == nil || order.RequestedShift == nil || order.RequestedDate == nil || order.RequestedDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrIncompleteRequest, s.localizer.Incomplete(ec.Locale))
	}
	req := models.CapacityRequest{
		WorkCenterID:     *order.RequestedWorkCenterID,
		ShiftID:          *order.RequestedShift,
		Date:             order.RequestedDate,
		RequestedMinutes: order.RequestedMinutes,
		Location:         ec.Location,
		Locale:           ec.Locale,
	}
	return s.capacity.FindEarliestAvailable(ctx, req, 0)
}

func (s *ProductionOrderService) toResponse(orderID string, result *models.SearchResult, ec EvaluationContext, planned bool) *dto.PlanResponse {
	return &dto.PlanResponse{
		OrderID:             orderID,
		Outcome:             result.Outcome,
		RequestedDate:       result.RequestedDate,
		ResolvedDate:        result.ResolvedDate,
		ResolvedDateDisplay: s.localizer.FormatDate(ec.Locale, result.ResolvedDate),
		DaysSearched:        result.DaysSearched,
		Message:             result.Message,
		Planned:             planned,
	}
}
