package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

type allocationStore interface {
	ListByWorkCenter(ctx context.Context, filter models.AllocationFilter) ([]models.Allocation, error)
	Create(ctx context.Context, alloc *models.Allocation) error
}

// AllocationService owns the planning slot write path.
type AllocationService struct {
	repo        allocationStore
	workCenters workCenterResolver
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAllocationService builds an AllocationService.
func NewAllocationService(repo allocationStore, workCenters workCenterResolver, validate *validator.Validate, logger *zap.Logger) *AllocationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{repo: repo, workCenters: workCenters, validator: validate, logger: logger}
}

// Create books a slot. Overlapping slots on the same work center shift are rejected
// with ErrDoubleBooking.
func (s *AllocationService) Create(ctx context.Context, req dto.CreateAllocationRequest) (*models.Allocation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation payload")
	}
	if _, err := s.workCenters.Lookup(ctx, req.WorkCenterID); err != nil {
		return nil, err
	}

	minutes := req.AllocatedMinutes
	if minutes == 0 {
		minutes = req.End.Sub(req.Start).Minutes()
	}
	alloc := &models.Allocation{
		WorkCenterID:      req.WorkCenterID,
		ShiftID:           models.ShiftID(req.ShiftType),
		StartAt:           req.Start.UTC(),
		EndAt:             req.End.UTC(),
		AllocatedMinutes:  minutes,
		ProductionOrderID: req.ProductionOrderID,
	}
	if err := s.repo.Create(ctx, alloc); err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrDoubleBooking.Code {
			s.logger.Info("double booking rejected",
				zap.String("workcenter_id", alloc.WorkCenterID),
				zap.String("shift", string(alloc.ShiftID)),
				zap.Time("start", alloc.StartAt),
			)
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create allocation")
	}
	return alloc, nil
}

// List returns the slots of a work center. from and to are whole days in loc.
func (s *AllocationService) List(ctx context.Context, query dto.AllocationQuery, loc *time.Location) ([]models.Allocation, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation filter")
	}
	if loc == nil {
		loc = time.UTC
	}

	filter := models.AllocationFilter{WorkCenterID: query.WorkCenterID}
	if query.ShiftType != "" {
		shift := models.ShiftID(query.ShiftType)
		filter.ShiftID = &shift
	}
	if query.From != "" {
		from, err := models.ParseDate(query.From)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid from date")
		}
		filter.From = from.At(models.ClockTime{}, loc)
	}
	if query.To != "" {
		to, err := models.ParseDate(query.To)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid to date")
		}
		filter.To = to.AddDays(1).At(models.ClockTime{}, loc)
	}

	slots, err := s.repo.ListByWorkCenter(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list allocations")
	}
	if slots == nil {
		slots = []models.Allocation{}
	}
	return slots, nil
}
