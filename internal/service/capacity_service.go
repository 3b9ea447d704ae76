package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

// DefaultHorizonDays bounds forward searches when no horizon is configured.
const DefaultHorizonDays = 90

type allocationReader interface {
	ListOverlapping(ctx context.Context, workCenterID string, shiftID models.ShiftID, window models.TimeInterval) ([]models.Allocation, error)
}

type leaveReader interface {
	ExistsOverlapping(ctx context.Context, calendarID string, window models.TimeInterval) (bool, error)
}

type workCenterResolver interface {
	Lookup(ctx context.Context, id string) (*models.WorkCenter, error)
}

// CapacityServiceConfig carries the tunables of CapacityService.
type CapacityServiceConfig struct {
	HorizonDays     int
	DefaultLocation *time.Location
	// Now supplies "today" for searches without a date. Defaults to time.Now.
	Now func() time.Time
}

// CapacityService answers whether a duration fits in a work center shift and
// searches forward for the first day it does. It never writes.
type CapacityService struct {
	allocations allocationReader
	leaves      leaveReader
	workCenters workCenterResolver
	localizer   *Localizer
	metrics     *MetricsService
	logger      *zap.Logger
	horizon     int
	location    *time.Location
	now         func() time.Time
}

// NewCapacityService wires the capacity evaluator.
func NewCapacityService(
	allocations allocationReader,
	leaves leaveReader,
	workCenters workCenterResolver,
	localizer *Localizer,
	metrics *MetricsService,
	cfg CapacityServiceConfig,
	logger *zap.Logger,
) *CapacityService {
	if localizer == nil {
		localizer = NewLocalizer("en")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = DefaultHorizonDays
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &CapacityService{
		allocations: allocations,
		leaves:      leaves,
		workCenters: workCenters,
		localizer:   localizer,
		metrics:     metrics,
		logger:      logger,
		horizon:     cfg.HorizonDays,
		location:    cfg.DefaultLocation,
		now:         cfg.Now,
	}
}

// Evaluate checks a single calendar date. Scheduling conflicts and per-day data faults
// come back as unavailable verdicts; only an unknown shift is returned as an error.
func (s *CapacityService) Evaluate(ctx context.Context, req models.CapacityRequest) (models.CapacityVerdict, error) {
	if req.WorkCenterID == "" || req.ShiftID == "" || req.Date == nil || req.Date.IsZero() {
		verdict := models.CapacityVerdict{ReasonCode: models.ReasonIncomplete, Reason: s.localizer.Incomplete(req.Locale)}
		if req.Date != nil {
			verdict.Date = *req.Date
		}
		return s.record(verdict), nil
	}
	if req.RequestedMinutes <= 0 {
		return s.record(models.CapacityVerdict{
			Date:       *req.Date,
			ReasonCode: models.ReasonInvalidDuration,
			Reason:     s.localizer.InvalidDuration(req.Locale),
		}), nil
	}
	return s.evaluateDay(ctx, req, *req.Date, nil)
}

// FindEarliestAvailable walks forward from the requested date (or today in the request
// location) and returns the first day the request fits. horizonDays <= 0 uses the configured horizon.
func (s *CapacityService) FindEarliestAvailable(ctx context.Context, req models.CapacityRequest, horizonDays int) (*models.SearchResult, error) {
	if horizonDays <= 0 {
		horizonDays = s.horizon
	}
	if req.WorkCenterID == "" || req.ShiftID == "" {
		return nil, appErrors.Clone(appErrors.ErrIncompleteRequest, s.localizer.Incomplete(req.Locale))
	}
	if req.RequestedMinutes <= 0 {
		return nil, appErrors.Clone(appErrors.ErrIncompleteRequest, s.localizer.InvalidDuration(req.Locale))
	}
	if _, ok := models.LookupShift(req.ShiftID); !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownShift, fmt.Sprintf("unknown shift type %q", req.ShiftID))
	}

	start := s.startDate(req)
	wc, err := s.workCenters.Lookup(ctx, req.WorkCenterID)
	if err != nil {
		return nil, err
	}

	var firstReason string
	for i := 0; i < horizonDays; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := start.AddDays(i)
		verdict, err := s.evaluateDay(ctx, req, day, wc)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			firstReason = verdict.Reason
		}
		if !verdict.Available {
			continue
		}

		result := &models.SearchResult{
			Outcome:       models.OutcomeAvailableLater,
			RequestedDate: start,
			ResolvedDate:  day,
			Verdict:       verdict,
			DaysSearched:  i,
		}
		if i == 0 {
			result.Outcome = models.OutcomeAvailableToday
		}
		result.Message = s.localizer.SearchMessage(req.Locale, result)
		s.metrics.RecordSearch(result.Outcome, i)
		s.logger.Debug("capacity found",
			zap.String("workcenter_id", req.WorkCenterID),
			zap.String("shift", string(req.ShiftID)),
			zap.Stringer("requested_date", start),
			zap.Stringer("resolved_date", day),
			zap.Int("days_searched", i),
		)
		return result, nil
	}

	s.metrics.RecordSearch("", horizonDays)
	s.logger.Info("capacity search exhausted",
		zap.String("workcenter_id", req.WorkCenterID),
		zap.String("shift", string(req.ShiftID)),
		zap.Stringer("start_date", start),
		zap.Int("horizon_days", horizonDays),
	)
	return nil, appErrors.Clone(appErrors.ErrCapacityNotFound, s.localizer.NotFound(req.Locale, horizonDays, start, firstReason))
}

func (s *CapacityService) startDate(req models.CapacityRequest) models.Date {
	if req.Date != nil && !req.Date.IsZero() {
		return *req.Date
	}
	return models.DateOf(s.now(), s.locationFor(req))
}

func (s *CapacityService) locationFor(req models.CapacityRequest) *time.Location {
	if req.Location != nil {
		return req.Location
	}
	return s.location
}

// evaluateDay runs the window checks for one date. Failures after the shift bounds are
// resolved become evaluation_failed verdicts so one bad day cannot abort a search.
func (s *CapacityService) evaluateDay(ctx context.Context, req models.CapacityRequest, day models.Date, wc *models.WorkCenter) (models.CapacityVerdict, error) {
	verdict := models.CapacityVerdict{Date: day}
	loc := s.locationFor(req)

	window, err := ResolveShiftBounds(day, req.ShiftID, loc)
	if err != nil {
		return verdict, err
	}
	verdict.Window = &window

	if err := s.checkWindow(ctx, req, &verdict, wc, loc); err != nil {
		s.logger.Warn("capacity evaluation failed",
			zap.String("workcenter_id", req.WorkCenterID),
			zap.String("shift", string(req.ShiftID)),
			zap.Stringer("date", day),
			zap.Error(err),
		)
		verdict.Available = false
		verdict.MatchedInterval = nil
		verdict.ReasonCode = models.ReasonEvaluationFailed
		verdict.Reason = s.localizer.EvaluationFailed(req.Locale, err)
	}
	return s.record(verdict), nil
}

func (s *CapacityService) checkWindow(ctx context.Context, req models.CapacityRequest, verdict *models.CapacityVerdict, wc *models.WorkCenter, loc *time.Location) error {
	if wc == nil {
		var err error
		if wc, err = s.workCenters.Lookup(ctx, req.WorkCenterID); err != nil {
			return err
		}
	}
	window := *verdict.Window
	name := wc.Name
	if name == "" {
		name = wc.ID
	}

	holiday, err := s.isHoliday(ctx, wc, window)
	if err != nil {
		return err
	}
	if holiday {
		verdict.ReasonCode = models.ReasonHoliday
		verdict.Reason = s.localizer.Holiday(req.Locale, req.ShiftID, verdict.Date, name)
		return nil
	}

	busy, err := s.collectBusy(ctx, req.WorkCenterID, req.ShiftID, window)
	if err != nil {
		return err
	}
	block := FindFreeBlock(window, busy, req.RequestedMinutes)
	verdict.LargestGapMinutes = block.LargestGapMinutes()
	if !block.Found {
		verdict.ReasonCode = models.ReasonNoFreeBlock
		verdict.Reason = s.localizer.NoFreeBlock(req.Locale, req.RequestedMinutes, name, req.ShiftID, verdict.Date, verdict.LargestGapMinutes)
		return nil
	}

	gap := block.Gap
	verdict.Available = true
	verdict.MatchedInterval = &gap
	verdict.ReasonCode = models.ReasonFits
	verdict.Reason = s.localizer.Fits(req.Locale, req.ShiftID, gap, loc)
	return nil
}

// isHoliday reports whether any leave of the work center calendar overlaps window.
// Work centers without a calendar never have holidays.
func (s *CapacityService) isHoliday(ctx context.Context, wc *models.WorkCenter, window models.TimeInterval) (bool, error) {
	if !wc.HasCalendar() {
		return false, nil
	}
	return s.leaves.ExistsOverlapping(ctx, *wc.CalendarID, window)
}

// collectBusy returns the allocations of the shift clipped to window, sorted and merged.
func (s *CapacityService) collectBusy(ctx context.Context, workCenterID string, shiftID models.ShiftID, window models.TimeInterval) ([]models.TimeInterval, error) {
	allocations, err := s.allocations.ListOverlapping(ctx, workCenterID, shiftID, window)
	if err != nil {
		return nil, err
	}
	busy := make([]models.TimeInterval, 0, len(allocations))
	for _, alloc := range allocations {
		if clipped, ok := ClipInterval(alloc.Interval(), window); ok {
			busy = append(busy, clipped)
		}
	}
	return MergeBusyIntervals(busy), nil
}

func (s *CapacityService) record(verdict models.CapacityVerdict) models.CapacityVerdict {
	s.metrics.RecordEvaluation(verdict.ReasonCode, verdict.Available)
	return verdict
}
