package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
	"github.com/noah-isme/mrp-capacity-api/pkg/jobs"
)

// JobTypePlanOrder plans one production order in the background.
const JobTypePlanOrder = "production_order.plan"

// Planning job states.
const (
	PlanningJobQueued    = "queued"
	PlanningJobSucceeded = "succeeded"
	PlanningJobFailed    = "failed"
)

type orderPlanner interface {
	Plan(ctx context.Context, orderID string, ec EvaluationContext) (*dto.PlanResponse, error)
}

type planJobPayload struct {
	OrderID string
	Context EvaluationContext
}

// PlanningJobStatus is the last known state of an asynchronous plan job.
type PlanningJobStatus struct {
	JobID     string            `json:"job_id"`
	OrderID   string            `json:"order_id"`
	Status    string            `json:"status"`
	Result    *dto.PlanResponse `json:"result,omitempty"`
	Error     *appErrors.Error  `json:"error,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// PlanningQueue runs plan actions on the shared worker pool. Business failures such as
// CAPACITY_NOT_FOUND are final; only server-side failures are retried.
type PlanningQueue struct {
	planner orderPlanner
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger

	mu       sync.RWMutex
	statuses map[string]*PlanningJobStatus
}

// NewPlanningQueue builds the queue; call Start before Enqueue.
func NewPlanningQueue(planner orderPlanner, cfg jobs.QueueConfig, metrics *MetricsService, logger *zap.Logger) *PlanningQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Logger = logger
	q := &PlanningQueue{planner: planner, metrics: metrics, logger: logger, statuses: make(map[string]*PlanningJobStatus)}
	q.queue = jobs.NewQueue("planning", q.handle, cfg)
	return q
}

// Start launches the workers.
func (q *PlanningQueue) Start(ctx context.Context) {
	q.queue.Start(ctx)
}

// Stop drains the workers.
func (q *PlanningQueue) Stop() {
	q.queue.Stop()
}

// EnqueuePlan schedules a plan action for orderID.
func (q *PlanningQueue) EnqueuePlan(orderID string, ec EvaluationContext) (*dto.PlanningJobResponse, error) {
	id, err := q.queue.Enqueue(jobs.Job{Type: JobTypePlanOrder, Payload: planJobPayload{OrderID: orderID, Context: ec}})
	if err != nil {
		if errors.Is(err, jobs.ErrQueueFull) {
			return nil, appErrors.Wrap(err, appErrors.ErrPlanningQueueFull.Code, appErrors.ErrPlanningQueueFull.Status, appErrors.ErrPlanningQueueFull.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue planning job")
	}
	q.setStatus(&PlanningJobStatus{JobID: id, OrderID: orderID, Status: PlanningJobQueued})
	return &dto.PlanningJobResponse{JobID: id, OrderID: orderID, Status: PlanningJobQueued}, nil
}

// Status returns the state of a job or ErrNotFound.
func (q *PlanningQueue) Status(jobID string) (*PlanningJobStatus, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	status, ok := q.statuses[jobID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "planning job not found")
	}
	copied := *status
	return &copied, nil
}

func (q *PlanningQueue) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(planJobPayload)
	if !ok {
		q.logger.Error("unexpected planning payload", zap.String("job_id", job.ID))
		return nil
	}

	result, err := q.planner.Plan(ctx, payload.OrderID, payload.Context)
	q.metrics.RecordPlanningJob(err)
	if err == nil {
		q.setStatus(&PlanningJobStatus{JobID: job.ID, OrderID: payload.OrderID, Status: PlanningJobSucceeded, Result: result})
		return nil
	}

	appErr := appErrors.FromError(err)
	q.setStatus(&PlanningJobStatus{JobID: job.ID, OrderID: payload.OrderID, Status: PlanningJobFailed, Error: appErr})
	if appErr.Status >= 500 {
		return err
	}
	q.logger.Info("planning job rejected", zap.String("job_id", job.ID), zap.String("order_id", payload.OrderID), zap.String("code", appErr.Code))
	return nil
}

func (q *PlanningQueue) setStatus(status *PlanningJobStatus) {
	status.UpdatedAt = time.Now().UTC()
	q.mu.Lock()
	defer q.mu.Unlock()
	if existing, ok := q.statuses[status.JobID]; ok && status.Status == PlanningJobQueued && existing.Status != PlanningJobQueued {
		return
	}
	q.statuses[status.JobID] = status
}
