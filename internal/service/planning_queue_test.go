package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
	"github.com/noah-isme/mrp-capacity-api/pkg/jobs"
)

type plannerStub struct {
	mu    sync.Mutex
	calls int
	errs  []error
}

func (p *plannerStub) Plan(ctx context.Context, orderID string, ec EvaluationContext) (*dto.PlanResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		return nil, err
	}
	return &dto.PlanResponse{OrderID: orderID, Planned: true}, nil
}

func (p *plannerStub) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func waitForStatus(t *testing.T, q *PlanningQueue, jobID, want string) *PlanningJobStatus {
	t.Helper()
	var status *PlanningJobStatus
	require.Eventually(t, func() bool {
		var err error
		status, err = q.Status(jobID)
		return err == nil && status.Status == want
	}, 2*time.Second, 10*time.Millisecond)
	return status
}

func TestPlanningQueueRunsPlan(t *testing.T) {
	planner := &plannerStub{}
	q := NewPlanningQueue(planner, jobs.QueueConfig{Workers: 1}, NewMetricsService(), nil)
	q.Start(context.Background())
	defer q.Stop()

	job, err := q.EnqueuePlan("mo-1", EvaluationContext{Locale: "en"})
	require.NoError(t, err)
	assert.Equal(t, PlanningJobQueued, job.Status)

	status := waitForStatus(t, q, job.JobID, PlanningJobSucceeded)
	require.NotNil(t, status.Result)
	assert.True(t, status.Result.Planned)
}

func TestPlanningQueueDoesNotRetryBusinessFailures(t *testing.T) {
	planner := &plannerStub{errs: []error{appErrors.Clone(appErrors.ErrCapacityNotFound, "full")}}
	q := NewPlanningQueue(planner, jobs.QueueConfig{Workers: 1, MaxRetries: 3, RetryDelay: 10 * time.Millisecond}, nil, nil)
	q.Start(context.Background())
	defer q.Stop()

	job, err := q.EnqueuePlan("mo-1", EvaluationContext{})
	require.NoError(t, err)

	status := waitForStatus(t, q, job.JobID, PlanningJobFailed)
	assert.Equal(t, appErrors.ErrCapacityNotFound.Code, status.Error.Code)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, planner.callCount())
}

func TestPlanningQueueRetriesServerFailures(t *testing.T) {
	planner := &plannerStub{errs: []error{errors.New("db down")}}
	q := NewPlanningQueue(planner, jobs.QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: 10 * time.Millisecond}, nil, nil)
	q.Start(context.Background())
	defer q.Stop()

	job, err := q.EnqueuePlan("mo-1", EvaluationContext{})
	require.NoError(t, err)

	waitForStatus(t, q, job.JobID, PlanningJobSucceeded)
	assert.Equal(t, 2, planner.callCount())
}

func TestPlanningQueueUnknownJob(t *testing.T) {
	q := NewPlanningQueue(&plannerStub{}, jobs.QueueConfig{}, nil, nil)

	_, err := q.Status("missing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestPlanningQueueRejectsWhenStopped(t *testing.T) {
	q := NewPlanningQueue(&plannerStub{}, jobs.QueueConfig{}, nil, nil)

	_, err := q.EnqueuePlan("mo-1", EvaluationContext{})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

type blockingPlanner struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingPlanner) Plan(ctx context.Context, orderID string, ec EvaluationContext) (*dto.PlanResponse, error) {
	p.started <- struct{}{}
	<-p.release
	return &dto.PlanResponse{OrderID: orderID}, nil
}

func TestPlanningQueueFull(t *testing.T) {
	planner := &blockingPlanner{started: make(chan struct{}, 1), release: make(chan struct{})}
	q := NewPlanningQueue(planner, jobs.QueueConfig{Workers: 1, BufferSize: 1}, nil, nil)
	q.Start(context.Background())

	_, err := q.EnqueuePlan("mo-1", EvaluationContext{})
	require.NoError(t, err)
	<-planner.started
	_, err = q.EnqueuePlan("mo-2", EvaluationContext{})
	require.NoError(t, err)

	_, err = q.EnqueuePlan("mo-3", EvaluationContext{})
	assert.True(t, errors.Is(err, appErrors.ErrPlanningQueueFull))
	assert.Equal(t, 503, appErrors.FromError(err).Status)

	close(planner.release)
	q.Stop()
}
