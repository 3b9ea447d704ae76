package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	done := make(chan string, 1)
	q := NewQueue("plan", func(ctx context.Context, job Job) error {
		done <- job.Payload.(string)
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	id, err := q.Enqueue(Job{Type: "plan", Payload: "MO-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case got := <-done:
		assert.Equal(t, "MO-1", got)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesFailures(t *testing.T) {
	var attempts int32
	done := make(chan struct{})
	q := NewQueue("plan", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{Workers: 1, MaxRetries: 3, RetryDelay: 10 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{Type: "plan"})
	require.NoError(t, err)

	select {
	case <-done:
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
}

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("plan", func(context.Context, Job) error { return nil }, QueueConfig{})

	_, err := q.Enqueue(Job{Type: "plan"})
	assert.Error(t, err)
}

func TestQueueRejectsWhenFull(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	q := NewQueue("plan", func(ctx context.Context, job Job) error {
		started <- struct{}{}
		<-release
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())

	_, err := q.Enqueue(Job{Type: "plan"})
	require.NoError(t, err)
	<-started

	_, err = q.Enqueue(Job{Type: "plan"})
	require.NoError(t, err)

	_, err = q.Enqueue(Job{Type: "plan"})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	q.Stop()
}
