package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingJob struct {
	runs    atomic.Int32
	err     error
	blockOn bool
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	if j.blockOn {
		<-ctx.Done()
		return ctx.Err()
	}
	return j.err
}

// go test -v --run TestSchedulerRunsJob
func TestSchedulerRunsJob(t *testing.T) {
	s := New(zap.NewNop())
	job := &countingJob{}

	require.NoError(t, s.AddJob("@every 1s", job))
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

// go test -v --run TestSchedulerInvalidSpec
func TestSchedulerInvalidSpec(t *testing.T) {
	s := New(zap.NewNop())
	assert.Error(t, s.AddJob("every now and then", &countingJob{}))
}

// go test -v --run TestSchedulerRunNow
func TestSchedulerRunNow(t *testing.T) {
	s := New(zap.NewNop())
	job := &countingJob{err: errors.New("boom")}

	assert.EqualError(t, s.RunNow(job), "boom")
	assert.Equal(t, int32(1), job.runs.Load())
}

// go test -v --run TestSchedulerStopCancelsJobs
func TestSchedulerStopCancelsJobs(t *testing.T) {
	s := New(zap.NewNop())
	job := &countingJob{blockOn: true}

	require.NoError(t, s.AddJob("@every 1s", job))
	s.Start()
	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, 3*time.Second, 50*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return")
	}
}

// go test -v --run TestSchedulerStartAfterStop
func TestSchedulerStartAfterStop(t *testing.T) {
	s := New(zap.NewNop())
	job := &countingJob{}
	require.NoError(t, s.AddJob("@every 1s", job))

	s.Stop()
	s.Start()

	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, int32(0), job.runs.Load())
}
