package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnce(t *testing.T) {
	t.Parallel()

	s := NewScheduler()

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestScheduler_RunOnceContinuesPastFailures(t *testing.T) {
	t.Parallel()

	s := NewScheduler()

	var ran atomic.Bool
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("after", time.Hour, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	s.RunOnce(context.Background())

	assert.True(t, ran.Load())
}

func TestScheduler_StartRunsJobsImmediately(t *testing.T) {
	t.Parallel()

	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		close(done)
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	t.Parallel()

	s := NewScheduler()

	canceled := make(chan struct{})
	s.AddJob("blocking", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	})

	s.Start()
	s.Stop()

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("job context was not canceled on stop")
	}
}
