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
	s := NewScheduler()

	var calls int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.AddJob("count_again", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestScheduler_RunOnceContinuesPastFailure(t *testing.T) {
	s := NewScheduler()

	var ran bool
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("after", time.Hour, func(ctx context.Context) error {
		ran = true
		return nil
	})

	s.RunOnce(context.Background())
	assert.True(t, ran, "job after a failing one should still run")
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	var once atomic.Bool
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(done)
		}
		return nil
	})

	s.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}

	s.Stop()
}
