package worker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/worker"
)

func startScheduler(t *testing.T, workers int) *worker.DelayedScheduler {
	t.Helper()

	s := worker.NewDelayedScheduler(workers, 16, zap.NewNop())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(context.Background())
	}()

	t.Cleanup(func() {
		_ = s.Stop()
		<-done
	})
	return s
}

func TestDelayedScheduler_RunsTaskAfterDelay(t *testing.T) {
	s := startScheduler(t, 2)

	const delay = 100 * time.Millisecond
	start := time.Now()
	ran := make(chan time.Time, 1)

	require.NoError(t, s.ScheduleAfter(delay, func(ctx context.Context) {
		ran <- time.Now()
	}))

	select {
	case at := <-ran:
		assert.GreaterOrEqual(t, at.Sub(start), delay)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestDelayedScheduler_RunsEachTaskOnce(t *testing.T) {
	s := startScheduler(t, 4)

	const tasks = 100
	var counts [tasks]int32
	var wg sync.WaitGroup
	wg.Add(tasks)

	for i := 0; i < tasks; i++ {
		i := i
		require.NoError(t, s.ScheduleAfter(time.Duration(i%5)*time.Millisecond, func(ctx context.Context) {
			atomic.AddInt32(&counts[i], 1)
			wg.Done()
		}))
	}

	waitOrFail(t, &wg, 2*time.Second)
	time.Sleep(20 * time.Millisecond)

	for i := range counts {
		assert.Equal(t, int32(1), atomic.LoadInt32(&counts[i]), "task %d", i)
	}
	assert.Equal(t, 0, s.Pending())
}

func TestDelayedScheduler_QueuesTasksScheduledBeforeStart(t *testing.T) {
	s := worker.NewDelayedScheduler(1, 4, zap.NewNop())

	ran := make(chan struct{})
	require.NoError(t, s.ScheduleAfter(0, func(ctx context.Context) { close(ran) }))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(context.Background())
	}()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("queued task did not run after Start")
	}

	require.NoError(t, s.Stop())
	<-done
}

func TestDelayedScheduler_StopDisarmsTimersAndRejectsWork(t *testing.T) {
	s := worker.NewDelayedScheduler(1, 4, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(context.Background())
	}()

	var ran int32
	require.NoError(t, s.ScheduleAfter(50*time.Millisecond, func(ctx context.Context) {
		atomic.StoreInt32(&ran, 1)
	}))
	assert.Equal(t, 1, s.Pending())

	require.NoError(t, s.Stop())
	<-done

	assert.ErrorIs(t, s.ScheduleAfter(0, func(ctx context.Context) {}), worker.ErrSchedulerStopped)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&ran))
	assert.True(t, s.IsStopped())

	// повторная остановка безопасна
	assert.NoError(t, s.Stop())
}

func TestDelayedScheduler_RecoversFromPanickingTask(t *testing.T) {
	s := startScheduler(t, 1)

	require.NoError(t, s.ScheduleAfter(0, func(ctx context.Context) {
		panic("boom")
	}))

	ran := make(chan struct{})
	require.NoError(t, s.ScheduleAfter(10*time.Millisecond, func(ctx context.Context) { close(ran) }))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("pool worker did not survive a panicking task")
	}
}

func TestDelayedScheduler_RejectsNilTask(t *testing.T) {
	s := worker.NewDelayedScheduler(1, 1, zap.NewNop())
	assert.Error(t, s.ScheduleAfter(time.Millisecond, nil))
}

func TestDelayedScheduler_StopsWithContext(t *testing.T) {
	s := worker.NewDelayedScheduler(2, 4, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(ctx)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for tasks")
	}
}
