package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSchedulerStopped is returned by ScheduleAfter once the scheduler is stopped.
var ErrSchedulerStopped = errors.New("scheduler stopped")

// Task is a unit of deferred work. The context is cancelled when the scheduler shuts down.
type Task func(ctx context.Context)

// DelayedScheduler runs each task exactly once after its delay on a fixed pool of goroutines.
// Tasks may be scheduled before Start; they are queued until the pool is running.
type DelayedScheduler struct {
	*BaseWorker
	workers int
	queue   chan Task

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool

	wg sync.WaitGroup
}

var _ Worker = (*DelayedScheduler)(nil)

// NewDelayedScheduler creates a scheduler with the given pool and queue size.
func NewDelayedScheduler(workers, queueSize int, logger *zap.Logger) *DelayedScheduler {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	return &DelayedScheduler{
		BaseWorker: NewBaseWorker("delayed-scheduler", logger),
		workers:    workers,
		queue:      make(chan Task, queueSize),
		timers:     make(map[*time.Timer]struct{}),
	}
}

// ScheduleAfter arms a timer; when it fires the task is handed to the pool.
func (s *DelayedScheduler) ScheduleAfter(delay time.Duration, task Task) error {
	if task == nil {
		return fmt.Errorf("nil task")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSchedulerStopped
	}

	// The callback takes s.mu before touching t, so it cannot observe t unassigned.
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, armed := s.timers[t]
		delete(s.timers, t)
		s.mu.Unlock()

		if !armed {
			return
		}

		select {
		case s.queue <- task:
		case <-s.StopChan():
		}
	})
	s.timers[t] = struct{}{}

	return nil
}

// Pending returns the number of armed timers.
func (s *DelayedScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Start runs the pool and blocks until Stop is called or ctx is done.
func (s *DelayedScheduler) Start(ctx context.Context) error {
	logger := s.Logger()
	logger.Info("Starting delayed scheduler", zap.Int("workers", s.workers))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.StopChan():
			cancel()
		case <-runCtx.Done():
		}
	}()

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.run(runCtx, i)
	}
	s.wg.Wait()

	logger.Info("Delayed scheduler stopped")
	return nil
}

// Stop disarms pending timers and stops the pool. Tasks not yet started are dropped.
func (s *DelayedScheduler) Stop() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		for t := range s.timers {
			t.Stop()
		}
		if n := len(s.timers); n > 0 {
			s.Logger().Warn("Dropping scheduled tasks on shutdown", zap.Int("count", n))
		}
		s.timers = make(map[*time.Timer]struct{})
	}
	s.mu.Unlock()

	return s.BaseWorker.Stop()
}

func (s *DelayedScheduler) run(ctx context.Context, id int) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-s.queue:
			s.execute(ctx, id, task)
		}
	}
}

func (s *DelayedScheduler) execute(ctx context.Context, id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger().Error("Scheduled task panicked",
				zap.Int("pool_worker", id),
				zap.Any("panic", r))
		}
	}()

	task(ctx)
}
