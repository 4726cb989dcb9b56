package workers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"forkful/internal/metrics"
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 256
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Runner executes fire-and-forget tasks on a bounded worker pool.
// Task errors are logged and counted here, never returned to the
// submitter: the mutation that queued the task has already succeeded.
type Runner struct {
	logger    *zap.Logger
	queue     chan task
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewRunner starts the pool. Zero values select the defaults.
func NewRunner(workers, queueSize int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	r := &Runner{
		logger: logger,
		queue:  make(chan task, queueSize),
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.work()
		}()
	}
	return r
}

// Submit queues the task without blocking. A full queue or a closed
// runner drops the task and reports false; feed maintenance must never
// stall a write path.
func (r *Runner) Submit(name string, fn func(ctx context.Context) error) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		metrics.BackgroundTasks.WithLabelValues(name, "dropped").Inc()
		r.logger.Warn("runner closed, dropping task", zap.String("task", name))
		return false
	}
	select {
	case r.queue <- task{name: name, fn: fn}:
		return true
	default:
		metrics.BackgroundTasks.WithLabelValues(name, "dropped").Inc()
		r.logger.Warn("task queue full, dropping task", zap.String("task", name))
		return false
	}
}

// Close stops accepting work and waits for queued tasks to drain.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.queue)
	})
	r.wg.Wait()
}

func (r *Runner) work() {
	for t := range r.queue {
		if err := t.fn(context.Background()); err != nil {
			metrics.BackgroundTasks.WithLabelValues(t.name, "error").Inc()
			r.logger.Error("background task failed",
				zap.String("task", t.name), zap.Error(err))
			continue
		}
		metrics.BackgroundTasks.WithLabelValues(t.name, "ok").Inc()
	}
}
