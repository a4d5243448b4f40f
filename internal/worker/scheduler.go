package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSuperseded is reported to a task replaced by a newer one under the same key
	ErrSuperseded = errors.New("worker: task superseded")
	// ErrCancelled is reported to a task removed with Cancel before it ran
	ErrCancelled = errors.New("worker: task cancelled")
	// ErrStopped is reported to tasks pending when the scheduler stops
	ErrStopped = errors.New("worker: scheduler stopped")
)

// TaskFunc is the body of a scheduled task
type TaskFunc func(ctx context.Context) error

// Task is one scheduled unit of work. It finishes exactly once, either with
// the body's result or with a cancellation error.
type Task struct {
	Token string
	Key   string

	fn    TaskFunc
	timer *time.Timer
	done  chan struct{}
	err   error

	// set under Scheduler.mu when the task is withdrawn before it runs
	withdrawn error
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

// Done is closed when the task has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task outcome. Only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes or ctx is done. A ctx expiry does not
// cancel the task.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Scheduler runs delayed tasks keyed by logical action. At most one task is
// pending per key; bodies run one at a time.
type Scheduler struct {
	mu      sync.Mutex
	runMu   sync.Mutex
	pending map[string]*Task
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.Logger
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		pending: make(map[string]*Task),
		ctx:     ctx,
		cancel:  cancel,
		logger:  util.GetLogger(),
	}
}

// Schedule runs fn after delay. A task already pending under key is
// superseded and finishes with ErrSuperseded.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn TaskFunc) *Task {
	t := &Task{
		Token: uuid.New().String(),
		Key:   key,
		fn:    fn,
		done:  make(chan struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		t.finish(ErrStopped)
		return t
	}

	if prev, ok := s.pending[key]; ok {
		s.withdraw(prev, ErrSuperseded)
		util.TasksScheduledTotal.WithLabelValues("superseded").Inc()
		s.logger.Debug("Task superseded",
			zap.String("key", key),
			zap.String("token", prev.Token),
		)
	}

	s.pending[key] = t
	s.wg.Add(1)
	t.timer = time.AfterFunc(delay, func() { s.fire(t) })
	util.TasksScheduledTotal.WithLabelValues("scheduled").Inc()

	return t
}

func (s *Scheduler) fire(t *Task) {
	defer s.wg.Done()

	s.mu.Lock()
	if t.withdrawn != nil {
		s.mu.Unlock()
		t.finish(t.withdrawn)
		return
	}
	delete(s.pending, t.Key)
	s.mu.Unlock()

	s.runMu.Lock()
	defer s.runMu.Unlock()

	err := t.fn(s.ctx)
	if err != nil {
		util.TasksScheduledTotal.WithLabelValues("failed").Inc()
	} else {
		util.TasksScheduledTotal.WithLabelValues("completed").Inc()
	}
	t.finish(err)
}

// Cancel removes the task pending under key. It reports whether a task was
// removed before it started.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.pending[key]
	if !ok {
		return false
	}
	s.withdraw(t, ErrCancelled)
	util.TasksScheduledTotal.WithLabelValues("cancelled").Inc()
	return true
}

// withdraw removes a pending task. If its timer already fired, fire observes
// the withdrawal and finishes the task instead. Callers hold s.mu.
func (s *Scheduler) withdraw(t *Task, reason error) {
	delete(s.pending, t.Key)
	t.withdrawn = reason
	if t.timer.Stop() {
		t.finish(reason)
		s.wg.Done()
	}
}

// Pending reports whether a task is waiting under key
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Stop cancels pending tasks, cancels the context handed to running bodies
// and waits for them to return. Schedule after Stop fails with ErrStopped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for _, t := range s.pending {
		s.withdraw(t, ErrStopped)
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}
