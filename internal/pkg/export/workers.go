package export

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// MaxWorkers limits parallel filesystem operations, it prevents the "too many open files" problem.
const MaxWorkers = 32

// Workers runs export tasks. With limit 1 each task runs directly in the caller goroutine.
// Otherwise, at most limit tasks run in parallel, Add blocks while the pool is full.
type Workers struct {
	ctx       context.Context
	limit     int64
	semaphore *semaphore.Weighted
	group     *errgroup.Group
	taskNum   *atomic.Int64
	lock      *sync.Mutex
	errors    map[int64]error
	waited    bool
}

func NewWorkers(parentCtx context.Context, limit int) *Workers {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxWorkers {
		limit = MaxWorkers
	}
	group, ctx := errgroup.WithContext(parentCtx)
	return &Workers{
		ctx:       ctx,
		limit:     int64(limit),
		semaphore: semaphore.NewWeighted(int64(limit)),
		group:     group,
		taskNum:   atomic.NewInt64(0),
		lock:      &sync.Mutex{},
		errors:    make(map[int64]error),
	}
}

func (w *Workers) Limit() int {
	return int(w.limit)
}

// Add runs the task. Errors returned by tasks are collected and returned by Wait.
func (w *Workers) Add(task func(ctx context.Context) error) {
	if w.waited {
		panic(errors.New(`finished export workers cannot be reused`))
	}

	taskNumber := w.taskNum.Inc() - 1
	if w.limit == 1 {
		w.setError(taskNumber, task(w.ctx))
		return
	}

	if err := w.semaphore.Acquire(w.ctx, 1); err != nil {
		w.setError(taskNumber, err)
		return
	}
	w.group.Go(func() error {
		defer w.semaphore.Release(1)
		w.setError(taskNumber, task(w.ctx))
		return nil
	})
}

// Wait for all tasks, errors are returned in the same order as the tasks were added.
func (w *Workers) Wait() error {
	if w.waited {
		panic(errors.New(`finished export workers cannot be reused`))
	}
	w.waited = true

	errs := errors.NewMultiError()
	if err := w.group.Wait(); err != nil {
		errs.Append(err)
	}

	for i := range w.taskNum.Load() {
		if err, ok := w.errors[i]; ok {
			errs.Append(err)
		}
	}
	return errs.ErrorOrNil()
}

func (w *Workers) setError(taskNumber int64, err error) {
	if err == nil {
		return
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	w.errors[taskNumber] = err
}
