package export

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

func TestWorkers_Sequential(t *testing.T) {
	t.Parallel()
	w := NewWorkers(context.Background(), 1)
	assert.Equal(t, 1, w.Limit())

	var order []int
	for i := range 5 {
		w.Add(func(ctx context.Context) error {
			order = append(order, i)
			if i == 3 {
				return errors.New("task 3 failed")
			}
			return nil
		})
		// The task has already finished
		assert.Len(t, order, i+1)
	}

	err := w.Wait()
	require.Error(t, err)
	assert.Equal(t, "task 3 failed", err.Error())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestWorkers_Parallel(t *testing.T) {
	t.Parallel()
	w := NewWorkers(context.Background(), 4)

	running := atomic.NewInt64(0)
	maxRunning := atomic.NewInt64(0)
	lock := &sync.Mutex{}
	done := make(map[int]bool)

	for i := range 20 {
		w.Add(func(ctx context.Context) error {
			current := running.Inc()
			defer running.Dec()
			for {
				prev := maxRunning.Load()
				if current <= prev || maxRunning.CompareAndSwap(prev, current) {
					break
				}
			}
			time.Sleep(time.Millisecond)

			lock.Lock()
			done[i] = true
			lock.Unlock()

			if i%5 == 0 {
				return errors.Errorf("task %d failed", i)
			}
			return nil
		})
	}

	err := w.Wait()
	require.Error(t, err)
	assert.Len(t, done, 20)
	assert.LessOrEqual(t, maxRunning.Load(), int64(4))

	// Errors are ordered by the task number
	expected := ""
	for _, i := range []int{0, 5, 10, 15} {
		expected += fmt.Sprintf("- task %d failed\n", i)
	}
	assert.Equal(t, expected[:len(expected)-1], err.Error())
}

func TestWorkers_Limit(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, NewWorkers(context.Background(), 0).Limit())
	assert.Equal(t, MaxWorkers, NewWorkers(context.Background(), 1000).Limit())
}

func TestWorkers_Reuse(t *testing.T) {
	t.Parallel()
	w := NewWorkers(context.Background(), 2)
	require.NoError(t, w.Wait())
	assert.Panics(t, func() {
		w.Add(func(ctx context.Context) error { return nil })
	})
}
