package workpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllWorkersRun(t *testing.T) {
	seen := make([]int32, 5)
	err := Run(context.Background(), 5, 0, func(_ context.Context, worker int) error {
		atomic.AddInt32(&seen[worker], 1)
		return nil
	})
	require.NoError(t, err)
	for i, n := range seen {
		assert.Equal(t, int32(1), n, "worker %d", i)
	}
}

func TestRun_RespectsLimit(t *testing.T) {
	var running, peak int32
	err := Run(context.Background(), 8, 2, func(context.Context, int) error {
		now := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak, int32(2))
}

func TestRun_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), 3, 0, func(ctx context.Context, worker int) error {
		if worker == 0 {
			return boom
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("not cancelled")
		}
	})
	assert.ErrorIs(t, err, boom)
}

func TestRun_NoTasks(t *testing.T) {
	err := Run(context.Background(), 0, 1, func(context.Context, int) error { return nil })
	assert.ErrorIs(t, err, ErrNoTasks)
}
