package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/chainorder/internal/chain"
)

// cleanupOnProgress runs a lifecycle cleanup on the first progress update,
// i.e. while the solve is in flight.
type cleanupOnProgress struct {
	once    sync.Once
	cleanup func()
}

func (c *cleanupOnProgress) Update(_ int, progress float64) {
	if progress < 1.0 {
		c.once.Do(c.cleanup)
	}
}

func longChain() []float64 {
	dims := make([]float64, 41)
	for i := range dims {
		dims[i] = float64(i%9 + 2)
	}
	return dims
}

func TestCleanupStopsRunningSolve(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"bottomup", "memo"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			solver, err := chain.NewDefaultFactory().Get(name)
			require.NoError(t, err)

			ctx, lifecycle := SetupLifecycle(context.Background(), time.Hour)
			subject := chain.NewProgressSubject()
			subject.Register(&cleanupOnProgress{cleanup: lifecycle.Cleanup})

			res, err := solver.(*chain.ChainSolver).SolveWithObservers(ctx, subject, 0, longChain())

			assert.Nil(t, res)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestSolveTimeout(t *testing.T) {
	t.Parallel()

	ctx, lifecycle := SetupLifecycle(context.Background(), time.Nanosecond)
	defer lifecycle.Cleanup()
	<-ctx.Done()

	res, err := chain.NewSolver(&chain.BottomUp{}).Solve(ctx, nil, 0, []float64{10, 30, 5, 60})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSetupLifecycleLeavesSolveAlone(t *testing.T) {
	t.Parallel()

	ctx, lifecycle := SetupLifecycle(context.Background(), time.Minute)
	defer lifecycle.Cleanup()

	res, err := chain.NewSolver(&chain.Memoized{}).Solve(ctx, nil, 0, []float64{30, 35, 15, 5, 10, 20, 25})
	require.NoError(t, err)
	assert.Equal(t, 15125.0, res.MinimumCost)
	assert.NoError(t, ctx.Err())
}

func TestCancelFuncsCleanup(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, (&CancelFuncs{}).Cleanup)

	var order []string
	cf := &CancelFuncs{
		CancelTimeout: func() { order = append(order, "timeout") },
		StopSignals:   func() { order = append(order, "signals") },
	}
	cf.Cleanup()
	assert.Equal(t, []string{"signals", "timeout"}, order)
}
