package chain

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// ProgressSubject Tests
// ─────────────────────────────────────────────────────────────────────────────

// mockObserver records updates for testing.
type mockObserver struct {
	updates []ProgressUpdate
	mu      sync.Mutex
}

func newMockObserver() *mockObserver {
	return &mockObserver{updates: make([]ProgressUpdate, 0)}
}

func (m *mockObserver) Update(solverIndex int, progress float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, ProgressUpdate{SolverIndex: solverIndex, Value: progress})
}

func (m *mockObserver) snapshot() []ProgressUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProgressUpdate(nil), m.updates...)
}

func TestProgressSubject_RegisterUnregister(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	if subject.ObserverCount() != 0 {
		t.Fatalf("new subject should have 0 observers, got %d", subject.ObserverCount())
	}

	subject.Register(nil)
	if subject.ObserverCount() != 0 {
		t.Errorf("registering nil should not add observer, got %d", subject.ObserverCount())
	}

	// mockObserver rather than NoOpObserver: zero-size structs may share an
	// address, which breaks identity comparison.
	o1, o2 := newMockObserver(), newMockObserver()
	subject.Register(o1)
	subject.Register(o2)
	if subject.ObserverCount() != 2 {
		t.Fatalf("expected 2 observers, got %d", subject.ObserverCount())
	}

	subject.Unregister(nil)
	subject.Unregister(o1)
	subject.Unregister(o1)
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer after unregister, got %d", subject.ObserverCount())
	}

	subject.Notify(4, 0.5)
	if len(o1.snapshot()) != 0 {
		t.Error("unregistered observer should not be notified")
	}
	if got := o2.snapshot(); len(got) != 1 || got[0].SolverIndex != 4 || got[0].Value != 0.5 {
		t.Errorf("unexpected updates %+v", got)
	}
}

func TestProgressSubject_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			subject.Register(NewNoOpObserver())
		}()
		go func(idx int) {
			defer wg.Done()
			subject.Notify(idx, float64(idx)/10.0)
		}(i)
	}
	wg.Wait()

	if subject.ObserverCount() != 10 {
		t.Errorf("expected 10 observers, got %d", subject.ObserverCount())
	}
}

func TestSolveWithObservers(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	mock := newMockObserver()
	subject.Register(mock)

	solver := NewSolver(&Memoized{}).(*ChainSolver)
	res, err := solver.SolveWithObservers(context.Background(), subject, 7, []float64{30, 35, 15, 5, 10, 20, 25})
	if err != nil {
		t.Fatalf("SolveWithObservers error = %v", err)
	}
	if res.MinimumCost != 15125 {
		t.Errorf("MinimumCost = %v, want 15125", res.MinimumCost)
	}

	updates := mock.snapshot()
	if len(updates) == 0 {
		t.Fatal("expected progress updates")
	}
	prev := 0.0
	for _, u := range updates {
		if u.SolverIndex != 7 {
			t.Errorf("SolverIndex = %d, want 7", u.SolverIndex)
		}
		if u.Value < prev {
			t.Errorf("progress went backwards: %v after %v", u.Value, prev)
		}
		prev = u.Value
	}
	if prev != 1.0 {
		t.Errorf("final progress = %v, want 1.0", prev)
	}

	if _, err := solver.SolveWithObservers(context.Background(), nil, 0, []float64{10, 20}); err != nil {
		t.Errorf("nil subject should be accepted, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Observer implementations
// ─────────────────────────────────────────────────────────────────────────────

func TestChannelObserver(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 2)
	observer := NewChannelObserver(ch)
	observer.Update(1, 0.5)
	observer.Update(2, 1.5)

	if u := <-ch; u.SolverIndex != 1 || u.Value != 0.5 {
		t.Errorf("unexpected update %+v", u)
	}
	if u := <-ch; u.Value != 1.0 {
		t.Errorf("expected progress clamped to 1.0, got %f", u.Value)
	}

	NewChannelObserver(nil).Update(1, 0.5)

	full := NewChannelObserver(make(chan ProgressUpdate))
	done := make(chan struct{})
	go func() {
		full.Update(1, 0.5)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("Update should not block on a full channel")
	}
}

func TestLoggingObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	observer := NewLoggingObserver(logger, 0.1)

	observer.Update(0, 0.1)
	if buf.Len() == 0 {
		t.Error("expected initial progress to be logged")
	}

	buf.Reset()
	observer.Update(0, 0.15)
	if buf.Len() > 0 {
		t.Error("expected small progress change to not be logged")
	}

	buf.Reset()
	observer.Update(0, 1.0)
	if !bytes.Contains(buf.Bytes(), []byte("solve progress")) {
		t.Errorf("expected completion to be logged, got %q", buf.String())
	}

	defaulted := NewLoggingObserver(logger, 0)
	if defaulted.threshold != 0.1 {
		t.Errorf("default threshold = %v, want 0.1", defaulted.threshold)
	}
}

func TestMetricsAndNoOpObservers(t *testing.T) {
	t.Parallel()

	m := NewMetricsObserver()
	m.Update(0, 0.5)
	m.Update(1, 1.0)

	n := NewNoOpObserver()
	n.Update(0, 1.0)
}
