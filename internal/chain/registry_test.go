package chain

import (
	"context"
	"errors"
	"testing"
)

// mockCoreSolver delegates to BottomUp under another name.
type mockCoreSolver struct{}

func (m *mockCoreSolver) Name() string { return "mock" }
func (m *mockCoreSolver) Fill(ctx context.Context, reporter ProgressReporter, p []float64, rec *recorder) (*CostTable, *SplitTable, error) {
	return (&BottomUp{}).Fill(ctx, reporter, p, rec)
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	t.Run("Builtins", func(t *testing.T) {
		list := factory.List()
		if len(list) < 2 || list[0] != DefaultAlgorithm || list[1] != "memo" {
			t.Errorf("List() = %v, want [bottomup memo ...]", list)
		}
	})

	t.Run("Register", func(t *testing.T) {
		if err := factory.Register("test", func() coreSolver { return &mockCoreSolver{} }); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if s, err := factory.Get("test"); err != nil || s.Name() != "mock" {
			t.Errorf("Get(test) = %v, %v", s, err)
		}
		if err := factory.Register("nil", nil); err == nil {
			t.Error("Register should reject a nil creator")
		}
	})

	t.Run("GetAll", func(t *testing.T) {
		solvers := factory.GetAll()
		if _, ok := solvers["test"]; !ok {
			t.Error("GetAll should contain 'test' solver")
		}
		if _, ok := solvers[DefaultAlgorithm]; !ok {
			t.Error("GetAll should contain the default solver")
		}
	})

	t.Run("Create", func(t *testing.T) {
		a, err := factory.Create("test")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		b, _ := factory.Create("test")
		if a == b {
			t.Error("Create should return a new instance each time")
		}
		_, err = factory.Create("nonexistent")
		var unknown *UnknownSolverError
		if !errors.As(err, &unknown) || unknown.Name != "nonexistent" {
			t.Errorf("Create(nonexistent) error = %v, want UnknownSolverError", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		s1, err := factory.Get("memo")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		s2, _ := factory.Get("memo")
		if s1 != s2 {
			t.Error("Get should return cached instance")
		}
		if s1.Name() != "Memoized Recursion" {
			t.Errorf("Name() = %q", s1.Name())
		}
		if _, err := factory.Get("nonexistent"); err == nil {
			t.Error("Get should fail for nonexistent solver")
		}
	})
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	f := GlobalFactory()
	if f == nil {
		t.Fatal("GlobalFactory returned nil")
	}

	if f != GlobalFactory() {
		t.Error("GlobalFactory should return the same instance")
	}
	if _, err := f.Get("memo"); err != nil {
		t.Errorf("global factory is missing memo: %v", err)
	}
}

func TestTestFactory(t *testing.T) {
	t.Parallel()

	mock := &MockSolver{Result: &Result{N: 3, MinimumCost: 4500}}
	f := NewTestFactory(map[string]Solver{"mock": mock})

	s, err := f.Get("mock")
	if err != nil || s != mock {
		t.Fatalf("Get(mock) = %v, %v", s, err)
	}
	if c, _ := f.Create("mock"); c != mock {
		t.Error("Create should return the configured solver")
	}
	if _, err := f.Get("missing"); err == nil {
		t.Error("Get(missing) should fail")
	}
	if len(f.List()) != 1 || len(f.GetAll()) != 1 {
		t.Errorf("List() = %v", f.List())
	}
	if err := f.Register("x", nil); err != nil {
		t.Errorf("Register should be a no-op, got %v", err)
	}

	empty := NewTestFactory(nil)
	if len(empty.List()) != 0 {
		t.Error("nil map should produce an empty factory")
	}
}

func TestMockSolver(t *testing.T) {
	t.Parallel()

	mock := &MockSolver{Result: &Result{MinimumCost: 7}}
	if mock.Name() != "mock" {
		t.Errorf("Name() = %q, want mock", mock.Name())
	}
	ch := make(chan ProgressUpdate, 1)
	res, err := mock.Solve(context.Background(), ch, 2, nil)
	if err != nil || res.MinimumCost != 7 {
		t.Errorf("Solve() = %v, %v", res, err)
	}
	if u := <-ch; u.SolverIndex != 2 || u.Value != 1.0 {
		t.Errorf("unexpected update %+v", u)
	}

	named := &MockSolver{SolverName: "custom", Fn: func(ctx context.Context, dims []float64) (*Result, error) {
		return nil, ErrInvalidDimensions
	}}
	if named.Name() != "custom" {
		t.Errorf("Name() = %q, want custom", named.Name())
	}
	if _, err := named.Solve(context.Background(), nil, 0, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Solve() error = %v", err)
	}
}
