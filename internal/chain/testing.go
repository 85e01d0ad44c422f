package chain

import (
	"context"
)

// MockSolver is a configurable Solver for tests in other packages.
type MockSolver struct {
	// SolverName is returned by Name; it defaults to "mock".
	SolverName string
	Result     *Result
	Err        error
	Fn         func(ctx context.Context, dims []float64) (*Result, error)
}

// Name returns the solver name.
func (m *MockSolver) Name() string {
	if m.SolverName == "" {
		return "mock"
	}
	return m.SolverName
}

// Solve returns the pre-configured Result and Err, or calls Fn if provided.
func (m *MockSolver) Solve(ctx context.Context, progressChan chan<- ProgressUpdate, solverIndex int, dims []float64) (*Result, error) {
	if m.Fn != nil {
		return m.Fn(ctx, dims)
	}
	if progressChan != nil {
		progressChan <- ProgressUpdate{SolverIndex: solverIndex, Value: 1.0}
	}
	return m.Result, m.Err
}

// TestFactory is a SolverFactory backed by a fixed set of solvers.
type TestFactory struct {
	solvers map[string]Solver
}

// NewTestFactory creates a factory pre-populated with solvers.
func NewTestFactory(solvers map[string]Solver) *TestFactory {
	if solvers == nil {
		solvers = make(map[string]Solver)
	}
	return &TestFactory{solvers: solvers}
}

// Create returns the solver by name.
func (f *TestFactory) Create(name string) (Solver, error) {
	return f.Get(name)
}

// Get returns the solver by name.
func (f *TestFactory) Get(name string) (Solver, error) {
	s, ok := f.solvers[name]
	if !ok {
		return nil, &UnknownSolverError{Name: name}
	}
	return s, nil
}

// List returns all registered solver names.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.solvers))
	for name := range f.solvers {
		names = append(names, name)
	}
	return names
}

// Register is a no-op: solvers are set at construction time.
func (f *TestFactory) Register(name string, creator func() coreSolver) error {
	return nil
}

// GetAll returns all solvers.
func (f *TestFactory) GetAll() map[string]Solver {
	result := make(map[string]Solver, len(f.solvers))
	for k, v := range f.solvers {
		result[k] = v
	}
	return result
}
