package chain

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultAlgorithm is the strategy used when none is requested. Its trace is
// the canonical chain-length ordered one.
const DefaultAlgorithm = "bottomup"

// SolverFactory creates and caches Solver instances by name.
// It is not mockable with mockgen because Register uses the unexported
// coreSolver type; use TestFactory instead.
type SolverFactory interface {
	// Create returns a fresh Solver by name.
	Create(name string) (Solver, error)

	// Get returns a cached Solver by name.
	Get(name string) (Solver, error)

	// List returns the sorted registered names.
	List() []string

	// Register adds or replaces a strategy.
	Register(name string, creator func() coreSolver) error

	// GetAll returns every registered solver.
	GetAll() map[string]Solver
}

// UnknownSolverError is returned when a solver name is not registered.
type UnknownSolverError struct {
	Name string
}

func (e *UnknownSolverError) Error() string {
	return fmt.Sprintf("unknown solver: %s", e.Name)
}

// DefaultFactory is the thread-safe SolverFactory implementation.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() coreSolver
	solvers  map[string]Solver
}

// NewDefaultFactory creates a factory with the built-in strategies:
//   - "bottomup": BottomUp, O(n^3), canonical trace order.
//   - "memo": Memoized, O(n^3), same trace as bottomup.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() coreSolver),
		solvers:  make(map[string]Solver),
	}

	_ = f.Register(DefaultAlgorithm, func() coreSolver { return &BottomUp{} })
	_ = f.Register("memo", func() coreSolver { return &Memoized{} })

	return f
}

// Register adds a strategy. Registering an existing name replaces it and
// drops the cached instance.
func (f *DefaultFactory) Register(name string, creator func() coreSolver) error {
	if creator == nil {
		return fmt.Errorf("chain: nil creator for solver %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.solvers, name)
	return nil
}

// Create always builds a new, uncached Solver.
func (f *DefaultFactory) Create(name string) (Solver, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, &UnknownSolverError{Name: name}
	}
	return NewSolver(creator()), nil
}

// Get returns the cached Solver for name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Solver, error) {
	f.mu.RLock()
	if s, exists := f.solvers[name]; exists {
		f.mu.RUnlock()
		return s, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if s, exists := f.solvers[name]; exists {
		return s, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownSolverError{Name: name}
	}

	s := NewSolver(creator())
	f.solvers[name] = s
	return s, nil
}

// List returns the registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of all solvers, creating missing ones.
func (f *DefaultFactory) GetAll() map[string]Solver {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.solvers[name]; !exists {
			f.solvers[name] = NewSolver(creator())
		}
	}

	result := make(map[string]Solver, len(f.solvers))
	for name, s := range f.solvers {
		result[name] = s
	}
	return result
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}
