// Package service exposes the matrix chain solver behind a small interface
// shared by the HTTP server and the REPL.
package service

//go:generate mockgen -source=solver_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/agbru/chainorder/internal/chain"
)

// ErrTooManyMatrices is returned when a chain exceeds the configured limit.
// It wraps chain.ErrInvalidDimensions so callers treat it as rejected input.
var ErrTooManyMatrices = fmt.Errorf("%w: too many matrices", chain.ErrInvalidDimensions)

// Service defines the interface for matrix chain solving.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Solve runs the named strategy on dims.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - algoName: The strategy name; empty selects the default.
	//   - dims: The dimension sequence p[0..n].
	//
	// Returns:
	//   - *chain.Result: The complete DP result.
	//   - error: An error if validation or solving fails.
	Solve(ctx context.Context, algoName string, dims []float64) (*chain.Result, error)

	// Algorithms lists the available strategy names.
	Algorithms() []string
}

// SolverService resolves strategies through a factory, enforces the chain
// length limit and attaches progress observers.
type SolverService struct {
	factory     chain.SolverFactory
	maxMatrices int
	observers   []chain.ProgressObserver
}

// Ensure SolverService implements Service interface.
var _ Service = (*SolverService)(nil)

// NewSolverService creates a new SolverService.
//
// Parameters:
//   - factory: The factory to retrieve solvers from.
//   - maxMatrices: The largest accepted number of matrices (0 for no limit).
//   - observers: Progress observers notified on every solve.
func NewSolverService(factory chain.SolverFactory, maxMatrices int, observers ...chain.ProgressObserver) *SolverService {
	return &SolverService{
		factory:     factory,
		maxMatrices: maxMatrices,
		observers:   observers,
	}
}

// Solve validates the chain length, retrieves the strategy and runs it.
func (s *SolverService) Solve(ctx context.Context, algoName string, dims []float64) (*chain.Result, error) {
	if n := len(dims) - 1; s.maxMatrices > 0 && n > s.maxMatrices {
		return nil, fmt.Errorf("%w (%d matrices, limit is %d)", ErrTooManyMatrices, n, s.maxMatrices)
	}

	if algoName == "" {
		algoName = chain.DefaultAlgorithm
	}
	solver, err := s.factory.Get(algoName)
	if err != nil {
		return nil, err
	}

	if cs, ok := solver.(*chain.ChainSolver); ok && len(s.observers) > 0 {
		subject := chain.NewProgressSubject()
		for _, o := range s.observers {
			subject.Register(o)
		}
		return cs.SolveWithObservers(ctx, subject, 0, dims)
	}
	return solver.Solve(ctx, nil, 0, dims)
}

// Algorithms returns the factory's strategy names.
func (s *SolverService) Algorithms() []string {
	return s.factory.List()
}
