// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// It exposes a `Solver` interface that abstracts the strategy used to fill
// the cost and split tables, so that the bottom-up DP and the memoized
// recursion can be used interchangeably and cross-checked. Whatever the
// strategy, validation, reconstruction of the optimal order and the trace
// narration are shared.
package chain

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	solvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainorder_solves_total",
			Help: "The total number of matrix chain solves processed",
		},
		[]string{"algorithm", "status"},
	)
	solveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chainorder_solve_duration_seconds",
			Help: "The duration of matrix chain solves in seconds",
		},
		[]string{"algorithm"},
	)
	chainLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainorder_chain_matrices",
			Help:    "Number of matrices per solved chain",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

// Solver defines the public interface for a matrix chain solver. It is the
// abstraction used by the service, the CLI and the orchestration layer.
type Solver interface {
	// Solve computes the optimal multiplication order for dims. It is safe
	// for concurrent use and honors ctx cancellation between DP rounds.
	// Progress updates are sent asynchronously to progressChan.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for sending progress updates (may be nil).
	//   - solverIndex: A unique index for the solver instance.
	//   - dims: The dimension sequence p[0..n].
	//
	// Returns:
	//   - *Result: The complete DP result.
	//   - error: ErrInvalidDimensions for bad input, or a context error.
	Solve(ctx context.Context, progressChan chan<- ProgressUpdate, solverIndex int, dims []float64) (*Result, error)

	// Name returns the display name of the strategy (e.g., "Bottom-Up DP").
	Name() string
}

// coreSolver defines the internal interface for a table-filling strategy.
type coreSolver interface {
	Fill(ctx context.Context, reporter ProgressReporter, p []float64, rec *recorder) (*CostTable, *SplitTable, error)
	Name() string
}

// ChainSolver implements Solver by decorating a coreSolver with validation,
// reconstruction, tracing, metrics and progress reporting.
type ChainSolver struct {
	core coreSolver
}

// NewSolver wraps a core strategy. It panics if core is nil.
func NewSolver(core coreSolver) Solver {
	if core == nil {
		panic("chain: the `coreSolver` implementation cannot be nil")
	}
	return &ChainSolver{core: core}
}

// Name returns the name of the wrapped strategy.
func (c *ChainSolver) Name() string {
	return c.core.Name()
}

// Solve adapts progressChan into an observer and delegates to
// SolveWithObservers. A nil progressChan discards progress.
func (c *ChainSolver) Solve(ctx context.Context, progressChan chan<- ProgressUpdate, solverIndex int, dims []float64) (*Result, error) {
	var subject *ProgressSubject
	if progressChan != nil {
		subject = NewProgressSubject()
		subject.Register(NewChannelObserver(progressChan))
	}
	return c.SolveWithObservers(ctx, subject, solverIndex, dims)
}

// SolveWithObservers executes the solve with observer-based progress
// reporting. A nil subject reports to a NoOpObserver.
func (c *ChainSolver) SolveWithObservers(ctx context.Context, subject *ProgressSubject, solverIndex int, dims []float64) (result *Result, err error) {
	tracer := otel.Tracer("chainorder")
	ctx, span := tracer.Start(ctx, "Solve")
	defer span.End()
	span.SetAttributes(
		attribute.String("algorithm", c.core.Name()),
		attribute.Int("dimensions", len(dims)),
	)

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		algoName := c.core.Name()
		solvesTotal.WithLabelValues(algoName, status).Inc()
		solveDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Int("matrices", len(dims)-1).
			Float64("duration", duration).
			Str("status", status).
			Msg("solve completed")
	}()

	if subject == nil {
		subject = NewProgressSubject()
		subject.Register(NewNoOpObserver())
	}

	result, err = run(ctx, c.core, subject.AsProgressReporter(solverIndex), dims)
	if err == nil {
		chainLength.Observe(float64(result.N))
	}
	return result, err
}

// Solve is the pure, context-free entry point: it validates dims, fills the
// tables bottom-up and returns the complete result. It fails atomically with
// an error wrapping ErrInvalidDimensions.
func Solve(dims []float64) (*Result, error) {
	return run(context.Background(), &BottomUp{}, func(float64) {}, dims)
}

// run is shared by every entry point: validation, narration, table filling
// and reconstruction.
func run(ctx context.Context, core coreSolver, reporter ProgressReporter, dims []float64) (*Result, error) {
	if err := ValidateDimensions(dims); err != nil {
		return nil, err
	}
	p := append([]float64(nil), dims...)
	n := len(p) - 1

	rec := &recorder{}
	rec.narrate("Input dimensions: %s", FormatSequence(p))
	rec.narrate("Number of matrices n = %d", n)
	rec.narrate("Initialized m[][] and s[][] tables.")

	m, s, err := core.Fill(ctx, reporter, p, rec)
	if err != nil {
		return nil, err
	}

	paren, steps := reconstruct(p, m, s)
	rec.narrate("Optimal Parenthesization: %s", paren)
	reporter(1.0)

	return &Result{
		Algorithm:        core.Name(),
		Dimensions:       p,
		N:                n,
		MinimumCost:      m.MustGet(1, n),
		Parenthesization: paren,
		Steps:            steps,
		Costs:            m,
		Splits:           s,
		Trace:            rec.entries,
	}, nil
}

// FormatSequence renders a dimension sequence as "[10, 30, 5, 60]".
func FormatSequence(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = FormatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
