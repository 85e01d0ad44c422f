// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// This file contains progress reporting types used by the solvers.
package chain

// ProgressUpdate is a data transfer object carrying the progress of one
// solver. It is sent over a channel from the solver to the user interface.
type ProgressUpdate struct {
	// SolverIndex identifies the solver instance, allowing the UI to tell
	// concurrent solves apart.
	SolverIndex int
	// Value is the fraction of split evaluations completed, 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback through which table-filling strategies
// report progress without knowing how it is delivered.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
type ProgressReporter func(progress float64)
