// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// This file contains the solve result and its wire representation.
package chain

import (
	"encoding/json"
)

// Result is the complete outcome of one solve. It is created fresh per call
// and owned by the caller.
type Result struct {
	// Algorithm is the display name of the strategy that filled the tables.
	Algorithm string
	// Dimensions is a copy of the input sequence p[0..n].
	Dimensions []float64
	// N is the number of matrices.
	N int
	// MinimumCost is m[1][n].
	MinimumCost float64
	// Parenthesization is the fully bracketed optimal order, e.g. "(A1(A2A3))".
	Parenthesization string
	// Steps lists the multiplications in execution order.
	Steps []Step
	// Costs is the m table.
	Costs *CostTable
	// Splits is the s table.
	Splits *SplitTable
	// Trace is every recorded DP event in emission order.
	Trace Trace
}

// Lines returns the flattened trace.
func (r *Result) Lines() []string {
	return r.Trace.Lines()
}

// Matrix returns the shape of A_i, 1 <= i <= N.
func (r *Result) Matrix(i int) Dims {
	return Dims{Rows: r.Dimensions[i-1], Cols: r.Dimensions[i]}
}

// SameOrder reports whether two results agree on cost and parenthesization.
// It is used to cross-check strategies.
func (r *Result) SameOrder(o *Result) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.N == o.N && r.MinimumCost == o.MinimumCost && r.Parenthesization == o.Parenthesization
}

// Response is the JSON document returned to presentation clients.
type Response struct {
	N                       int         `json:"n"`
	MinimumCost             float64     `json:"minimum_cost"`
	OptimalParenthesization string      `json:"optimal_parenthesization"`
	ExecutionOrder          []Step      `json:"execution_order"`
	Steps                   []string    `json:"steps"`
	DPTable                 *CostTable  `json:"dp_table"`
	SplitTable              *SplitTable `json:"split_table"`
}

// Response converts the result into its wire representation.
func (r *Result) Response() Response {
	order := r.Steps
	if order == nil {
		order = []Step{}
	}
	return Response{
		N:                       r.N,
		MinimumCost:             r.MinimumCost,
		OptimalParenthesization: r.Parenthesization,
		ExecutionOrder:          order,
		Steps:                   r.Lines(),
		DPTable:                 r.Costs,
		SplitTable:              r.Splits,
	}
}

// MarshalJSON encodes the result as its Response.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Response())
}
