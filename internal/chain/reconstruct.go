// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// This file contains the reconstruction of the optimal order from the split
// table.
package chain

import (
	"fmt"
)

// FinalMatrixName is the symbolic name of the product of the whole chain.
const FinalMatrixName = "Final Matrix"

// Dims is the shape of a matrix or intermediate product.
type Dims struct {
	Rows float64
	Cols float64
}

// String renders the shape as "<rows>x<cols>".
func (d Dims) String() string {
	return FormatNumber(d.Rows) + "x" + FormatNumber(d.Cols)
}

// Step is one multiplication of the optimal order. Steps are numbered from 1
// in the order a person would carry them out by hand.
type Step struct {
	Step        int     `json:"step"`
	Description string  `json:"description"`
	MatrixDims  string  `json:"matrix_dims"`
	Calculation string  `json:"calculation"`
	Cost        float64 `json:"cost"`
	ResultName  string  `json:"result_name"`
	ResultDims  string  `json:"result_dims"`

	// Start, Split and End identify the product A_Start..A_End split after
	// A_Split.
	Start int `json:"-"`
	Split int `json:"-"`
	End   int `json:"-"`
	// LeftName and RightName are the operands' symbolic names.
	LeftName  string `json:"-"`
	RightName string `json:"-"`
	// Left and Right are the operand shapes; Result is the product shape.
	Left   Dims `json:"-"`
	Right  Dims `json:"-"`
	Result Dims `json:"-"`
}

// LeafName returns the label of matrix A_i.
func LeafName(i int) string {
	return fmt.Sprintf("A%d", i)
}

// operand is the outcome of reconstructing one sub-range.
type operand struct {
	name  string
	paren string
	dims  Dims
}

// reconstruct walks the split table depth first and returns the optimal
// parenthesization and the Steps in post-order.
func reconstruct(p []float64, m *CostTable, s *SplitTable) (string, []Step) {
	n := len(p) - 1
	steps := make([]Step, 0, n-1)

	var walk func(i, j int) operand
	walk = func(i, j int) operand {
		if i == j {
			name := LeafName(i)
			return operand{name: name, paren: name, dims: Dims{Rows: p[i-1], Cols: p[i]}}
		}
		k := s.MustGet(i, j)
		left := walk(i, k)
		right := walk(k+1, j)

		idx := len(steps) + 1
		name := fmt.Sprintf("Temporary Matrix T%d", idx)
		if i == 1 && j == n {
			name = FinalMatrixName
		}
		result := Dims{Rows: left.dims.Rows, Cols: right.dims.Cols}
		cost := p[i-1] * p[k] * p[j]

		steps = append(steps, Step{
			Step:        idx,
			Description: fmt.Sprintf("Multiply %s by %s", left.name, right.name),
			MatrixDims: fmt.Sprintf(`(%s \times %s) \times (%s \times %s)`,
				FormatNumber(left.dims.Rows), FormatNumber(left.dims.Cols),
				FormatNumber(right.dims.Rows), FormatNumber(right.dims.Cols)),
			Calculation: fmt.Sprintf("%s + %s + %s*%s*%s",
				FormatNumber(m.MustGet(i, k)), FormatNumber(m.MustGet(k+1, j)),
				FormatNumber(p[i-1]), FormatNumber(p[k]), FormatNumber(p[j])),
			Cost:       cost,
			ResultName: name,
			ResultDims: result.String(),
			Start:      i,
			Split:      k,
			End:        j,
			LeftName:   left.name,
			RightName:  right.name,
			Left:       left.dims,
			Right:      right.dims,
			Result:     result,
		})

		return operand{name: name, paren: "(" + left.paren + right.paren + ")", dims: result}
	}

	root := walk(1, n)
	return root.paren, steps
}
