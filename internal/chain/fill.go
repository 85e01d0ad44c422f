// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// This file contains the table-filling strategies.
package chain

import (
	"context"
	"math"
)

// BottomUp fills the tables by increasing chain length, then increasing
// start index, then increasing split. Its trace is the canonical one used for
// step-by-step display.
type BottomUp struct{}

// Name returns the strategy name.
func (b *BottomUp) Name() string { return "Bottom-Up DP" }

// Fill computes m and s for the dimension sequence p.
func (b *BottomUp) Fill(ctx context.Context, reporter ProgressReporter, p []float64, rec *recorder) (*CostTable, *SplitTable, error) {
	n := len(p) - 1
	m, s := newTables(n)
	total := TotalCandidates(n)
	done := 0

	for l := 2; l <= n; l++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		rec.section(l)
		for i := 1; i <= n-l+1; i++ {
			j := i + l - 1
			if err := resolveRange(p, m, s, i, j, rec); err != nil {
				return nil, nil, err
			}
			done += l - 1
		}
		reporter(progressFraction(done, total))
	}
	return m, s, nil
}

// Memoized resolves m[1][n] top-down, solving each sub-chain on first use.
// It applies the same strict tie-break as BottomUp and therefore produces
// identical tables. Its trace is reordered into the bottom-up order once the
// recursion completes.
type Memoized struct{}

// Name returns the strategy name.
func (mz *Memoized) Name() string { return "Memoized Recursion" }

// Fill computes m and s for the dimension sequence p.
func (mz *Memoized) Fill(ctx context.Context, reporter ProgressReporter, p []float64, rec *recorder) (*CostTable, *SplitTable, error) {
	n := len(p) - 1
	m, s := newTables(n)
	total := TotalCandidates(n)
	done := 0

	from := rec.mark()

	var resolve func(i, j int) error
	resolve = func(i, j int) error {
		if m.Defined(i, j) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for k := i; k < j; k++ {
			if err := resolve(i, k); err != nil {
				return err
			}
			if err := resolve(k+1, j); err != nil {
				return err
			}
		}
		if err := resolveRange(p, m, s, i, j, rec); err != nil {
			return err
		}
		done += j - i
		reporter(progressFraction(done, total))
		return nil
	}

	if err := resolve(1, n); err != nil {
		return nil, nil, err
	}
	rec.canonicalize(from, n)
	return m, s, nil
}

// newTables allocates m and s and sets the diagonal m[i][i] = 0.
func newTables(n int) (*CostTable, *SplitTable) {
	m := NewTable[float64](n)
	s := NewTable[int](n)
	for i := 1; i <= n; i++ {
		m.Set(i, i, 0)
	}
	return m, s
}

// resolveRange evaluates every split of A_i..A_j and stores the minimum.
// A candidate replaces the running best only when strictly cheaper, so on a
// tie the smallest k wins. A candidate beyond the float64 range fails the
// whole solve.
func resolveRange(p []float64, m *CostTable, s *SplitTable, i, j int, rec *recorder) error {
	candidates := make([]Candidate, 0, j-i)
	var best float64
	bestK := 0
	for k := i; k < j; k++ {
		c := evaluate(p, m, i, k, j)
		if math.IsInf(c.Cost, 0) || math.IsNaN(c.Cost) {
			return &DimensionError{Reason: ReasonOverflow, Index: -1}
		}
		improved := bestK == 0 || c.Cost < best
		if improved {
			best, bestK = c.Cost, k
		}
		candidates = append(candidates, c)
		rec.candidate(c, best, improved, bestK)
	}
	m.Set(i, j, best)
	s.Set(i, j, bestK)
	rec.accept(i, j, best, bestK, candidates)
	return nil
}

// evaluate computes the cost of splitting A_i..A_j after A_k.
func evaluate(p []float64, m *CostTable, i, k, j int) Candidate {
	left := m.MustGet(i, k)
	right := m.MustGet(k+1, j)
	a, b, c := p[i-1], p[k], p[j]
	product := a * b * c
	return Candidate{
		I:       i,
		K:       k,
		J:       j,
		Left:    left,
		Right:   right,
		Factors: [3]float64{a, b, c},
		Product: product,
		Cost:    left + right + product,
	}
}

// TotalCandidates returns the number of split evaluations the DP performs
// for n matrices: the sum over l of (n-l+1)(l-1), i.e. (n^3 - n) / 6.
func TotalCandidates(n int) int {
	if n < 2 {
		return 0
	}
	return (n*n*n - n) / 6
}

func progressFraction(done, total int) float64 {
	if total <= 0 {
		return 1.0
	}
	return float64(done) / float64(total)
}
