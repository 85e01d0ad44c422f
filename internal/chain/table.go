// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// This file contains the DP table type shared by the cost and split tables.
package chain

import (
	"encoding/json"
)

// Cell is a table entry that is either computed or absent. Absent cells are
// never given a numeric stand-in.
type Cell[T int | float64] struct {
	Value T
	OK    bool
}

// Table is a 1-based square table sized (n+1)x(n+1). Row and column 0 are
// never defined, which keeps indices identical to the textbook notation
// m[i][j] and s[i][j].
type Table[T int | float64] struct {
	n     int
	cells [][]Cell[T]
}

// CostTable holds m[i][j], the minimum scalar multiplications for A_i..A_j.
type CostTable = Table[float64]

// SplitTable holds s[i][j], the split index realizing m[i][j].
type SplitTable = Table[int]

// NewTable allocates an empty table for n matrices.
func NewTable[T int | float64](n int) *Table[T] {
	cells := make([][]Cell[T], n+1)
	for i := range cells {
		cells[i] = make([]Cell[T], n+1)
	}
	return &Table[T]{n: n, cells: cells}
}

// N returns the number of matrices the table covers.
func (t *Table[T]) N() int { return t.n }

// Get returns the value at (i, j) and whether it is defined. Out of range
// indices report an absent cell.
func (t *Table[T]) Get(i, j int) (T, bool) {
	if !t.inRange(i, j) {
		var zero T
		return zero, false
	}
	c := t.cells[i][j]
	return c.Value, c.OK
}

// MustGet returns the value at (i, j) and panics if it is absent. It is used
// internally where the DP ordering guarantees the cell was filled.
func (t *Table[T]) MustGet(i, j int) T {
	v, ok := t.Get(i, j)
	if !ok {
		panic("chain: read of undefined table cell")
	}
	return v
}

// Set defines the value at (i, j). Indices outside 1..n are ignored.
func (t *Table[T]) Set(i, j int, v T) {
	if !t.inRange(i, j) {
		return
	}
	t.cells[i][j] = Cell[T]{Value: v, OK: true}
}

// Defined reports whether (i, j) holds a value.
func (t *Table[T]) Defined(i, j int) bool {
	_, ok := t.Get(i, j)
	return ok
}

// Rows returns a copy of the table as nullable rows, (n+1)x(n+1), with nil
// for every absent cell. Row and column 0 are always nil.
func (t *Table[T]) Rows() [][]*T {
	rows := make([][]*T, t.n+1)
	for i := range rows {
		rows[i] = make([]*T, t.n+1)
		for j := range rows[i] {
			if c := t.cells[i][j]; c.OK {
				v := c.Value
				rows[i][j] = &v
			}
		}
	}
	return rows
}

// Equal reports whether two tables have the same shape and the same defined
// cells with equal values.
func (t *Table[T]) Equal(o *Table[T]) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.n != o.n {
		return false
	}
	for i := range t.cells {
		for j := range t.cells[i] {
			if t.cells[i][j] != o.cells[i][j] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the table as (n+1)x(n+1) nested arrays with null for
// absent cells.
func (t *Table[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Rows())
}

func (t *Table[T]) inRange(i, j int) bool {
	return i >= 1 && j >= 1 && i <= t.n && j <= t.n
}
