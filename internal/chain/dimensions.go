// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// This file contains input validation and parsing of dimension sequences.
package chain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinDimensions is the smallest accepted dimension sequence length: two
// values describe a single matrix.
const MinDimensions = 2

// ErrInvalidDimensions is the only error kind raised by the solver. Every
// validation failure wraps it, so callers can test with errors.Is.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Validation rules reported by DimensionError.
const (
	ReasonTooFew      = "at least 2 dimensions are required"
	ReasonNotANumber  = "all dimensions must be valid numbers"
	ReasonNotPositive = "all dimensions must be positive"
	ReasonOverflow    = "scalar multiplication cost overflows"
)

// DimensionError describes which validation rule a dimension sequence
// violated. Index is -1 when the rule concerns the sequence as a whole.
type DimensionError struct {
	// Reason is one of the Reason* constants.
	Reason string
	// Index is the offending position in the sequence, or -1.
	Index int
	// Value is the raw offending value, when there is one.
	Value string
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidDimensions, e.Reason)
	}
	return fmt.Sprintf("%s: %s (index %d: %q)", ErrInvalidDimensions, e.Reason, e.Index, e.Value)
}

// Unwrap returns ErrInvalidDimensions.
func (e *DimensionError) Unwrap() error { return ErrInvalidDimensions }

// ValidateDimensions checks that dims describes at least one matrix and that
// every value is finite and strictly positive.
func ValidateDimensions(dims []float64) error {
	if len(dims) < MinDimensions {
		return &DimensionError{Reason: ReasonTooFew, Index: -1}
	}
	for i, d := range dims {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return &DimensionError{Reason: ReasonNotANumber, Index: i, Value: FormatNumber(d)}
		}
		if d <= 0 {
			return &DimensionError{Reason: ReasonNotPositive, Index: i, Value: FormatNumber(d)}
		}
	}
	return nil
}

// ParseDimensions converts textual tokens into a dimension sequence. Tokens
// are trimmed and empty tokens are skipped, mirroring a comma separated
// input field. Any token that is not a finite number fails the whole call.
// Positivity is left to ValidateDimensions.
func ParseDimensions(tokens []string) ([]float64, error) {
	dims := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &DimensionError{Reason: ReasonNotANumber, Index: len(dims), Value: tok}
		}
		dims = append(dims, v)
	}
	return dims, nil
}

// SplitDimensions splits a user supplied string such as "10, 30, 5, 60" or
// "10 30 5 60" and parses it with ParseDimensions.
func SplitDimensions(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
	return ParseDimensions(fields)
}

// FormatNumber renders a dimension or cost without a trailing ".0" for
// integral values and with the shortest exact representation otherwise.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
