// Package ui provides theme and color support for the application's user interface.
package ui

import "github.com/agbru/chainorder/internal/chain"

// Base colors of the current theme.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Roles of the DP display. Each is empty when colors are disabled.

// CostColor colors scalar multiplication counts: m[i][j] and the optimum.
func CostColor() string { return GetCurrentTheme().Success }

// SplitColor colors split points: s[i][j] and the chosen k.
func SplitColor() string { return GetCurrentTheme().Warning }

// MatrixColor colors matrix names such as A3, T1 or "Final Matrix".
func MatrixColor() string { return GetCurrentTheme().Info }

// StepColor colors the "Step n" label of the execution order.
func StepColor() string { return GetCurrentTheme().Primary }

// EmptyCellColor dims table cells below the diagonal.
func EmptyCellColor() string { return GetCurrentTheme().Secondary }

// TableHeaderColor marks the index row of the m and s tables.
func TableHeaderColor() string {
	t := GetCurrentTheme()
	return t.Bold + t.Primary
}

// TraceColor returns the color of a trace line of the given kind: sections
// stand out, accepted minimums read as costs, candidates recede.
func TraceColor(kind chain.TraceKind) string {
	t := GetCurrentTheme()
	switch kind {
	case chain.TraceSection:
		return t.Bold + t.Info
	case chain.TraceAccept:
		return t.Success
	case chain.TraceCandidate:
		return t.Secondary
	default:
		return t.Primary
	}
}

// Paint wraps s in code and a reset. s is returned as is for an empty code.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + GetCurrentTheme().Reset
}
