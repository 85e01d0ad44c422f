// Package testutil provides shared testing utilities used across the project.
package testutil

import "github.com/agbru/chainorder/internal/ui"

// StripAnsiCodes removes ANSI escape codes from a string so CLI output can
// be compared without the active color theme interfering.
func StripAnsiCodes(s string) string {
	return ui.StripANSI(s)
}
