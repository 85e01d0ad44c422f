package ui

import (
	"regexp"

	"github.com/agbru/chainorder/internal/chain"
)

// ansiRegex matches CSI escape sequences such as color codes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes terminal escape codes, e.g. before writing a report file.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// StyleTraceLine colors a rendered trace line according to its shape.
func StyleTraceLine(line string) string {
	return Paint(TraceColor(chain.ClassifyLine(line)), line)
}

// Highlight wraps s in the warning color, used for the chosen split and the
// optimal cost.
func Highlight(s string) string {
	if SplitColor() == "" {
		return s
	}
	return Paint(ColorBold()+SplitColor(), s)
}
