// Package cli builds the command-line interface of the matrix chain solver.
// It handles the asynchronous display of solve progress and renders results,
// DP tables and traces for the terminal.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
	// MaxTableMatrices is the largest chain whose tables are printed in the
	// terminal. Larger tables do not fit a screen.
	MaxTableMatrices = 20
)

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.ColorReset() }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.ColorRed() }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.ColorGreen() }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.ColorYellow() }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.ColorMagenta() }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.ColorCyan() }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.ColorBold() }

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState holds the latest progress of each concurrently running
// solver and averages them into a single figure.
type ProgressState struct {
	progresses []float64
	numSolvers int
}

// NewProgressState creates a progress state for numSolvers solvers.
func NewProgressState(numSolvers int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numSolvers),
		numSolvers: numSolvers,
	}
}

// Update records a progress value for the solver at index. Out of range
// indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress over all solvers.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numSolvers == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numSolvers)
}

// progressBar renders progress, clamped to [0, 1], as a bar of length cells.
func progressBar(progress float64, length int) string {
	progress = math.Max(0, math.Min(1, progress))
	count := int(progress * float64(length))
	return strings.Repeat("█", count) + strings.Repeat("░", length-count)
}

// progressLabel names the bar depending on how many solvers contribute.
func progressLabel(numSolvers int) string {
	if numSolvers > 1 {
		return "Avg progress"
	}
	return "Progress"
}

// DisplayProgress runs a spinner with a progress bar and ETA until
// progressChan is closed, then prints a final 100% line. It is meant to run
// in its own goroutine.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numSolvers: The number of solvers contributing to the progress.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan chain.ProgressUpdate, numSolvers int, out io.Writer) {
	defer wg.Done()
	if numSolvers <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressWithETA(numSolvers)
	label := progressLabel(numSolvers)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.SolverIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// DisplayOptions selects the optional sections of DisplayResult.
type DisplayOptions struct {
	// ShowTables prints the cost and split tables.
	ShowTables bool
	// ShowTrace prints every trace line.
	ShowTrace bool
}

// DisplayResult prints the optimal cost, the parenthesization and the
// execution order, followed by the tables and the trace when requested.
//
// Parameters:
//   - result: The solve result.
//   - duration: The time taken by the solve.
//   - opts: The optional sections to print.
//   - out: The io.Writer for the output.
func DisplayResult(result *chain.Result, duration time.Duration, opts DisplayOptions, out io.Writer) {
	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}

	fmt.Fprintf(out, "\n%s--- Optimal Order ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "Matrices                 : %s%d%s\n", ColorCyan(), result.N, ColorReset())
	fmt.Fprintf(out, "Minimum cost             : %s scalar multiplications\n", ui.Paint(ui.CostColor(), FormatCost(result.MinimumCost)))
	fmt.Fprintf(out, "Optimal parenthesization : %s\n", ui.Highlight(result.Parenthesization))
	fmt.Fprintf(out, "Solve time               : %s%s%s\n", ColorYellow(), durationStr, ColorReset())

	DisplaySteps(result, out)

	if opts.ShowTables {
		DisplayTables(result, out)
	}
	if opts.ShowTrace {
		DisplayTrace(result, out)
	}
}

// DisplaySteps prints the execution order, one multiplication per line.
func DisplaySteps(result *chain.Result, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Execution Order ---%s\n", ColorBold(), ColorReset())
	if len(result.Steps) == 0 {
		fmt.Fprintln(out, "A single matrix needs no multiplication.")
		return
	}
	for _, st := range result.Steps {
		fmt.Fprintf(out, "%s: %s (%s) x %s (%s) -> %s (%s)  cost %s*%s*%s = %s\n",
			ui.Paint(ui.StepColor(), fmt.Sprintf("Step %d", st.Step)),
			st.LeftName, st.Left, st.RightName, st.Right,
			ui.Paint(ui.MatrixColor(), st.ResultName), st.ResultDims,
			chain.FormatNumber(st.Left.Rows), chain.FormatNumber(st.Left.Cols), chain.FormatNumber(st.Right.Cols),
			ui.Paint(ui.CostColor(), FormatCost(st.Cost)))
	}
}

// DisplayTables prints the m (cost) and s (split) tables. Cells outside the
// upper triangle are shown as "-".
func DisplayTables(result *chain.Result, out io.Writer) {
	if result.N > MaxTableMatrices {
		fmt.Fprintf(out, "\n%sTables omitted: %d matrices exceed the display limit of %d.%s\n",
			ColorYellow(), result.N, MaxTableMatrices, ColorReset())
		return
	}
	fmt.Fprintf(out, "\n%s--- Cost Table m[i][j] ---%s\n", ColorBold(), ColorReset())
	writeTable(out, result.N, func(i, j int) string {
		if v, ok := result.Costs.Get(i, j); ok {
			return FormatCost(v)
		}
		return "-"
	})
	fmt.Fprintf(out, "\n%s--- Split Table s[i][j] ---%s\n", ColorBold(), ColorReset())
	writeTable(out, result.N, func(i, j int) string {
		if k, ok := result.Splits.Get(i, j); ok {
			return fmt.Sprintf("%d", k)
		}
		return "-"
	})
}

// writeTable lays out an n x n table indexed from 1 with right-aligned cells.
// Colors are applied after alignment, so escape codes do not count as width:
// the index row takes the header color and "-" cells are dimmed.
func writeTable(out io.Writer, n int, cell func(i, j int) string) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "i\\j\t")
	for j := 1; j <= n; j++ {
		fmt.Fprintf(tw, "%d\t", j)
	}
	fmt.Fprintln(tw)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(tw, "%d\t", i)
		for j := 1; j <= n; j++ {
			fmt.Fprintf(tw, "%s\t", cell(i, j))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
		return
	}

	empty := ui.Paint(ui.EmptyCellColor(), "-")
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for idx, line := range lines {
		if idx == 0 {
			line = ui.Paint(ui.TableHeaderColor(), line)
		} else {
			line = strings.ReplaceAll(line, "-", empty)
		}
		fmt.Fprintln(out, line)
	}
}

// DisplayTrace prints every trace line, colored by line shape.
func DisplayTrace(result *chain.Result, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- DP Trace ---%s\n", ColorBold(), ColorReset())
	for _, line := range result.Lines() {
		fmt.Fprintln(out, ui.StyleTraceLine(line))
	}
}

// FormatCost renders a cost with thousand separators when it is integral,
// and in its shortest exact form otherwise.
func FormatCost(v float64) string {
	s := chain.FormatNumber(v)
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return formatNumberString(s)
	}
	return s
}

// formatNumberString inserts thousand separators into a string of digits,
// with an optional leading minus sign.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
