// Package orchestration runs one or more matrix chain strategies
// concurrently and reconciles their answers.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/cli"
	"github.com/agbru/chainorder/internal/config"
	apperrors "github.com/agbru/chainorder/internal/errors"
	"github.com/agbru/chainorder/internal/ui"
)

// SolveResult encapsulates the outcome of one strategy run. It serves as a
// standardized container so runs of different strategies can be compared.
type SolveResult struct {
	// Name is the display name of the strategy (e.g., "Bottom-Up DP").
	Name string
	// Result is the DP result. It is nil if an error occurred.
	Result *chain.Result
	// Duration is the time taken to complete the solve.
	Duration time.Duration
	// Err contains any error that occurred during the solve.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer keeps solver goroutines from blocking when the UI
// is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteSolves runs every solver on dims concurrently while a progress bar
// is rendered to out. Results keep the order of solvers.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - solvers: The strategies to execute.
//   - dims: The dimension sequence p[0..n].
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []SolveResult: One result per solver.
func ExecuteSolves(ctx context.Context, solvers []chain.Solver, dims []float64, out io.Writer) []SolveResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SolveResult, len(solvers))
	progressChan := make(chan chain.ProgressUpdate, len(solvers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(solvers), out)

	for i, s := range solvers {
		idx, solver := i, s
		g.Go(func() error {
			startTime := time.Now()
			res, err := solver.Solve(ctx, progressChan, idx, dims)
			results[idx] = SolveResult{
				Name: solver.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			// Failures are reported per strategy; they must not cancel the others.
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults prints a summary table of the runs, cross-checks
// the successful ones and, when they agree, displays the optimal order.
//
// Parameters:
//   - results: The runs to analyze. They are sorted in place, successes
//     first then by duration.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []SolveResult, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *SolveResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sStrategy%s\t%sDuration%s\t%sCost%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status, cost string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			cost = "-"
			if firstError == nil {
				firstError = apperrors.NewSolveError(res.Name, res.Err)
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			cost = cli.FormatCost(res.Result.MinimumCost)
			successCount++
			if firstValid == nil {
				firstValid = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			cost, status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the solve.\n")
		return apperrors.HandleSolveError(firstError, 0, out, cli.CLIColorProvider{})
	}

	consistent := true
	answers := make(map[string]string, successCount)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		answers[res.Name] = cli.FormatQuietResult(res.Result)
		if !res.Result.SameOrder(firstValid.Result) {
			consistent = false
		}
	}
	if !consistent {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the strategies.\n")
		return apperrors.HandleSolveError(apperrors.MismatchError{Results: answers}, 0, out, cli.CLIColorProvider{})
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	if err := cli.DisplayResultWithConfig(out, firstValid.Result, firstValid.Duration, OutputConfig(cfg)); err != nil {
		return apperrors.HandleSolveError(err, 0, out, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// OutputConfig derives the CLI output settings from the application
// configuration.
func OutputConfig(cfg config.AppConfig) cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		ShowTrace:  cfg.ShowTrace,
		ShowTables: cfg.ShowTables,
	}
}
