package cli

import (
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/config"
)

// GetSolversToRun determines which solvers should be executed based on the
// configuration. Solvers are returned in name order so comparisons are
// reproducible.
//
// Parameters:
//   - cfg: The application configuration containing the strategy selection.
//   - factory: The solver factory to retrieve implementations from.
//
// Returns:
//   - []chain.Solver: The solvers to execute, nil if the name is unknown.
func GetSolversToRun(cfg config.AppConfig, factory chain.SolverFactory) []chain.Solver {
	if cfg.Algo == "all" {
		keys := factory.List()
		sort.Strings(keys)
		solvers := make([]chain.Solver, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				solvers = append(solvers, s)
			}
		}
		return solvers
	}
	if s, err := factory.Get(cfg.Algo); err == nil {
		return []chain.Solver{s}
	}
	return nil
}

// PrintExecutionConfig displays the chain being solved and the environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Solving a chain of %s%d%s matrices p = %s with a timeout of %s%s%s.\n",
		ColorMagenta(), len(cfg.Dims)-1, ColorReset(),
		chain.FormatSequence(cfg.Dims),
		ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs comparison).
//
// Parameters:
//   - solvers: The solvers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(solvers []chain.Solver, out io.Writer) {
	var modeDesc string
	if len(solvers) > 1 {
		modeDesc = "Parallel comparison of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single solve with the %s%s%s strategy",
			ColorGreen(), solvers[0].Name(), ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// writeOut writes a formatted string to the output writer.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
