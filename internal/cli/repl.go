// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive matrix chain solving.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agbru/chainorder/internal/chain"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the default strategy to use.
	DefaultAlgo string
	// Timeout is the maximum duration for each solve.
	Timeout time.Duration
	// MaxMatrices is the largest accepted chain (0 for no limit).
	MaxMatrices int
	// ShowTrace prints the DP trace after each solve.
	ShowTrace bool
	// ShowTables prints the cost and split tables after each solve.
	ShowTables bool
}

// REPL represents an interactive matrix chain session.
type REPL struct {
	config      REPLConfig
	registry    map[string]chain.Solver
	names       []string
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: Map of available solvers.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry map[string]chain.Solver, config REPLConfig) *REPL {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	currentAlgo := config.DefaultAlgo
	if _, ok := registry[currentAlgo]; !ok {
		currentAlgo = chain.DefaultAlgorithm
		if _, ok := registry[currentAlgo]; !ok && len(names) > 0 {
			currentAlgo = names[0]
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &REPL{
		config:      config,
		registry:    registry,
		names:       names,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It reads commands until the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ColorGreen()+"chain> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}
		eof := errors.Is(err, io.EOF)

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sMatrix Chain Order - Interactive Mode%s                %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %ssolve <p0 p1 ... pn>%s - Solve a chain with the current strategy\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s          - Change strategy (%s)\n", ColorYellow(), ColorReset(), r.getAlgoList())
	fmt.Fprintf(r.out, "  %scompare <p0 ... pn>%s  - Solve with every strategy and cross-check\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %strace%s                - Toggle the DP trace\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %stables%s               - Toggle the cost and split tables\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slist%s                 - List available strategies\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s               - Display current configuration\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                 - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s          - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "A bare dimension list such as %s10 30 5 60%s solves it directly.\n", ColorYellow(), ColorReset())
}

// getAlgoList returns a comma-separated list of available strategies.
func (r *REPL) getAlgoList() string {
	return strings.Join(r.names, ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "solve", "s":
		r.cmdSolve(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "trace":
		r.config.ShowTrace = !r.config.ShowTrace
		fmt.Fprintf(r.out, "Trace display: %s%s%s\n", ColorGreen(), onOff(r.config.ShowTrace), ColorReset())
	case "tables":
		r.config.ShowTables = !r.config.ShowTables
		fmt.Fprintf(r.out, "Table display: %s%s%s\n", ColorGreen(), onOff(r.config.ShowTables), ColorReset())
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		// A line of numbers is a quick solve.
		if dims, err := chain.SplitDimensions(input); err == nil {
			r.solve(dims)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
		}
	}

	return true
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// parseArgs reads and validates a dimension list from command arguments.
func (r *REPL) parseArgs(usage string, args []string) ([]float64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ColorRed(), usage, ColorReset())
		return nil, false
	}
	dims, err := chain.SplitDimensions(strings.Join(args, " "))
	if err == nil {
		err = chain.ValidateDimensions(dims)
	}
	if err == nil && r.config.MaxMatrices > 0 && len(dims)-1 > r.config.MaxMatrices {
		err = fmt.Errorf("%d matrices exceed the limit of %d", len(dims)-1, r.config.MaxMatrices)
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid input: %v%s\n", ColorRed(), err, ColorReset())
		return nil, false
	}
	return dims, true
}

// cmdSolve handles the "solve" command.
func (r *REPL) cmdSolve(args []string) {
	if dims, ok := r.parseArgs("solve <p0 p1 ... pn>", args); ok {
		r.solve(dims)
	}
}

// solve runs the current strategy on dims and prints the result.
func (r *REPL) solve(dims []float64) {
	if err := chain.ValidateDimensions(dims); err != nil {
		fmt.Fprintf(r.out, "%sInvalid input: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	if r.config.MaxMatrices > 0 && len(dims)-1 > r.config.MaxMatrices {
		fmt.Fprintf(r.out, "%sInvalid input: %d matrices exceed the limit of %d%s\n",
			ColorRed(), len(dims)-1, r.config.MaxMatrices, ColorReset())
		return
	}
	solver, ok := r.registry[r.currentAlgo]
	if !ok {
		fmt.Fprintf(r.out, "%sStrategy not found: %s%s\n", ColorRed(), r.currentAlgo, ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Solving %s%d%s matrices with %s%s%s...\n",
		ColorMagenta(), len(dims)-1, ColorReset(),
		ColorCyan(), solver.Name(), ColorReset())

	progressChan := make(chan chain.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	result, err := solver.Solve(ctx, progressChan, 0, dims)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	DisplayResult(result, duration, DisplayOptions{
		ShowTables: r.config.ShowTables,
		ShowTrace:  r.config.ShowTrace,
	}, r.out)
	fmt.Fprintln(r.out)
}

// cmdAlgo handles the "algo" command.
func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ColorRed(), ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.getAlgoList())
		return
	}

	name := strings.ToLower(args[0])
	if _, ok := r.registry[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ColorRed(), name, ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.getAlgoList())
		return
	}

	r.currentAlgo = name
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ColorGreen(), r.registry[name].Name(), ColorReset())
}

// cmdCompare handles the "compare" command. Every strategy runs in turn and
// its answer is checked against the first successful one.
func (r *REPL) cmdCompare(args []string) {
	dims, ok := r.parseArgs("compare <p0 p1 ... pn>", args)
	if !ok {
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for p = %s:%s\n", ColorBold(), chain.FormatSequence(dims), ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ColorCyan(), ColorReset())

	var reference *chain.Result
	for _, name := range r.names {
		solver := r.registry[name]
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		start := time.Now()
		result, err := solver.Solve(ctx, nil, 0, dims)
		duration := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-10s%s: %sError - %v%s\n",
				ColorYellow(), name, ColorReset(),
				ColorRed(), err, ColorReset())
			continue
		}

		if reference == nil {
			reference = result
		}
		status := ColorGreen() + "✓" + ColorReset()
		if !result.SameOrder(reference) {
			status = ColorRed() + "✗ INCONSISTENT" + ColorReset()
		}

		fmt.Fprintf(r.out, "  %s%-10s%s: %s%10s%s  cost %s  %s %s\n",
			ColorYellow(), name, ColorReset(),
			ColorCyan(), FormatExecutionDuration(duration), ColorReset(),
			FormatCost(result.MinimumCost), result.Parenthesization, status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ColorCyan(), ColorReset())
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ColorBold(), ColorReset())
	for _, name := range r.names {
		marker := "  "
		if name == r.currentAlgo {
			marker = ColorGreen() + "► " + ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ColorYellow(), name, ColorReset(), r.registry[name].Name())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Strategy:      %s%s%s\n", ColorCyan(), r.currentAlgo, ColorReset())
	fmt.Fprintf(r.out, "  Timeout:       %s%s%s\n", ColorCyan(), r.config.Timeout, ColorReset())
	fmt.Fprintf(r.out, "  Max matrices:  %s%d%s\n", ColorCyan(), r.config.MaxMatrices, ColorReset())
	fmt.Fprintf(r.out, "  Trace:         %s%s%s\n", ColorCyan(), onOff(r.config.ShowTrace), ColorReset())
	fmt.Fprintf(r.out, "  Tables:        %s%s%s\n", ColorCyan(), onOff(r.config.ShowTables), ColorReset())
	fmt.Fprintln(r.out)
}
