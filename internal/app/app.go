package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/cli"
	"github.com/agbru/chainorder/internal/config"
	apperrors "github.com/agbru/chainorder/internal/errors"
	"github.com/agbru/chainorder/internal/orchestration"
	"github.com/agbru/chainorder/internal/server"
	"github.com/agbru/chainorder/internal/ui"
)

// Application represents the chainorder application instance.
// It encapsulates the configuration and runs the application in one of its
// modes (completion, server, REPL, CLI).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the solving strategies.
	Factory chain.SolverFactory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
	// In feeds the REPL; nil reads os.Stdin.
	In io.Reader
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := chain.GlobalFactory()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "chainorder"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Respects --no-color, NO_COLOR and non-terminal output.
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer()
	}
	if a.Config.Interactive {
		return a.runREPL(out)
	}
	return a.runSolve(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory.GetAll(), cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		MaxMatrices: a.Config.MaxMatrices,
		ShowTrace:   a.Config.ShowTrace,
		ShowTables:  a.Config.ShowTables,
	})
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runSolve solves the configured chain with the selected strategies.
func (a *Application) runSolve(ctx context.Context, out io.Writer) int {
	if n := len(a.Config.Dims) - 1; a.Config.MaxMatrices > 0 && n > a.Config.MaxMatrices {
		err := apperrors.NewValidationError("dims", fmt.Sprintf("%d matrices exceed the limit of %d", n, a.Config.MaxMatrices), n)
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	solvers := cli.GetSolversToRun(a.Config, a.Factory)
	if len(solvers) == 0 {
		fmt.Fprintf(a.ErrWriter, "Configuration error: unknown strategy %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(solvers, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteSolves(ctx, solvers, a.Config.Dims, progressOut)

	if a.Config.JSONOutput {
		return a.printJSONResults(results, out)
	}
	if len(results) == 1 {
		return a.reportSingle(results[0], out)
	}
	if a.Config.Quiet {
		code := orchestration.AnalyzeComparisonResults(results, a.Config, io.Discard)
		if code != apperrors.ExitSuccess {
			return a.reportFailure(results, code)
		}
		// Successes sort first.
		cli.DisplayQuietResult(out, results[0].Result)
		return code
	}
	return orchestration.AnalyzeComparisonResults(results, a.Config, out)
}

// reportSingle displays the outcome of a single-strategy run.
func (a *Application) reportSingle(res orchestration.SolveResult, out io.Writer) int {
	if res.Err != nil {
		w := out
		if a.Config.Quiet {
			w = a.ErrWriter
		}
		return apperrors.HandleSolveError(res.Err, res.Duration, w, cli.CLIColorProvider{})
	}
	if err := cli.DisplayResultWithConfig(out, res.Result, res.Duration, orchestration.OutputConfig(a.Config)); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// reportFailure prints a quiet-mode failure to the error writer.
func (a *Application) reportFailure(results []orchestration.SolveResult, code int) int {
	if code == apperrors.ExitErrorMismatch {
		fmt.Fprintln(a.ErrWriter, "Status: Mismatch. The strategies disagree on the optimal order.")
		return code
	}
	for _, res := range results {
		if res.Err != nil {
			return apperrors.HandleSolveError(apperrors.NewSolveError(res.Name, res.Err), res.Duration, a.ErrWriter, cli.CLIColorProvider{})
		}
	}
	return code
}

// IsHelpError checks if the error is a help flag error (--help was used).
// The application should then exit with success after the usage text.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonResult represents one strategy run in JSON format.
type jsonResult struct {
	Algorithm string          `json:"algorithm"`
	Duration  string          `json:"duration"`
	Result    *chain.Response `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// printJSONResults writes the runs as a JSON array for programmatic
// consumption. The exit code reflects failures and disagreements.
func (a *Application) printJSONResults(results []orchestration.SolveResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	var reference *chain.Result
	var refDuration time.Duration
	var firstErr error
	consistent := true
	for i, res := range results {
		jr := jsonResult{
			Algorithm: res.Name,
			Duration:  res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			if firstErr == nil {
				firstErr = res.Err
			}
		} else {
			resp := res.Result.Response()
			jr.Result = &resp
			if reference == nil {
				reference = res.Result
				refDuration = res.Duration
			} else if !res.Result.SameOrder(reference) {
				consistent = false
			}
		}
		output[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error encoding JSON output: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	switch {
	case reference == nil:
		return apperrors.ExitCode(firstErr)
	case !consistent:
		return apperrors.ExitErrorMismatch
	}
	if a.Config.OutputFile != "" {
		if err := cli.WriteResultToFile(reference, refDuration, orchestration.OutputConfig(a.Config)); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.ExitSuccess
}
