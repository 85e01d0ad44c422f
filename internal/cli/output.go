// Package cli provides output utilities for exporting solve results.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Quiet prints only the cost and the parenthesization.
	Quiet bool
	// ShowTrace includes the DP trace.
	ShowTrace bool
	// ShowTables includes the cost and split tables.
	ShowTables bool
}

// WriteResultToFile writes a plain-text report of a solve. Colors are never
// written to the file.
//
// Parameters:
//   - result: The solve result.
//   - duration: The solve duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result *chain.Result, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Matrix Chain Order Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", result.Algorithm)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Dimensions: %s\n", chain.FormatSequence(result.Dimensions))

	var report bytes.Buffer
	DisplayResult(result, duration, DisplayOptions{
		ShowTables: config.ShowTables,
		ShowTrace:  config.ShowTrace,
	}, &report)
	if _, err := io.WriteString(file, ui.StripANSI(report.String())); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return file.Close()
}

// FormatQuietResult formats a result for quiet mode output: the minimum cost
// followed by the parenthesization, suitable for scripting.
func FormatQuietResult(result *chain.Result) string {
	return fmt.Sprintf("%s %s", chain.FormatNumber(result.MinimumCost), result.Parenthesization)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result *chain.Result) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - result: The solve result.
//   - duration: The solve duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result *chain.Result, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, duration, DisplayOptions{
			ShowTables: config.ShowTables,
			ShowTrace:  config.ShowTrace,
		}, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}

	return nil
}
