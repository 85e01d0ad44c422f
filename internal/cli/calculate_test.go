package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/config"
	"github.com/agbru/chainorder/internal/testutil"
)

func TestGetSolversToRun(t *testing.T) {
	t.Parallel()
	factory := chain.NewDefaultFactory()

	t.Run("Single strategy returns one solver", func(t *testing.T) {
		t.Parallel()
		solvers := GetSolversToRun(config.AppConfig{Algo: "memo"}, factory)
		if len(solvers) != 1 {
			t.Fatalf("Expected 1 solver, got %d", len(solvers))
		}
		if solvers[0].Name() != "Memoized Recursion" {
			t.Errorf("unexpected solver %q", solvers[0].Name())
		}
	})

	t.Run("All returns every solver in name order", func(t *testing.T) {
		t.Parallel()
		solvers := GetSolversToRun(config.AppConfig{Algo: "all"}, factory)
		if len(solvers) != 2 {
			t.Fatalf("Expected 2 solvers for 'all', got %d", len(solvers))
		}
		if solvers[0].Name() != "Bottom-Up DP" || solvers[1].Name() != "Memoized Recursion" {
			t.Errorf("unexpected order %q, %q", solvers[0].Name(), solvers[1].Name())
		}
	})

	t.Run("Unknown strategy returns nil", func(t *testing.T) {
		t.Parallel()
		if solvers := GetSolversToRun(config.AppConfig{Algo: "greedy"}, factory); solvers != nil {
			t.Errorf("Expected nil, got %d solvers", len(solvers))
		}
	})

	t.Run("Unsorted factory is sorted", func(t *testing.T) {
		t.Parallel()
		tf := chain.NewTestFactory(map[string]chain.Solver{
			"zeta":  &chain.MockSolver{SolverName: "Z"},
			"alpha": &chain.MockSolver{SolverName: "A"},
		})
		solvers := GetSolversToRun(config.AppConfig{Algo: "all"}, tf)
		if len(solvers) != 2 || solvers[0].Name() != "A" {
			t.Errorf("solvers not sorted by name")
		}
	})
}

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		Dims:    []float64{10, 30, 5, 60},
		Timeout: time.Minute,
	}

	PrintExecutionConfig(cfg, &buf)

	output := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(output, "Solving a chain of 3 matrices p = [10, 30, 5, 60]") {
		t.Errorf("unexpected configuration output: %s", output)
	}
	if !strings.Contains(output, "logical processors") {
		t.Errorf("environment line missing: %s", output)
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()

	t.Run("Single solver", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode([]chain.Solver{&chain.MockSolver{SolverName: "Bottom-Up DP"}}, &buf)
		output := testutil.StripAnsiCodes(buf.String())
		if !strings.Contains(output, "Single solve with the Bottom-Up DP strategy") {
			t.Errorf("unexpected mode output: %s", output)
		}
	})

	t.Run("Comparison", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode([]chain.Solver{&chain.MockSolver{}, &chain.MockSolver{}}, &buf)
		if !strings.Contains(buf.String(), "Parallel comparison") {
			t.Errorf("unexpected mode output: %s", buf.String())
		}
		if !strings.Contains(buf.String(), "--- Starting Execution ---") {
			t.Error("missing execution header")
		}
	})
}
