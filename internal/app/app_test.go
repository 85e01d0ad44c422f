package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/config"
	apperrors "github.com/agbru/chainorder/internal/errors"
	"github.com/agbru/chainorder/internal/testutil"
)

func baseConfig() config.AppConfig {
	return config.AppConfig{
		Dims:        []float64{10, 30, 5, 60},
		Algo:        "bottomup",
		Timeout:     time.Minute,
		MaxMatrices: config.DefaultMaxMatrices,
		NoColor:     true,
	}
}

func newTestApp(cfg config.AppConfig, factory chain.SolverFactory) (*Application, *bytes.Buffer) {
	if factory == nil {
		factory = chain.NewDefaultFactory()
	}
	errBuf := &bytes.Buffer{}
	return &Application{Config: cfg, Factory: factory, ErrWriter: errBuf}, errBuf
}

// disagreeing returns a strategy whose cost is off by one.
func disagreeing() chain.Solver {
	return &chain.MockSolver{SolverName: "Off By One", Fn: func(ctx context.Context, dims []float64) (*chain.Result, error) {
		res, err := chain.Solve(dims)
		if err != nil {
			return nil, err
		}
		res.MinimumCost++
		return res, nil
	}}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Valid args create application", func(t *testing.T) {
		t.Parallel()
		app, err := New([]string{"chainorder", "-dims", "30 35 15 5 10 20 25", "-algo", "memo"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []float64{30, 35, 15, 5, 10, 20, 25}, app.Config.Dims)
		assert.Equal(t, "memo", app.Config.Algo)
		assert.NotNil(t, app.Factory)
	})

	t.Run("Invalid args return error", func(t *testing.T) {
		t.Parallel()
		app, err := New([]string{"chainorder", "-invalid-flag"}, &bytes.Buffer{})
		assert.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("Invalid dimensions return error", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"chainorder", "-dims", "10 0 5"}, &bytes.Buffer{})
		assert.ErrorIs(t, err, chain.ErrInvalidDimensions)
		assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
	})

	t.Run("Help flag returns error", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"chainorder", "-h"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, IsHelpError(err))
	})

	t.Run("Empty args use defaults", func(t *testing.T) {
		t.Parallel()
		app, err := New([]string{}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 30, 5, 60}, app.Config.Dims)
	})
}

func TestApplicationRun(t *testing.T) {
	t.Parallel()

	t.Run("Single strategy", func(t *testing.T) {
		t.Parallel()
		app, _ := newTestApp(baseConfig(), nil)
		var out bytes.Buffer

		code := app.Run(context.Background(), &out)

		require.Equal(t, apperrors.ExitSuccess, code)
		text := testutil.StripAnsiCodes(out.String())
		assert.Contains(t, text, "--- Execution Configuration ---")
		assert.Contains(t, text, "Single solve with the Bottom-Up DP strategy")
		assert.Contains(t, text, "Minimum cost             : 4,500 scalar multiplications")
		assert.NotContains(t, text, "Comparison Summary")
	})

	t.Run("Trace and tables", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.ShowTrace, cfg.ShowTables = true, true
		app, _ := newTestApp(cfg, nil)
		var out bytes.Buffer

		require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
		assert.Contains(t, out.String(), "--- DP Trace ---")
		assert.Contains(t, out.String(), "--- Split Table s[i][j] ---")
	})

	t.Run("All strategies", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Algo = "all"
		app, _ := newTestApp(cfg, nil)
		var out bytes.Buffer

		require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
		text := testutil.StripAnsiCodes(out.String())
		assert.Contains(t, text, "Comparison Summary")
		assert.Contains(t, text, "Memoized Recursion")
		assert.Contains(t, text, "All valid results are consistent")
	})

	t.Run("Quiet", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Quiet = true
		app, _ := newTestApp(cfg, nil)
		var out bytes.Buffer

		require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
		assert.Equal(t, "4500 ((A1A2)A3)\n", out.String())
	})

	t.Run("Quiet comparison", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Quiet, cfg.Algo = true, "all"
		app, _ := newTestApp(cfg, nil)
		var out bytes.Buffer

		require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
		assert.Equal(t, "4500 ((A1A2)A3)\n", out.String())
	})

	t.Run("Quiet mismatch goes to stderr", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Quiet, cfg.Algo = true, "all"
		factory := chain.NewTestFactory(map[string]chain.Solver{
			"bottomup": chain.NewSolver(&chain.BottomUp{}),
			"broken":   disagreeing(),
		})
		app, errBuf := newTestApp(cfg, factory)
		var out bytes.Buffer

		assert.Equal(t, apperrors.ExitErrorMismatch, app.Run(context.Background(), &out))
		assert.Empty(t, out.String())
		assert.Contains(t, errBuf.String(), "Mismatch")
	})

	t.Run("Comparison mismatch", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Algo = "all"
		factory := chain.NewTestFactory(map[string]chain.Solver{
			"bottomup": chain.NewSolver(&chain.BottomUp{}),
			"broken":   disagreeing(),
		})
		app, _ := newTestApp(cfg, factory)
		var out bytes.Buffer

		assert.Equal(t, apperrors.ExitErrorMismatch, app.Run(context.Background(), &out))
		assert.Contains(t, out.String(), "CRITICAL ERROR")
	})

	t.Run("Solver failure", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Quiet = true
		factory := chain.NewTestFactory(map[string]chain.Solver{
			"bottomup": &chain.MockSolver{Err: context.DeadlineExceeded},
		})
		app, errBuf := newTestApp(cfg, factory)

		assert.Equal(t, apperrors.ExitErrorTimeout, app.Run(context.Background(), &bytes.Buffer{}))
		assert.Contains(t, errBuf.String(), "Timeout")
	})

	t.Run("Unknown strategy", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Algo = "greedy"
		app, errBuf := newTestApp(cfg, nil)

		assert.Equal(t, apperrors.ExitErrorConfig, app.Run(context.Background(), &bytes.Buffer{}))
		assert.Contains(t, errBuf.String(), "unknown strategy")
	})

	t.Run("Too many matrices", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.MaxMatrices = 2
		app, errBuf := newTestApp(cfg, nil)

		assert.Equal(t, apperrors.ExitErrorConfig, app.Run(context.Background(), &bytes.Buffer{}))
		assert.Contains(t, errBuf.String(), "3 matrices exceed the limit of 2")
	})

	t.Run("Canceled context", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Dims = make([]float64, 30)
		for i := range cfg.Dims {
			cfg.Dims[i] = float64(i%7 + 1)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		app, _ := newTestApp(cfg, nil)
		var out bytes.Buffer

		assert.Equal(t, apperrors.ExitErrorCanceled, app.Run(ctx, &out))
		assert.Contains(t, out.String(), "Status: Canceled")
	})

	t.Run("Output file", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.OutputFile = filepath.Join(t.TempDir(), "reports", "chain.txt")
		app, _ := newTestApp(cfg, nil)
		var out bytes.Buffer

		require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Optimal parenthesization : ((A1A2)A3)")
		assert.Contains(t, out.String(), "Report saved to:")
	})
}

func TestIsHelpError(t *testing.T) {
	t.Parallel()
	assert.False(t, IsHelpError(nil))
	assert.False(t, IsHelpError(errors.New("other")))
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.Completion = "bash"
	app, _ := newTestApp(cfg, nil)
	var out bytes.Buffer

	require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
	assert.Contains(t, out.String(), "bottomup memo all")
}

func TestRunCompletionInvalid(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.Completion = "tcsh"
	app, errBuf := newTestApp(cfg, nil)

	assert.Equal(t, apperrors.ExitErrorConfig, app.Run(context.Background(), &bytes.Buffer{}))
	assert.Contains(t, errBuf.String(), "unsupported shell")
}

func TestPrintJSONResults(t *testing.T) {
	t.Parallel()

	decode := func(t *testing.T, out *bytes.Buffer) []map[string]any {
		t.Helper()
		var docs []map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
		return docs
	}

	t.Run("Single result", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.JSONOutput = true
		cfg.OutputFile = filepath.Join(t.TempDir(), "out.txt")
		app, _ := newTestApp(cfg, nil)
		var out bytes.Buffer

		require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
		docs := decode(t, &out)
		require.Len(t, docs, 1)
		assert.Equal(t, "Bottom-Up DP", docs[0]["algorithm"])
		result := docs[0]["result"].(map[string]any)
		assert.Equal(t, 4500.0, result["minimum_cost"])
		assert.Equal(t, "((A1A2)A3)", result["optimal_parenthesization"])
		assert.Len(t, result["execution_order"], 2)
		_, err := os.Stat(cfg.OutputFile)
		assert.NoError(t, err)
	})

	t.Run("Error result", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.JSONOutput = true
		factory := chain.NewTestFactory(map[string]chain.Solver{
			"bottomup": &chain.MockSolver{Err: errors.New("intentional failure")},
		})
		app, _ := newTestApp(cfg, factory)
		var out bytes.Buffer

		assert.Equal(t, apperrors.ExitErrorGeneric, app.Run(context.Background(), &out))
		docs := decode(t, &out)
		assert.Equal(t, "intentional failure", docs[0]["error"])
		assert.NotContains(t, docs[0], "result")
	})

	t.Run("Mismatch", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.JSONOutput, cfg.Algo = true, "all"
		factory := chain.NewTestFactory(map[string]chain.Solver{
			"a": chain.NewSolver(&chain.BottomUp{}),
			"b": disagreeing(),
		})
		app, _ := newTestApp(cfg, factory)
		var out bytes.Buffer

		assert.Equal(t, apperrors.ExitErrorMismatch, app.Run(context.Background(), &out))
		assert.Len(t, decode(t, &out), 2)
	})
}

func TestRunREPL(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()
	cfg.Interactive = true
	app, _ := newTestApp(cfg, nil)
	app.In = strings.NewReader("status\nsolve 2 2 2 2\nexit\n")
	var out bytes.Buffer

	require.Equal(t, apperrors.ExitSuccess, app.Run(context.Background(), &out))
	text := testutil.StripAnsiCodes(out.String())
	assert.Contains(t, text, "Interactive Mode")
	assert.Contains(t, text, "Max matrices:  100")
	assert.Contains(t, text, "(A1(A2A3))")
}
