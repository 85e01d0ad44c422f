package app

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/chainorder/internal/chain"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"Empty args", nil, false},
		{"Solve only", []string{"-dims", "10,30,5,60"}, false},
		{"Long flag", []string{"--version"}, true},
		{"Short flag", []string{"-V"}, true},
		{"Single dash", []string{"-version"}, true},
		{"After server flag", []string{"-server", "-port", "9000", "--version"}, true},
		{"After terminator", []string{"-dims", "10,20", "--", "--version"}, false},
		{"Similar flag", []string{"--verbose"}, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, HasVersionFlag(tc.args), "%v", tc.args)
		})
	}
}

func TestCurrentBuild(t *testing.T) {
	t.Parallel()

	info := CurrentBuild(chain.NewDefaultFactory())

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, []StrategyInfo{
		{Key: "bottomup", Name: "Bottom-Up DP", Default: true},
		{Key: "memo", Name: "Memoized Recursion"},
	}, info.Strategies)

	doc, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"strategies":[{"key":"bottomup","name":"Bottom-Up DP","default":true}`)
}

func TestBuildInfoWrite(t *testing.T) {
	t.Parallel()

	info := BuildInfo{
		Version:   "v1.2.3",
		Commit:    "abc123",
		BuildDate: "2026-01-02",
		GoVersion: "go1.24.0",
		Platform:  "linux/amd64",
		Strategies: []StrategyInfo{
			{Key: "bottomup", Name: "Bottom-Up DP", Default: true},
			{Key: "memo", Name: "Memoized Recursion"},
		},
	}
	var buf bytes.Buffer
	info.Write(&buf)

	want := "chainorder v1.2.3 (commit abc123, built 2026-01-02)\n" +
		"  Go:         go1.24.0 linux/amd64\n" +
		"  Strategies: bottomup (Bottom-Up DP, default), memo (Memoized Recursion)\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)

	assert.Contains(t, buf.String(), "chainorder "+Version)
	assert.Contains(t, buf.String(), "memo (Memoized Recursion)")
}
