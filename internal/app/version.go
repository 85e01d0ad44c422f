// Package app provides the core application structure for the chainorder CLI.
// It handles application lifecycle, command dispatching, and version management.
package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/chainorder/internal/chain"
)

// Build-time variables set via -ldflags, e.g.
//
//	go build -ldflags="-X github.com/agbru/chainorder/internal/app.Version=v1.2.3 -X github.com/agbru/chainorder/internal/app.Commit=abc123"
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash.
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build.
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version. The flag is
// honored in any position before a "--" terminator, so
// "chainorder -server --version" prints the version instead of serving.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// StrategyInfo describes one registered solving strategy.
type StrategyInfo struct {
	// Key is the -algo value selecting the strategy.
	Key string `json:"key"`
	// Name is the display name.
	Name string `json:"name"`
	// Default marks the strategy used when -algo is omitted.
	Default bool `json:"default"`
}

// BuildInfo describes the binary and the strategies compiled into it.
type BuildInfo struct {
	Version    string         `json:"version"`
	Commit     string         `json:"commit"`
	BuildDate  string         `json:"build_date"`
	GoVersion  string         `json:"go_version"`
	Platform   string         `json:"platform"`
	Strategies []StrategyInfo `json:"strategies"`
}

// CurrentBuild collects the build variables and the strategies of factory,
// sorted by key.
func CurrentBuild(factory chain.SolverFactory) BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	solvers := factory.GetAll()
	for _, key := range factory.List() {
		s, ok := solvers[key]
		if !ok {
			continue
		}
		info.Strategies = append(info.Strategies, StrategyInfo{
			Key:     key,
			Name:    s.Name(),
			Default: key == chain.DefaultAlgorithm,
		})
	}
	return info
}

// Write renders the build information as printed by --version.
func (b BuildInfo) Write(out io.Writer) {
	fmt.Fprintf(out, "chainorder %s (commit %s, built %s)\n", b.Version, b.Commit, b.BuildDate)
	fmt.Fprintf(out, "  Go:         %s %s\n", b.GoVersion, b.Platform)

	parts := make([]string, len(b.Strategies))
	for i, s := range b.Strategies {
		label := s.Name
		if s.Default {
			label += ", default"
		}
		parts[i] = fmt.Sprintf("%s (%s)", s.Key, label)
	}
	fmt.Fprintf(out, "  Strategies: %s\n", strings.Join(parts, ", "))
}

// PrintVersion writes the version of the binary and its strategies to out.
func PrintVersion(out io.Writer) {
	CurrentBuild(chain.GlobalFactory()).Write(out)
}
