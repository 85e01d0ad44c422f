// Package config provides the configuration management for the chainorder
// application. It defines the configuration structure, parses command-line
// flags, applies config-file and environment overrides, and validates the
// result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/chainorder/internal/chain"
	apperrors "github.com/agbru/chainorder/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by chainorder.
	EnvPrefix = "CHAINORDER_"
)

// Default configuration values.
// These can be overridden via flags, environment variables or a config file.
const (
	// DefaultDims is the chain solved when none is given.
	DefaultDims = "10, 30, 5, 60"
	// DefaultTimeout is the default solve timeout.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo is the default strategy selection.
	DefaultAlgo = chain.DefaultAlgorithm
	// DefaultMaxMatrices bounds the chain length accepted by the server and
	// the CLI. Work and trace size grow as n^3.
	DefaultMaxMatrices = 100
	// DefaultRateLimit is the sustained number of requests per second
	// allowed per client in server mode.
	DefaultRateLimit = 10.0
	// DefaultRateBurst is the burst size of the per-client limiter.
	DefaultRateBurst = 20
	// MaxStreamDelay caps the delay between streamed trace lines.
	MaxStreamDelay = 5 * time.Second
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// DimsRaw is the textual dimension sequence, e.g. "10, 30, 5, 60".
	DimsRaw string
	// Dims is DimsRaw parsed. It is set by ParseConfig.
	Dims []float64
	// Timeout sets the maximum duration of a solve.
	Timeout time.Duration
	// Algo specifies the strategy ("all", "bottomup", "memo").
	Algo string
	// ShowTrace prints the DP trace lines.
	ShowTrace bool
	// ShowTables prints the cost and split tables.
	ShowTables bool
	// JSONOutput prints the result as the JSON response document.
	JSONOutput bool
	// ServerMode starts the HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor disables all color output. Also respects NO_COLOR.
	NoColor bool
	// OutputFile, if specified, saves a report to this file path.
	OutputFile string
	// Quiet prints only "<cost> <parenthesization>".
	Quiet bool
	// Interactive starts the REPL.
	Interactive bool
	// Completion generates a shell completion script for the given shell.
	// Valid values are: "bash", "zsh", "fish", "powershell".
	Completion string
	// MaxMatrices is the largest accepted number of matrices.
	MaxMatrices int
	// StreamDelay is the pause between streamed trace lines. Zero selects
	// the pacing of the web front end: 50ms, or 20ms above 50 lines.
	StreamDelay time.Duration
	// RateLimit is the per-client requests per second in server mode.
	RateLimit float64
	// RateBurst is the per-client burst in server mode.
	RateBurst int
	// ConfigFile is the optional TOML file read before environment overrides.
	ConfigFile string
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableAlgos: The registered strategy names.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxMatrices < 1 {
		return apperrors.NewConfigError("max-matrices must be at least 1: %d", c.MaxMatrices)
	}
	if c.StreamDelay < 0 || c.StreamDelay > MaxStreamDelay {
		return apperrors.NewConfigError("stream-delay must be between 0 and %s: %s", MaxStreamDelay, c.StreamDelay)
	}
	if c.RateLimit <= 0 {
		return apperrors.NewConfigError("rate-limit must be strictly positive: %v", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return apperrors.NewConfigError("rate-burst must be at least 1: %d", c.RateBurst)
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != "all" && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.Completion != "" {
		switch c.Completion {
		case "bash", "zsh", "fish", "powershell", "ps":
		default:
			return apperrors.NewConfigError("unsupported shell for completion: '%s'", c.Completion)
		}
	}
	return nil
}

// needsDims reports whether the run mode solves the configured chain.
func (c AppConfig) needsDims() bool {
	return !c.ServerMode && !c.Interactive && c.Completion == ""
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// Values come from, in decreasing priority: flags, CHAINORDER_* environment
// variables, the TOML file named by -config, and the defaults.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage are printed.
//   - availableAlgos: The valid strategy names.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if parsing, loading or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Strategy to use: 'all' (compare every strategy) or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.StringVar(&config.DimsRaw, "dims", DefaultDims, "Matrix dimensions p0,p1,...,pn (comma or space separated).")
	fs.StringVar(&config.DimsRaw, "d", DefaultDims, "Matrix dimensions (shorthand).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for a solve.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.BoolVar(&config.ShowTrace, "trace", false, "Display the step-by-step DP trace.")
	fs.BoolVar(&config.ShowTables, "tables", false, "Display the cost table m and split table s.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the report.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the cost and the parenthesization.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.IntVar(&config.MaxMatrices, "max-matrices", DefaultMaxMatrices, "Largest accepted number of matrices.")
	fs.DurationVar(&config.StreamDelay, "stream-delay", 0, "Pause between streamed trace lines (0 = automatic).")
	fs.Float64Var(&config.RateLimit, "rate-limit", DefaultRateLimit, "Requests per second allowed per client in server mode.")
	fs.IntVar(&config.RateBurst, "rate-burst", DefaultRateBurst, "Burst size allowed per client in server mode.")
	fs.StringVar(&config.ConfigFile, "config", "", "Path to a TOML configuration file.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		fileCfg, err := LoadFile(config.ConfigFile)
		if err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
		fileCfg.apply(&config, fs)
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.Completion = strings.ToLower(config.Completion)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}

	if config.needsDims() {
		dims, err := chain.SplitDimensions(config.DimsRaw)
		if err == nil {
			err = chain.ValidateDimensions(dims)
		}
		if err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
		config.Dims = dims
	}
	return config, nil
}
