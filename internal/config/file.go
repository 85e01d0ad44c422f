package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig is the TOML configuration file layout. Every key is optional;
// missing keys leave the defaults in place.
//
//	dims = "10, 30, 5, 60"
//	algo = "memo"
//	timeout = "30s"
//
//	[server]
//	port = "9090"
//	max_matrices = 50
//	stream_delay = "100ms"
//	rate_limit = 5.0
//	rate_burst = 10
//
//	[output]
//	trace = true
//	tables = true
//	no_color = false
type FileConfig struct {
	Dims    string        `toml:"dims"`
	Algo    string        `toml:"algo"`
	Timeout *fileDuration `toml:"timeout"`

	Server struct {
		Port        string        `toml:"port"`
		MaxMatrices *int          `toml:"max_matrices"`
		StreamDelay *fileDuration `toml:"stream_delay"`
		RateLimit   *float64      `toml:"rate_limit"`
		RateBurst   *int          `toml:"rate_burst"`
	} `toml:"server"`

	Output struct {
		Trace   *bool  `toml:"trace"`
		Tables  *bool  `toml:"tables"`
		JSON    *bool  `toml:"json"`
		Quiet   *bool  `toml:"quiet"`
		NoColor *bool  `toml:"no_color"`
		File    string `toml:"file"`
	} `toml:"output"`
}

// LoadFile decodes a TOML configuration file. Unknown keys are rejected so
// typos do not go unnoticed.
func LoadFile(path string) (*FileConfig, error) {
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}
	return &fc, nil
}

// apply copies file values into config for every flag not set on the command
// line.
func (fc *FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	unset := func(names ...string) bool {
		for _, n := range names {
			if isFlagSet(fs, n) {
				return false
			}
		}
		return true
	}

	if fc.Dims != "" && unset("dims", "d") {
		config.DimsRaw = fc.Dims
	}
	if fc.Algo != "" && unset("algo") {
		config.Algo = fc.Algo
	}
	if fc.Timeout != nil && unset("timeout") {
		config.Timeout = fc.Timeout.Duration
	}
	if fc.Server.Port != "" && unset("port") {
		config.Port = fc.Server.Port
	}
	if fc.Server.MaxMatrices != nil && unset("max-matrices") {
		config.MaxMatrices = *fc.Server.MaxMatrices
	}
	if fc.Server.StreamDelay != nil && unset("stream-delay") {
		config.StreamDelay = fc.Server.StreamDelay.Duration
	}
	if fc.Server.RateLimit != nil && unset("rate-limit") {
		config.RateLimit = *fc.Server.RateLimit
	}
	if fc.Server.RateBurst != nil && unset("rate-burst") {
		config.RateBurst = *fc.Server.RateBurst
	}
	if fc.Output.Trace != nil && unset("trace") {
		config.ShowTrace = *fc.Output.Trace
	}
	if fc.Output.Tables != nil && unset("tables") {
		config.ShowTables = *fc.Output.Tables
	}
	if fc.Output.JSON != nil && unset("json") {
		config.JSONOutput = *fc.Output.JSON
	}
	if fc.Output.Quiet != nil && unset("quiet", "q") {
		config.Quiet = *fc.Output.Quiet
	}
	if fc.Output.NoColor != nil && unset("no-color") {
		config.NoColor = *fc.Output.NoColor
	}
	if fc.Output.File != "" && unset("output", "o") {
		config.OutputFile = fc.Output.File
	}
}

// fileDuration decodes TOML strings such as "30s" or "1m30s".
type fileDuration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *fileDuration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
