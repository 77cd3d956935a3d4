// Package config loads ratbase settings from defaults, a ratbase.yaml file,
// RATBASE_* environment variables and command-line flags.
package config

import "github.com/leapstack-labs/ratbase/pkg/numeral"

// Config holds all CLI configuration options.
type Config struct {
	InputBase   string `koanf:"input_base" yaml:"input_base" json:"input_base"`
	OutputBase  string `koanf:"output_base" yaml:"output_base" json:"output_base"`
	Alphabet    string `koanf:"alphabet" yaml:"alphabet" json:"alphabet"`
	Format      string `koanf:"format" yaml:"format" json:"format"`
	Verbose     bool   `koanf:"verbose" yaml:"verbose" json:"verbose"`
	HistoryFile string `koanf:"history_file" yaml:"history_file,omitempty" json:"history_file,omitempty"`
	Jobs        int    `koanf:"jobs" yaml:"jobs" json:"jobs"`
}

// Default configuration values.
const (
	DefaultBase     = "10"
	DefaultAlphabet = numeral.DefaultAlphabet
	DefaultFormat   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix       = "RATBASE_"
)

// ConfigFileNames are searched for, in order, when no --config is given.
var ConfigFileNames = []string{"ratbase.yaml", "ratbase.yml"}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		InputBase:  DefaultBase,
		OutputBase: DefaultBase,
		Alphabet:   DefaultAlphabet,
		Format:     DefaultFormat,
	}
}
