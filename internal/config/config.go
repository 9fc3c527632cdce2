// Package config holds the file-format constants and the zepto.yaml
// project configuration.
//
// zepto.yaml is optional. It is searched for from the script's directory
// upwards, and tunes diagnostics and the REPL:
//
//	log_level: info      # trace|debug|info|warn|error
//	trace: false         # per-instruction execution trace
//	disassemble: false   # dump bytecode after compiling
//	colors: auto         # auto|always|never
//	repl:
//	  prompt: "zp> "
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Color mode names accepted by the colors setting.
const (
	ColorsAuto   = "auto"
	ColorsAlways = "always"
	ColorsNever  = "never"
)

// DefaultPrompt is shown by the REPL when zepto.yaml does not override it.
const DefaultPrompt = "zp> "

// Config represents the top-level zepto.yaml configuration.
type Config struct {
	// LogLevel is a logrus level name. Defaults to "info".
	LogLevel string `yaml:"log_level,omitempty"`

	// Trace enables the per-instruction execution trace. Trace output is
	// logged at debug level, so it implies LogLevel debug or lower.
	Trace bool `yaml:"trace,omitempty"`

	// Disassemble dumps the bytecode of a script to the debug log before
	// it runs.
	Disassemble bool `yaml:"disassemble,omitempty"`

	// Colors controls colored terminal output: auto, always, or never.
	// Defaults to "auto" (on when stdout is a terminal).
	Colors string `yaml:"colors,omitempty"`

	REPL REPLConfig `yaml:"repl,omitempty"`
}

// REPLConfig tunes the interactive session.
type REPLConfig struct {
	// Prompt is printed before each line. Defaults to DefaultPrompt.
	Prompt string `yaml:"prompt,omitempty"`
}

// Default returns the configuration used when no zepto.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads and parses a zepto.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses zepto.yaml content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// Find searches for zepto.yaml starting from dir and walking up to parent
// directories, similar to how .gitignore is found.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "zepto.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// Also check zepto.yml (common alternative)
		candidate = filepath.Join(dir, "zepto.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%s: invalid log_level %q: %w", path, c.LogLevel, err)
		}
	}

	switch c.Colors {
	case "", ColorsAuto, ColorsAlways, ColorsNever:
	default:
		return fmt.Errorf("%s: invalid colors %q (want auto, always, or never)",
			path, c.Colors)
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Colors == "" {
		c.Colors = ColorsAuto
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = DefaultPrompt
	}
}

// Level returns the configured logrus level. Trace mode needs debug
// output, so it lifts an otherwise quieter level up to debug.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if (c.Trace || c.Disassemble) && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	return level
}
