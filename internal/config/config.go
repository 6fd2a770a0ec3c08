package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/louarianne/xq/internal/exit"
	"github.com/louarianne/xq/internal/logging"
)

// OutputFormat selects how the execution summary is rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

var (
	ErrNoArguments           = errors.New("no arguments provided")
	ErrNoSuiteFiles          = errors.New("no suite files specified")
	ErrInvalidVariableFormat = errors.New("variable must be in format name=value")
	ErrEmptyVariableName     = errors.New("variable name cannot be empty")
	ErrInvalidOutputFormat   = errors.New("output format must be text or json")
)

// Config represents the complete configuration for the xq tool.
type Config struct {
	// Suite execution
	SuiteFiles []string
	Repeat     int     // Additional iterations after first run (negative = infinite)
	RateLimit  float64 // Steps per second (0 = unlimited)

	// Output
	LogLevel string
	Output   OutputFormat

	// Template variables
	Variables map[string]any
}

// AllVariables returns a copy of the variable map for template substitution.
// Callers may extend the copy (step captures do) without affecting the
// configuration.
func (c *Config) AllVariables() map[string]any {
	combined := make(map[string]any)
	maps.Copy(combined, c.Variables)
	return combined
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.SuiteFiles) == 0 {
		return ErrNoSuiteFiles
	}

	for _, file := range c.SuiteFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("suite file %s not found: %w", file, err)
		}
	}

	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidOutputFormat, c.Output)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// variablesFlag implements flag.Value for parsing multiple -variable flags.
type variablesFlag map[string]any

// String returns a string representation of the variables flag for flag.Value interface.
func (v variablesFlag) String() string {
	var pairs []string
	for k, val := range v {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, val))
	}
	return strings.Join(pairs, ",")
}

// Set parses and stores a variable in name=value format for flag.Value interface.
func (v variablesFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%w, got: %s", ErrInvalidVariableFormat, value)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ErrEmptyVariableName
	}

	v[name] = parts[1]
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		logLevel      = fs.String("log-level", "info", "Log level: trace, debug, info, warn or error")
		output        = fs.String("output", "text", "Summary output format: text or json")
		repeat        = fs.Int("repeat", 0, "Number of additional times to repeat suite execution after the first run (negative for infinite loop)")
		rateLimit     = fs.Float64("rate-limit", 0, "Rate limit in steps per second (0 for unlimited)")
		variables     = make(variablesFlag)
		variablesFile = fs.String("variables-file", "", "Path to key=value file containing template variables")
	)

	fs.Var(variables, "variable", "Variable in format name=value (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	// Get remaining positional arguments as suite files
	files := fs.Args()
	if len(files) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoSuiteFiles, Usage())
	}

	// Load variables with proper precedence: file variables first, then command-line variables
	var finalVariables map[string]any
	if *variablesFile != "" {
		fileVariables, err := loadVariablesFile(*variablesFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load variables file: %v\n\n%s", err, Usage())
		}
		finalVariables = make(map[string]any)
		maps.Copy(finalVariables, fileVariables)
	}

	// Command-line variables take precedence over file variables
	if len(variables) > 0 {
		if finalVariables == nil {
			finalVariables = make(map[string]any)
		}
		maps.Copy(finalVariables, variables)
	}

	config := &Config{
		SuiteFiles: files,
		Repeat:     *repeat,
		RateLimit:  *rateLimit,
		LogLevel:   *logLevel,
		Output:     OutputFormat(*output),
		Variables:  finalVariables,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// loadVariablesFile loads variables from a key=value format file.
// It supports comments (lines starting with #) and empty lines.
// Returns an error if the file format is invalid or the file cannot be read.
func loadVariablesFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	variables := make(map[string]any)
	lines := strings.Split(string(data), "\n")

	for lineNum, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid format at line %d: %s (expected key=value)", lineNum+1, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if key == "" {
			return nil, fmt.Errorf("empty key at line %d: %s", lineNum+1, line)
		}

		variables[key] = value
	}

	return variables, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `xq - XML suite runner

Usage: xq [options] <file1> [file2] ...

Options:
  --log-level LEVEL       Log level: trace, debug, info, warn or error (default: info)
  --output FORMAT         Summary output format: text or json (default: text)
  --repeat N              Number of additional times to repeat after first run (negative for infinite)
  --rate-limit N          Rate limit in steps per second (0 for unlimited)
  --variable NAME=VALUE   Variable in format name=value (can be used multiple times)
  --variables-file FILE   Path to key=value file containing template variables
  -h, --help              Show this help message

Examples:
  xq suite.yaml                          # Run suite file once
  xq suite.yaml --log-level debug        # Log resolved documents while running
  xq suite.yaml --rate-limit 5           # Rate limit to 5 steps per second
  xq suite.yaml --repeat 1               # Run suite file twice (1 + 1 additional)
  xq suite.yaml --repeat -1              # Run suite file infinitely
  xq smoke.yaml regression.yaml          # Run multiple suite files in sequence
  xq suite.yaml --variable HOST=staging  # Pass variable to suite templates`
}
