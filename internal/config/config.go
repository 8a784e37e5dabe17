// Package config parses and validates the command-line configuration of the
// b13phase tool.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/agbru/b13phase/internal/errors"
)

const (
	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "B13PHASE_"

	// DefaultMode is the mode run when -mode is not given.
	DefaultMode = "demo"

	// DefaultDigits is the default digit-array length.
	DefaultDigits = 5

	// DefaultMaxDigits bounds the resolution table in demo and resolution modes.
	DefaultMaxDigits = 10

	// DefaultSamples is the default number of sweep samples.
	DefaultSamples = 64

	// DefaultTimeout bounds a single run.
	DefaultTimeout = 1 * time.Minute
)

// Modes lists every supported -mode value.
var Modes = []string{
	"demo", "resolution", "convert", "add", "inc", "pack", "unpack", "eval", "sweep", "repl", "tui",
}

// AppConfig holds the parsed configuration.
type AppConfig struct {
	Mode        string        `validate:"oneof=demo resolution convert add inc pack unpack eval sweep repl tui"`
	N           int           `validate:"min=1,max=64"`
	X           string        `validate:"required,numeric"`
	Y           string        `validate:"omitempty,numeric"`
	Step        int           `validate:"min=0,max=3119"`
	Word        string        `validate:"omitempty,max=20"`
	Digits      string        `validate:"omitempty"`
	MaxDigits   int           `validate:"min=1,max=64"`
	Samples     int           `validate:"min=1,max=1000000"`
	Workers     int           `validate:"min=0,max=1024"`
	Level0      string        `validate:"omitempty,max=4096"`
	Timeout     time.Duration `validate:"gt=0"`
	Quiet       bool
	Verbose     bool
	NoColor     bool
	OutputFile  string `validate:"omitempty,max=4096"`
	MetricsAddr string `validate:"omitempty,hostname_port"`
	LogLevel    string `validate:"oneof=debug info warn error disabled"`
	Completion  string `validate:"omitempty,oneof=bash zsh fish powershell"`
}

var validate = validator.New()

// Validate checks the configuration against its struct tags and reports the
// first failing field as a ValidationError.
func (c AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.ValidationError{
			Field:   flagNameFor(fe.StructField()),
			Message: describeFieldError(fe),
		}
	}
	return apperrors.NewConfigError("invalid configuration: %v", err)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "numeric":
		return fmt.Sprintf("must be a decimal integer, got %q", fe.Value())
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

var fieldFlags = map[string]string{
	"Mode":        "mode",
	"N":           "n",
	"X":           "x",
	"Y":           "y",
	"Step":        "step",
	"Word":        "word",
	"Digits":      "digits",
	"MaxDigits":   "max-digits",
	"Samples":     "samples",
	"Workers":     "workers",
	"Level0":      "level0",
	"Timeout":     "timeout",
	"OutputFile":  "output",
	"MetricsAddr": "metrics-addr",
	"LogLevel":    "log-level",
	"Completion":  "completion",
}

func flagNameFor(field string) string {
	if name, ok := fieldFlags[field]; ok {
		return name
	}
	return strings.ToLower(field)
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies B13PHASE_* environment overrides for flags that were not set, and
// validates the result. Usage and parse errors are written to errorOutput.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)
	fs.Usage = func() {
		fmt.Fprintf(errorOutput, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorOutput, "Modes: %s\n\nOptions:\n", strings.Join(Modes, ", "))
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", DefaultMode, "Operation to run.")
	fs.IntVar(&config.N, "n", DefaultDigits, "Digit-array length.")
	fs.StringVar(&config.X, "x", "0", "Phase index (decimal, arbitrary size).")
	fs.StringVar(&config.Y, "y", "", "Second phase index for add mode.")
	fs.IntVar(&config.Step, "step", 1, "Increment step at the least significant digit (0..3119).")
	fs.StringVar(&config.Word, "word", "", "Packed word for unpack mode (decimal or 0x-prefixed hex).")
	fs.StringVar(&config.Digits, "digits", "", "Explicit digit list, most significant first (e.g. \"1,2,3,4,5\").")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Largest digit count in the resolution table.")
	fs.IntVar(&config.Samples, "samples", DefaultSamples, "Number of evenly spaced phases evaluated by sweep.")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent sweep workers (0 = adaptive).")
	fs.StringVar(&config.Level0, "level0", "", "YAML level-0 table (default: builtin).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show intermediate evaluator rows.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.OutputFile, "output", "", "Also write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during sweep.")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled).")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish, powershell).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errorOutput, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	config.Mode = strings.ToLower(config.Mode)
	config.LogLevel = strings.ToLower(config.LogLevel)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorOutput, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// FlagNames returns the sorted long flag names, for shell completion.
func FlagNames() []string {
	names := make([]string, 0, len(fieldFlags)+4)
	for _, name := range fieldFlags {
		names = append(names, name)
	}
	names = append(names, "quiet", "verbose", "no-color", "version")
	sort.Strings(names)
	return names
}
