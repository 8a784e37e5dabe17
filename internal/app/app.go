// Package app wires configuration, the level-0 table, logging and metrics
// together and dispatches to the selected mode.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/agbru/b13phase/internal/cli"
	"github.com/agbru/b13phase/internal/config"
	apperrors "github.com/agbru/b13phase/internal/errors"
	"github.com/agbru/b13phase/internal/level0"
	"github.com/agbru/b13phase/internal/logging"
	"github.com/agbru/b13phase/internal/metrics"
	"github.com/agbru/b13phase/internal/phase"
	"github.com/agbru/b13phase/internal/tui"
	"github.com/agbru/b13phase/internal/ui"
)

// Application represents the b13phase application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the REPL. It defaults to os.Stdin.
	In io.Reader

	table   phase.Level0
	logger  logging.Logger
	metrics *metrics.Metrics
	// progressOut receives spinner output, which never goes to -output.
	progressOut io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithTable replaces the level-0 table, bypassing -level0.
func WithTable(t phase.Level0) AppOption {
	return func(a *Application) { a.table = t }
}

// WithInput sets the reader used by the REPL.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "b13phase"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveWorkers(cfg)
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	a.logger = logging.NewZerologAdapter(zerolog.New(zerolog.ConsoleWriter{Out: a.ErrWriter, NoColor: a.Config.NoColor}).
		Level(level).With().Timestamp().Str("component", "app").Logger())
	ui.InitTheme(a.Config.NoColor)
	a.metrics = metrics.NewMetrics()

	if a.table == nil {
		table, err := loadTable(a.Config.Level0)
		if err != nil {
			return apperrors.HandleOperationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
		}
		a.table = table
	}

	switch a.Config.Mode {
	case "repl":
		return a.runREPL(out)
	case "tui":
		return a.runTUI(ctx)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	a.progressOut = out
	start := time.Now()
	err = a.runMode(ctx, out)
	if err != nil {
		a.logger.Debug("mode failed", logging.String("mode", a.Config.Mode), logging.Err(err))
		if !apperrors.IsContextError(err) {
			err = apperrors.OperationError{Mode: a.Config.Mode, Cause: err}
		}
	}
	return apperrors.HandleOperationError(err, time.Since(start), a.ErrWriter, cli.CLIColorProvider{})
}

// runMode runs a one-shot mode. When -output is set the printed result is
// also written, without color codes, to that file.
func (a *Application) runMode(ctx context.Context, out io.Writer) error {
	run, ok := a.modes()[a.Config.Mode]
	if !ok {
		return apperrors.NewConfigError("unknown mode %q", a.Config.Mode)
	}
	if a.Config.OutputFile == "" {
		return run(ctx, out)
	}

	var captured strings.Builder
	if err := run(ctx, io.MultiWriter(out, &captured)); err != nil {
		return err
	}
	if err := cli.WriteResultToFile(a.Config.OutputFile, a.Config.Mode, ansi.Strip(captured.String())); err != nil {
		return err
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return nil
}

func (a *Application) modes() map[string]func(context.Context, io.Writer) error {
	return map[string]func(context.Context, io.Writer) error{
		"demo":       a.runDemo,
		"resolution": a.runResolution,
		"convert":    a.runConvert,
		"add":        a.runAdd,
		"inc":        a.runInc,
		"pack":       a.runPack,
		"unpack":     a.runUnpack,
		"eval":       a.runEval,
		"sweep":      a.runSweep,
	}
}

func loadTable(path string) (phase.Level0, error) {
	if path == "" {
		return level0.Builtin(), nil
	}
	table, err := level0.Load(path)
	if err != nil {
		return nil, apperrors.NewConfigError("level-0 table: %v", err)
	}
	return table, nil
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive calculator. It has no timeout.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Digits:  a.Config.N,
		Verbose: a.Config.Verbose,
		Table:   a.table,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the phase explorer. It has no timeout.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, tui.Options{
		Digits:  a.Config.N,
		Samples: a.Config.Samples,
		Workers: a.Config.Workers,
		Table:   a.table,
		Version: Version,
	})
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
