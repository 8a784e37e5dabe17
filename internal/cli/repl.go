package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/b13phase/internal/config"
	"github.com/agbru/b13phase/internal/phase"
	"github.com/agbru/b13phase/internal/ui"
)

// REPLConfig holds the initial state of an interactive session.
type REPLConfig struct {
	// Digits is the digit-array length used by index-based commands.
	Digits int
	// Verbose lists intermediate evaluator levels.
	Verbose bool
	// Table supplies level-0 vectors to eval.
	Table phase.Level0
}

// REPL is an interactive phase calculator.
type REPL struct {
	config REPLConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a session reading stdin and writing stdout.
func NewREPL(cfg REPLConfig) *REPL {
	if cfg.Digits < 1 {
		cfg.Digits = config.DefaultDigits
	}
	return &REPL{config: cfg, in: os.Stdin, out: os.Stdout}
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"phase> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
			} else {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sBase-3120 phase calculator%s                 %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range [][2]string{
		{"digits <x>", "Decompose index x into n digits"},
		{"int <d...>", "Recompose an index from digits"},
		{"add <x> <y>", "Add two phases (wraps, prints carry)"},
		{"inc <x> [step]", "Increment the least significant digit"},
		{"pack <d0..d4>", "Pack five digits into a 64-bit word"},
		{"unpack <word>", "Unpack a word (decimal or 0x...)"},
		{"eval <x>", "Evaluate phase x with the level-0 table"},
		{"res [max]", "Show the resolution table"},
		{"n <digits>", "Set the digit-array length"},
		{"verbose", "Toggle intermediate evaluator levels"},
		{"status", "Show the session settings"},
		{"help", "Show this help"},
		{"exit", "Leave the session"},
	} {
		fmt.Fprintf(r.out, "  %s%-15s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand executes one line and reports whether to continue.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "digits", "d":
		err = r.cmdDigits(args)
	case "int", "i":
		err = r.cmdInt(args)
	case "add", "+":
		err = r.cmdAdd(args)
	case "inc":
		err = r.cmdInc(args)
	case "pack", "p":
		err = r.cmdPack(args)
	case "unpack", "u":
		err = r.cmdUnpack(args)
	case "eval", "e":
		err = r.cmdEval(args)
	case "res", "resolution":
		err = r.cmdResolution(args)
	case "n":
		err = r.cmdSetDigits(args)
	case "verbose", "v":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Verbose evaluation: %v\n", r.config.Verbose)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, perr := ParseIndex(cmd); perr == nil {
			err = r.cmdEval([]string{cmd})
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return true
}

func usage(s string) error { return fmt.Errorf("usage: %s", s) }

func (r *REPL) digitsOf(arg string) (phase.Digits, error) {
	x, err := ParseIndex(arg)
	if err != nil {
		return nil, err
	}
	return phase.FromInt(x, r.config.Digits)
}

func (r *REPL) cmdDigits(args []string) error {
	if len(args) != 1 {
		return usage("digits <x>")
	}
	d, err := r.digitsOf(args[0])
	if err != nil {
		return err
	}
	DisplayDigits(r.out, "digits", d)
	return nil
}

func (r *REPL) cmdInt(args []string) error {
	if len(args) == 0 {
		return usage("int <d...>")
	}
	d, err := ParseDigitList(strings.Join(args, " "))
	if err != nil {
		return err
	}
	x, err := phase.ToInt(d)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%-10s %s%s%s\n", "index:", ui.ColorMagenta(), x, ui.ColorReset())
	return nil
}

func (r *REPL) cmdAdd(args []string) error {
	if len(args) != 2 {
		return usage("add <x> <y>")
	}
	a, err := r.digitsOf(args[0])
	if err != nil {
		return err
	}
	b, err := r.digitsOf(args[1])
	if err != nil {
		return err
	}
	sum, carry, err := phase.Add(a, b)
	if err != nil {
		return err
	}
	DisplaySum(r.out, "sum", sum, carry)
	return nil
}

func (r *REPL) cmdInc(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("inc <x> [step]")
	}
	d, err := r.digitsOf(args[0])
	if err != nil {
		return err
	}
	step := 1
	if len(args) == 2 {
		if step, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid step %q", args[1])
		}
	}
	out, carry, err := phase.Increment(d, step)
	if err != nil {
		return err
	}
	DisplaySum(r.out, "result", out, carry)
	return nil
}

func (r *REPL) cmdPack(args []string) error {
	if len(args) == 0 {
		return usage("pack <d0 d1 d2 d3 d4>")
	}
	d, err := ParseDigitList(strings.Join(args, " "))
	if err != nil {
		return err
	}
	p, err := phase.Pack(d)
	if err != nil {
		return err
	}
	DisplayPacked(r.out, "packed", p, d)
	return nil
}

func (r *REPL) cmdUnpack(args []string) error {
	if len(args) != 1 {
		return usage("unpack <word>")
	}
	p, err := ParseWord(args[0])
	if err != nil {
		return err
	}
	d, err := phase.Unpack(p)
	if err != nil {
		return err
	}
	DisplayPacked(r.out, "unpacked", p, d)
	return nil
}

func (r *REPL) cmdEval(args []string) error {
	if len(args) != 1 {
		return usage("eval <x>")
	}
	d, err := r.digitsOf(args[0])
	if err != nil {
		return err
	}
	steps, err := phase.EvaluateSteps(d, r.config.Table)
	if err != nil {
		return err
	}
	DisplayDigits(r.out, "digits", d)
	DisplayEvaluation(r.out, d, steps, r.config.Verbose)
	return nil
}

func (r *REPL) cmdResolution(args []string) error {
	maxDigits := config.DefaultMaxDigits
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid row count %q", args[0])
		}
		maxDigits = v
	}
	DisplayResolutionTable(r.out, phase.ResolutionTable(maxDigits))
	return nil
}

func (r *REPL) cmdSetDigits(args []string) error {
	if len(args) != 1 {
		return usage("n <digits>")
	}
	v, err := strconv.Atoi(args[0])
	if err != nil || v < 1 || v > 64 {
		return fmt.Errorf("digit count must be in 1..64, got %q", args[0])
	}
	r.config.Digits = v
	fmt.Fprintf(r.out, "Digit-array length set to %s%d%s\n", ui.ColorCyan(), v, ui.ColorReset())
	return nil
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "%sSession:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits:   %s%d%s\n", ui.ColorCyan(), r.config.Digits, ui.ColorReset())
	fmt.Fprintf(r.out, "  Phases:   %s%s%s\n", ui.ColorCyan(), phase.TotalSubdivisions(r.config.Digits), ui.ColorReset())
	fmt.Fprintf(r.out, "  Verbose:  %s%v%s\n", ui.ColorCyan(), r.config.Verbose, ui.ColorReset())
}
