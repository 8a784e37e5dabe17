package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/b13phase/internal/config"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long name without dashes
	Short     string   // short alias without dash
	Help      string   // description
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // value label for zsh
	IsFile    bool     // the value is a file path
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "mode", Help: "Operation to run", Values: config.Modes, ValueName: "mode"},
	{Long: "n", Help: "Digit-array length", Values: []string{"1", "3", "5", "6", "8"}, ValueName: "digits"},
	{Long: "x", Help: "Phase index", ValueName: "index"},
	{Long: "y", Help: "Second phase index for add", ValueName: "index"},
	{Long: "step", Help: "Increment step (0..3119)", Values: []string{"1", "780", "1560", "3119"}, ValueName: "step"},
	{Long: "word", Help: "Packed word for unpack", ValueName: "word"},
	{Long: "digits", Help: "Explicit digit list, most significant first", ValueName: "list"},
	{Long: "max-digits", Help: "Rows of the resolution table", Values: []string{"5", "6", "10"}, ValueName: "count"},
	{Long: "samples", Help: "Sweep sample count", Values: []string{"16", "64", "256", "1024"}, ValueName: "count"},
	{Long: "workers", Help: "Concurrent sweep workers", ValueName: "count"},
	{Long: "level0", Help: "YAML level-0 table", IsFile: true, ValueName: "file"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Long: "quiet", Short: "q", Help: "Print results only"},
	{Long: "verbose", Short: "v", Help: "Show intermediate evaluator rows"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "output", Short: "o", Help: "Also write the result to a file", IsFile: true, ValueName: "file"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics during sweep", Values: []string{"localhost:9090"}, ValueName: "address"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh",
// "fish" or "powershell") to out.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	case "powershell", "ps":
		return generatePowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func generateBashCompletion(out io.Writer) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Long)
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var cases strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, "-"+f.Long, "--"+f.Long)
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        -%s|--%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Long, f.Long, strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for b13phase
# Add this to your ~/.bashrc or ~/.bash_completion

_b13phase_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _b13phase_completions b13phase
`, strings.Join(opts, " "), cases.String())
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	_, err := fmt.Fprintf(out, `#compdef b13phase

# Zsh completion script for b13phase
# Add this to your ~/.zshrc or place in $fpath

_b13phase() {
    _arguments -s \
%s
}

_b13phase "$@"
`, strings.Join(args, " \\\n"))
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for b13phase",
		"# Add this to ~/.config/fish/completions/b13phase.fish",
		"",
		"complete -c b13phase -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c b13phase", "-o " + f.Long}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer) error {
	var options, switches []string
	for _, f := range flagRegistry {
		options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Long, f.Help))
		if f.Short != "" {
			options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if len(f.Values) > 0 && !f.IsFile {
			quoted := make([]string, len(f.Values))
			for i, v := range f.Values {
				quoted[i] = "'" + v + "'"
			}
			switches = append(switches, fmt.Sprintf(`        '-%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
		}
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for b13phase
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'b13phase' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
	return err
}
