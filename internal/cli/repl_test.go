package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/b13phase/internal/level0"
)

func runREPL(t *testing.T, digits int, script string) string {
	t.Helper()
	r := NewREPL(REPLConfig{Digits: digits, Table: level0.Builtin()})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(script))
	r.SetOutput(&out)
	r.Start()
	return out.String()
}

func TestREPLCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		digits int
		script string
		want   []string
	}{
		{"digits", 6, "digits 123456789\n", []string{"[0 0 0 12 2129 1509]"}},
		{"int", 6, "int 0 0 0 12 2129 1509\n", []string{"123456789"}},
		{"add with carry", 2, "add 9734399 1\n", []string{"[0 0] carry=1"}},
		{"inc boundary", 3, "inc 30371327999 1\n", []string{"[0 0 0] carry=1"}},
		{"pack", 5, "pack 1 2 3 4 5\n", []string{"0x001002003004005"}},
		{"unpack", 5, "unpack 0x1002003004005\n", []string{"[1 2 3 4 5]"}},
		{"unpack invalid", 5, "unpack 0xFFF\n", []string{"Error: phase unpack: invalid packed value"}},
		{"pack wrong length", 5, "pack 1 2 3\n", []string{"Error: phase pack: invalid argument"}},
		{"index too large", 1, "digits 3120\n", []string{"invalid argument"}},
		{"eval quarter turn", 3, "eval 7592832000\n", []string{"(0, 3120)"}},
		{"bare index evaluates", 1, "1560\n", []string{"(-3120, 0)"}},
		{"verbose eval", 2, "verbose\neval 1\n", []string{"Verbose evaluation: true", "level 1"}},
		{"set digits", 5, "n 2\nstatus\n", []string{"Digits:   2", "9734400"}},
		{"bad digit count", 5, "n 0\n", []string{"digit count must be in 1..64"}},
		{"resolution", 5, "res 3\n", []string{"30,371,328,000"}},
		{"usage", 5, "add 1\n", []string{"usage: add <x> <y>"}},
		{"unknown", 5, "rotate\n", []string{"Unknown command: rotate"}},
		{"exit", 5, "exit\ndigits 1\n", []string{"Goodbye!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runREPL(t, tt.digits, tt.script)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPLExitStopsProcessing(t *testing.T) {
	t.Parallel()
	out := runREPL(t, 5, "exit\ndigits 1\n")
	if strings.Contains(out, "[0 0 0 0 1]") {
		t.Error("commands after exit must not run")
	}
}

func TestREPLLastLineWithoutNewline(t *testing.T) {
	t.Parallel()
	out := runREPL(t, 2, "digits 3121")
	if !strings.Contains(out, "[1 1]") {
		t.Errorf("unterminated final line not executed:\n%s", out)
	}
}
