package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and runs it as a user would.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binName := "b13phase"
	if runtime.GOOS == "windows" {
		binName = "b13phase.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/b13phase")
	cmd.Dir = filepath.Join("..", "..")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build b13phase: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{"Demo", nil, nil, "prototype evaluator", 0},
		{"Help", []string{"--help"}, nil, "usage", 0},
		{"Version Flag", []string{"--version"}, nil, "b13phase", 0},
		{"Resolution", []string{"-mode", "resolution", "-max-digits", "6"}, nil, "922,417,564,483,584,000,000", 0},
		{"Convert", []string{"-mode", "convert", "-x", "123456789", "-n", "6", "-q"}, nil, "[0 0 0 12 2129 1509]", 0},
		{"Add Carry", []string{"-mode", "add", "-digits", "3119,3119,3119", "-y", "1", "-q"}, nil, "[0 0 0] 1", 0},
		{"Pack", []string{"-mode", "pack", "-digits", "1,2,3,4,5", "-q"}, nil, "281612466012165", 0},
		{"Unpack Invalid", []string{"-mode", "unpack", "-word", "0xFFF"}, nil, "invalid packed value", 3},
		{"Eval", []string{"-mode", "eval", "-x", "7592832000", "-n", "3", "-q"}, nil, "0 3120", 0},
		{"Sweep", []string{"-mode", "sweep", "-n", "2", "-samples", "32", "-q"}, nil, "", 0},
		{"Env Override", []string{"-mode", "convert", "-x", "3120", "-q"}, []string{"B13PHASE_N=2"}, "[1 0]", 0},
		{"Invalid Mode", []string{"-mode", "bogus"}, nil, "mode", 4},
		{"Stray Argument", []string{"extra"}, nil, "unexpected arguments", 4},
		{"Very Short Timeout", []string{"-mode", "sweep", "-n", "8", "-samples", "1000000", "-timeout", "1ms"}, nil, "timed out", 2},
		{"Completion", []string{"-completion", "fish"}, nil, "complete -c", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run %v: %v", tt.args, err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
