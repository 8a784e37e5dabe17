package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"-mode", "eval", "-V"}, true},
		{[]string{"-v"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	out := buf.String()
	if !strings.HasPrefix(out, "b13phase "+Version+"\n") {
		t.Errorf("PrintVersion() first line = %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "go:") {
		t.Errorf("PrintVersion() missing toolchain line:\n%s", out)
	}
}
