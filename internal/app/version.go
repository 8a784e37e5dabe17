package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Version is set at build time with -ldflags "-X .../internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args ask for the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version, toolchain and CPU features to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "b13phase %s\n", Version)
	fmt.Fprintf(out, "go:   %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "cpus: %d\n", runtime.NumCPU())
	if features := cpuFeatures(); len(features) > 0 {
		fmt.Fprintf(out, "cpu:  %s\n", strings.Join(features, " "))
	}
}

func cpuFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasBMI2, "bmi2")
	add(cpu.X86.HasADX, "adx")
	add(cpu.ARM64.HasASIMD, "asimd")
	return features
}
