package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any of the aliased flags was set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an environment key (without EnvPrefix) to the flags it
// shadows and the setter applying its value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intSetter(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

var envOverrides = []envOverride{
	{"MODE", []string{"mode"}, func(c *AppConfig, v string) { c.Mode = v }},
	{"N", []string{"n"}, intSetter(func(c *AppConfig) *int { return &c.N })},
	{"X", []string{"x"}, func(c *AppConfig, v string) { c.X = v }},
	{"Y", []string{"y"}, func(c *AppConfig, v string) { c.Y = v }},
	{"STEP", []string{"step"}, intSetter(func(c *AppConfig) *int { return &c.Step })},
	{"MAX_DIGITS", []string{"max-digits"}, intSetter(func(c *AppConfig) *int { return &c.MaxDigits })},
	{"SAMPLES", []string{"samples"}, intSetter(func(c *AppConfig) *int { return &c.Samples })},
	{"WORKERS", []string{"workers"}, intSetter(func(c *AppConfig) *int { return &c.Workers })},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"LEVEL0", []string{"level0"}, func(c *AppConfig, v string) { c.Level0 = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) { c.MetricsAddr = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},

	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no" in any case
// and returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies B13PHASE_* values for flags that were not set on
// the command line. Priority: flags, then environment, then defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
