// Package ui holds the color themes shared by the CLI output, the REPL and the
// phase explorer, and decides whether color is enabled for a run.
package ui
