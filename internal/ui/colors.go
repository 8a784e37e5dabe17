package ui

// Color accessors return the escape code of the active theme, or "" when
// colors are disabled.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }

// Colorize wraps s in the given color code and a reset. It returns s
// unchanged when the code is empty.
func Colorize(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset()
}
