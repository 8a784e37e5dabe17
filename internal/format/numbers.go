package format

import (
	"fmt"
	"math/big"

	"github.com/dustin/go-humanize"
)

// FormatBigGrouped renders x with comma thousands separators, e.g.
// 30,371,328,000 for BASE^3.
func FormatBigGrouped(x *big.Int) string {
	if x == nil {
		return "0"
	}
	return humanize.BigComma(x)
}

// FormatDegrees renders an angular step in degrees, switching to scientific
// notation once the step is too small for fixed notation to be useful.
func FormatDegrees(deg float64) string {
	if deg == 0 || deg >= 1e-4 {
		return fmt.Sprintf("%.6f°", deg)
	}
	return fmt.Sprintf("%.4e°", deg)
}

// FormatRatio renders a magnitude ratio with six decimals.
func FormatRatio(r float64) string {
	return fmt.Sprintf("%.6f", r)
}

// FormatBytes renders a byte count with binary units ("1.0 MiB").
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}
