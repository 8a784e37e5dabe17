package cli

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/agbru/b13phase/internal/phase"
)

// ParseIndex parses a decimal phase index of any size. Range checks are left
// to phase.FromInt so that they surface as phase errors.
func ParseIndex(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid phase index %q", s)
	}
	return x, nil
}

// ParseDigitList parses digits separated by commas and/or spaces, most
// significant first ("1,2,3" or "1 2 3" or "[1 2 3]"). Values are not range
// checked here.
func ParseDigitList(s string) (phase.Digits, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty digit list")
	}
	d := make(phase.Digits, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid digit %q at position %d", f, i)
		}
		d[i] = v
	}
	return d, nil
}

// ParseWord parses a packed word given in decimal or with a 0x prefix.
func ParseWord(s string) (phase.Packed, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid packed word %q: %w", s, err)
	}
	return phase.Packed(v), nil
}
