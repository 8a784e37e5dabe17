// Package level0 provides the coarse (cos, sin) base vectors consumed by the
// phase evaluator: a builtin table computed from math.Cos/math.Sin, and a
// loader for tables stored as YAML documents.
package level0

import (
	"fmt"
	"math"
	"sync"

	"github.com/agbru/b13phase/internal/phase"
)

// Slice is a level-0 table held as two parallel slices indexed by digit.
// It implements phase.Level0.
type Slice struct {
	Cos []int64
	Sin []int64
}

var _ phase.Level0 = (*Slice)(nil)

// Vector returns the base vector for digit. It panics when digit is outside
// the table, which Evaluate rules out by validating digits first.
func (s *Slice) Vector(digit int) (x, y int64) {
	return s.Cos[digit], s.Sin[digit]
}

// Len returns the number of entries in the table.
func (s *Slice) Len() int { return len(s.Cos) }

// Check verifies that the table has exactly phase.Base entries in each column.
func (s *Slice) Check() error {
	if len(s.Cos) != phase.Base || len(s.Sin) != phase.Base {
		return fmt.Errorf("level-0 table has %d cos and %d sin entries, want %d each",
			len(s.Cos), len(s.Sin), phase.Base)
	}
	return nil
}

var (
	builtinOnce  sync.Once
	builtinTable *Slice
)

// Builtin returns the default level-0 table: for each digit d,
//
//	cos = round(Base * cos(2πd/Base)), sin = round(Base * sin(2πd/Base))
//
// The table is computed once and shared; callers must not modify it.
func Builtin() *Slice {
	builtinOnce.Do(func() {
		builtinTable = Generate(phase.Base)
	})
	return builtinTable
}

// Generate computes a table of phase.Base vectors with the given amplitude.
func Generate(amplitude float64) *Slice {
	s := &Slice{
		Cos: make([]int64, phase.Base),
		Sin: make([]int64, phase.Base),
	}
	for d := 0; d < phase.Base; d++ {
		theta := 2 * math.Pi * float64(d) / phase.Base
		s.Cos[d] = int64(math.Round(amplitude * math.Cos(theta)))
		s.Sin[d] = int64(math.Round(amplitude * math.Sin(theta)))
	}
	return s
}
