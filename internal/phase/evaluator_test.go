package phase

import (
	"errors"
	"math/big"
	"testing"
)

// constantTable returns the same base vector for every digit.
func constantTable(x, y int64) Level0 {
	return Level0Func(func(int) (int64, int64) { return x, y })
}

// axisTable maps the four quarter-turn digits to the unit axes scaled by Base.
var axisTable = Level0Func(func(digit int) (int64, int64) {
	switch digit {
	case 0:
		return Base, 0
	case Base / 4:
		return 0, Base
	case Base / 2:
		return -Base, 0
	case 3 * Base / 4:
		return 0, -Base
	}
	return 0, 0
})

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		d     Digits
		table Level0
		wantX int64
		wantY int64
	}{
		{"single digit returns base vector", Digits{0}, axisTable, Base, 0},
		{"zero corrections keep the base vector", Digits{780, 0, 0}, axisTable, 0, Base},
		{"half turn", Digits{1560, 0, 0}, axisTable, -Base, 0},
		{"three quarter turn", Digits{2340, 0, 0}, axisTable, 0, -Base},
		{"one correction", Digits{0, 1560}, constantTable(Base, 0), Base, 1560},
		{"floor rounds toward negative infinity", Digits{0, 1}, constantTable(-1, 1), -2, 0},
		{"truncation at second level", Digits{0, 0, 1}, constantTable(Base, 0), Base, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := Evaluate(tt.d, tt.table)
			if err != nil {
				t.Fatal(err)
			}
			if v.X.Cmp(big.NewInt(tt.wantX)) != 0 || v.Y.Cmp(big.NewInt(tt.wantY)) != 0 {
				t.Errorf("Evaluate(%v) = %s, want (%d, %d)", tt.d, v, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		d       Digits
		table   Level0
		wantErr error
	}{
		{"empty digits", Digits{}, axisTable, ErrInvalidArgument},
		{"nil table", Digits{0}, nil, ErrInvalidArgument},
		{"digit out of range", Digits{0, Base}, axisTable, ErrInvalidDigit},
		{"negative coarse digit", Digits{-1}, axisTable, ErrInvalidDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Evaluate(tt.d, tt.table); !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate(%v) error = %v, want %v", tt.d, err, tt.wantErr)
			}
		})
	}
}

func TestEvaluate_QueriesOnlyCoarseDigit(t *testing.T) {
	t.Parallel()
	var queried []int
	table := Level0Func(func(digit int) (int64, int64) {
		queried = append(queried, digit)
		return Base, 0
	})
	if _, err := Evaluate(Digits{17, 5, 9, 3000}, table); err != nil {
		t.Fatal(err)
	}
	if len(queried) != 1 || queried[0] != 17 {
		t.Errorf("level-0 table queried with %v, want [17]", queried)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()
	d := Digits{123, 456, 789, 1011, 1213, 1415, 1617, 1819}
	table := constantTable(2000, -1500)
	first, err := Evaluate(d, table)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Evaluate(d, table)
		if err != nil {
			t.Fatal(err)
		}
		if again.X.Cmp(first.X) != 0 || again.Y.Cmp(first.Y) != 0 {
			t.Fatalf("run %d: %s, first run %s", i, again, first)
		}
	}
}

func TestVector_MagnitudeRatio(t *testing.T) {
	t.Parallel()
	v := Vector{X: big.NewInt(Base), Y: big.NewInt(0)}
	if r := v.MagnitudeRatio(); r != 1 {
		t.Errorf("MagnitudeRatio() = %v, want 1", r)
	}
	v = Vector{X: big.NewInt(Base), Y: big.NewInt(Base)}
	if r := v.MagnitudeRatio(); r != 2 {
		t.Errorf("MagnitudeRatio() = %v, want 2", r)
	}
}

func TestEvaluateSteps(t *testing.T) {
	t.Parallel()
	d := Digits{0, 1560, 7}
	table := constantTable(Base, 0)
	steps, err := EvaluateSteps(d, table)
	if err != nil {
		t.Fatalf("EvaluateSteps() error = %v", err)
	}
	if len(steps) != len(d) {
		t.Fatalf("len(steps) = %d, want %d", len(steps), len(d))
	}
	if steps[0].String() != "(3120, 0)" || steps[1].String() != "(3120, 1560)" {
		t.Errorf("steps = %v", steps)
	}
	final, err := Evaluate(d, table)
	if err != nil {
		t.Fatal(err)
	}
	last := steps[len(steps)-1]
	if last.X.Cmp(final.X) != 0 || last.Y.Cmp(final.Y) != 0 {
		t.Errorf("last step %s, Evaluate %s", last, final)
	}

	if _, err := EvaluateSteps(nil, table); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EvaluateSteps(nil) error = %v, want ErrInvalidArgument", err)
	}
}
