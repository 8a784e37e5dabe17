// Command generate-golden writes the golden vectors read by the phase tests.
//
//	go run ./cmd/generate-golden -out internal/phase/testdata/golden.yaml
//	go run ./cmd/generate-golden -level0 internal/level0/testdata/builtin.yaml
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/agbru/b13phase/internal/level0"
	"github.com/agbru/b13phase/internal/phase"
)

// Golden is the document stored in testdata. Indices and vector components
// are decimal strings so that values beyond 64 bits survive YAML.
type Golden struct {
	Base     int            `yaml:"base"`
	FromInt  []FromIntCase  `yaml:"from_int"`
	Add      []AddCase      `yaml:"add"`
	Pack     []PackCase     `yaml:"pack"`
	Evaluate []EvaluateCase `yaml:"evaluate"`
}

// FromIntCase is one index-to-digits conversion.
type FromIntCase struct {
	Index  string `yaml:"index"`
	N      int    `yaml:"n"`
	Digits []int  `yaml:"digits,flow"`
}

// AddCase is one digit-array addition.
type AddCase struct {
	A     []int  `yaml:"a,flow"`
	B     []int  `yaml:"b,flow"`
	Sum   []int  `yaml:"sum,flow"`
	Carry uint64 `yaml:"carry"`
}

// PackCase is one packed encoding.
type PackCase struct {
	Digits []int  `yaml:"digits,flow"`
	Word   uint64 `yaml:"word"`
}

// EvaluateCase is one evaluation against the builtin level-0 table.
type EvaluateCase struct {
	Digits []int  `yaml:"digits,flow"`
	X      string `yaml:"x"`
	Y      string `yaml:"y"`
}

type indexInput struct {
	index *big.Int
	n     int
}

func pow(n int) *big.Int { return phase.TotalSubdivisions(n) }

func plus(x *big.Int, d int64) *big.Int { return new(big.Int).Add(x, big.NewInt(d)) }

func mustInt(s string) *big.Int {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad literal " + s)
	}
	return x
}

var (
	fromIntInputs = []indexInput{
		{big.NewInt(0), 1},
		{big.NewInt(3119), 1},
		{big.NewInt(3120), 2},
		{big.NewInt(123456789), 6},
		{big.NewInt(7592832000), 3},
		{plus(pow(5), -1), 5},
		{new(big.Int).Lsh(big.NewInt(1), 64), 7},
		{mustInt("1000000000000000000000000000000"), 9},
	}
	addInputs = [][2]indexInput{
		{{big.NewInt(1000), 6}, {big.NewInt(2500), 6}},
		{{plus(pow(3), -1), 3}, {big.NewInt(1), 3}},
		{{big.NewInt(3000), 5}, {big.NewInt(500), 5}},
		{{plus(new(big.Int).Mul(pow(4), big.NewInt(7)), 5), 5}, {plus(new(big.Int).Mul(pow(4), big.NewInt(3119)), 3118), 5}},
		{{mustInt("987654321987654321"), 8}, {mustInt("123456789123456789"), 8}},
	}
	packInputs = []phase.Digits{
		{0, 0, 0, 0, 0},
		{1, 2, 3, 4, 5},
		{3119, 3119, 3119, 3119, 3119},
		{780, 1560, 2340, 3119, 1},
	}
	evaluateInputs = []phase.Digits{
		{0},
		{780},
		{780, 0, 0},
		{1560, 0, 0},
		{1, 2, 3},
		{100, 1560, 7},
		{1234, 3000, 17, 42},
		{2340, 3119, 3119, 3119, 3119},
	}
)

// generate computes the golden document with the current implementation.
func generate() (Golden, error) {
	g := Golden{Base: phase.Base}

	for _, in := range fromIntInputs {
		d, err := phase.FromInt(in.index, in.n)
		if err != nil {
			return Golden{}, fmt.Errorf("from int %s: %w", in.index, err)
		}
		g.FromInt = append(g.FromInt, FromIntCase{Index: in.index.String(), N: in.n, Digits: d})
	}

	for _, pair := range addInputs {
		a, err := phase.FromInt(pair[0].index, pair[0].n)
		if err != nil {
			return Golden{}, err
		}
		b, err := phase.FromInt(pair[1].index, pair[1].n)
		if err != nil {
			return Golden{}, err
		}
		sum, carry, err := phase.Add(a, b)
		if err != nil {
			return Golden{}, fmt.Errorf("add %v %v: %w", a, b, err)
		}
		g.Add = append(g.Add, AddCase{A: a, B: b, Sum: sum, Carry: carry})
	}

	for _, d := range packInputs {
		p, err := phase.Pack(d)
		if err != nil {
			return Golden{}, fmt.Errorf("pack %v: %w", d, err)
		}
		g.Pack = append(g.Pack, PackCase{Digits: d, Word: uint64(p)})
	}

	table := level0.Builtin()
	for _, d := range evaluateInputs {
		v, err := phase.Evaluate(d, table)
		if err != nil {
			return Golden{}, fmt.Errorf("evaluate %v: %w", d, err)
		}
		g.Evaluate = append(g.Evaluate, EvaluateCase{Digits: d, X: v.X.String(), Y: v.Y.String()})
	}
	return g, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func run(out, table string) error {
	if table != "" {
		if err := level0.Save(table, level0.Builtin()); err != nil {
			return fmt.Errorf("write level-0 table: %w", err)
		}
	}
	if out == "" {
		return nil
	}
	g, err := generate()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(g)
	if err != nil {
		return err
	}
	header := []byte("# Generated by cmd/generate-golden. Do not edit.\n")
	return writeFile(out, append(header, data...))
}

func main() {
	out := flag.String("out", "internal/phase/testdata/golden.yaml", "golden vector file (empty to skip)")
	table := flag.String("level0", "", "also write the builtin level-0 table as YAML to this path")
	flag.Parse()

	if err := run(*out, *table); err != nil {
		fmt.Fprintln(os.Stderr, "generate-golden:", err)
		os.Exit(1)
	}
}
