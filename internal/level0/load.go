package level0

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agbru/b13phase/internal/phase"
)

// document is the on-disk layout of a level-0 table.
//
//	base: 3120
//	cos: [3120, 3120, ...]
//	sin: [0, 6, ...]
type document struct {
	Base int     `yaml:"base"`
	Cos  []int64 `yaml:"cos"`
	Sin  []int64 `yaml:"sin"`
}

// Load reads a level-0 table from a YAML file.
func Load(path string) (*Slice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level-0 table: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a level-0 table from YAML. The document must declare
// base 3120 and hold exactly that many cos and sin entries.
func Parse(data []byte) (*Slice, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse level-0 table: %w", err)
	}
	if doc.Base != phase.Base {
		return nil, fmt.Errorf("level-0 table declares base %d, want %d", doc.Base, phase.Base)
	}
	s := &Slice{Cos: doc.Cos, Sin: doc.Sin}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// Marshal encodes s as a YAML level-0 table document.
func Marshal(s *Slice) ([]byte, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	return yaml.Marshal(document{Base: phase.Base, Cos: s.Cos, Sin: s.Sin})
}

// Save writes s to path as a YAML level-0 table.
func Save(path string, s *Slice) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write level-0 table: %w", err)
	}
	return nil
}
