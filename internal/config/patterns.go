package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PatternSpec describes one vendor alert pattern. Kind is "entry" or "exit";
// Regex must expose named groups "ticker" and "price".
type PatternSpec struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Regex string `yaml:"regex"`
}

type patternsFile struct {
	Patterns []PatternSpec `yaml:"patterns"`
}

// LoadPatterns reads vendor alert patterns from a yaml file. Patterns are
// tried in file order, so more specific vendors go first.
func LoadPatterns(path string) ([]PatternSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f patternsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if len(f.Patterns) == 0 {
		return nil, fmt.Errorf("patterns file %s defines no patterns", path)
	}
	for _, p := range f.Patterns {
		if p.Kind != "entry" && p.Kind != "exit" {
			return nil, fmt.Errorf("pattern %q: kind must be 'entry' or 'exit', got %q", p.Name, p.Kind)
		}
		if p.Regex == "" {
			return nil, fmt.Errorf("pattern %q: regex cannot be empty", p.Name)
		}
	}
	return f.Patterns, nil
}
