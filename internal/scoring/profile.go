package scoring

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Profile is a named set of scoring weights loaded from YAML.
type Profile struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Weights     Weights `yaml:"weights"`
}

// LoadBuiltinProfile loads an embedded profile by name.
func LoadBuiltinProfile(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown scoring profile %q: %w", name, err)
	}
	return parseProfile(data, name)
}

// LoadProfileFile loads a profile from a YAML file on disk.
func LoadProfileFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	return parseProfile(data, path)
}

func parseProfile(data []byte, source string) (*Profile, error) {
	// Omitted weight keys keep their defaults; explicit zeros are honored.
	p := Profile{Weights: DefaultWeights()}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", source, err)
	}
	for _, pair := range []struct {
		field string
		value float64
	}{
		{"base_score", p.Weights.BaseScore},
		{"style_issues", p.Weights.StyleIssues},
		{"security_findings", p.Weights.SecurityFindings},
		{"complexity", p.Weights.Complexity},
		{"test_coverage", p.Weights.TestCoverage},
	} {
		if pair.value < 0 {
			return nil, fmt.Errorf("profile %q: %s must be non-negative", source, pair.field)
		}
	}
	return &p, nil
}

// ListBuiltinProfiles returns the names of the embedded profiles.
func ListBuiltinProfiles() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}
