package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tsbind/internal/config"
)

// DefaultNamespace is used when a scenario does not name one.
const DefaultNamespace = "Test"

// Scenario defines one translation test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Namespace is printed on the header line. Defaults to DefaultNamespace.
	Namespace string `yaml:"namespace,omitempty"`

	// Config overrides individual settings; zero fields keep their defaults.
	Config config.Config `yaml:"config,omitempty"`

	// Source is the declaration text to translate.
	Source string `yaml:"source,omitempty"`

	// SourceFile is read instead of Source when set. Relative paths are
	// resolved against the scenario file's directory.
	SourceFile string `yaml:"source_file,omitempty"`

	// Assertions are checked against the printed lines.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion types.
const (
	AssertContains    = "contains"
	AssertNotContains = "not_contains"
	AssertOrder       = "order"
	AssertLineCount   = "line_count"
	AssertDiagnostics = "diagnostics"
	AssertError       = "error"
)

// Assertion is a single check on a scenario's output.
type Assertion struct {
	// Type selects the check. See the package documentation.
	Type string `yaml:"type"`

	// Line is the expected line for contains and the forbidden substring
	// for not_contains.
	Line string `yaml:"line,omitempty"`

	// Lines are the expected lines for order, in order.
	Lines []string `yaml:"lines,omitempty"`

	// Count is the expected number for line_count and diagnostics.
	Count int `yaml:"count,omitempty"`

	// Error is the expected error substring for error.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads a scenario from a YAML file. Unknown fields are
// rejected and source_file is resolved relative to the file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if s.SourceFile != "" && !filepath.IsAbs(s.SourceFile) {
		s.SourceFile = filepath.Join(filepath.Dir(path), s.SourceFile)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Source == "" && s.SourceFile == "" {
		return fmt.Errorf("source or source_file is required")
	}
	if s.Source != "" && s.SourceFile != "" {
		return fmt.Errorf("source and source_file are mutually exclusive")
	}
	if s.SourceFile != "" {
		if _, err := os.Stat(s.SourceFile); os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", s.SourceFile)
		}
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertContains, AssertNotContains:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for %s", index, a.Type)
		}
	case AssertOrder:
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines list is required for order", index)
		}
	case AssertLineCount, AssertDiagnostics:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertError:
		if a.Error == "" {
			return fmt.Errorf("assertions[%d]: error is required for error", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
