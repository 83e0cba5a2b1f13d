package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jsonsql/internal/config"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/types"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Options configures the function library. Unset fields keep the
	// config defaults.
	Options config.Config `yaml:"options,omitempty"`

	// Table is loaded into both hosts before the cases run.
	Table Table `yaml:"table"`

	// Cases are evaluated in order.
	Cases []Case `yaml:"cases"`
}

// Table is the scenario's input data.
type Table struct {
	Name    string       `yaml:"name"`
	Columns []ColumnSpec `yaml:"columns"`
	// Rows hold one YAML scalar per column. Union columns take JSON text and
	// text[] columns take a sequence of strings.
	Rows [][]any `yaml:"rows"`
}

// ColumnSpec declares one table column.
type ColumnSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Case is one expression to evaluate.
type Case struct {
	Name string `yaml:"name"`

	// Expr is the projected expression.
	Expr expr.Node `yaml:"expr"`

	// Where optionally filters rows.
	Where *expr.Node `yaml:"where,omitempty"`

	// Plan is the expected rewritten expression, as expr.String renders it.
	Plan string `yaml:"plan,omitempty"`

	// Expect lists the expected cells, one per surviving row.
	Expect []string `yaml:"expect,omitempty"`

	// Error expects planning to fail with a message containing this text.
	Error string `yaml:"error,omitempty"`
}

// Select returns the statement the case runs against table.
func (c *Case) Select(table string) expr.Select {
	sel := expr.Select{
		Columns: []expr.Projection{{Expr: c.Expr.Expr}},
		From:    table,
	}
	if c.Where != nil {
		sel.Where = c.Where.Expr
	}
	return sel
}

// ParseScenario parses scenario YAML. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{Options: config.Default()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := s.Options.RegisterOptions(); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if s.Table.Name == "" {
		return fmt.Errorf("table.name is required")
	}
	if len(s.Table.Columns) == 0 {
		return fmt.Errorf("table.columns list is required and must be non-empty")
	}
	for i, c := range s.Table.Columns {
		if c.Name == "" {
			return fmt.Errorf("table.columns[%d]: name is required", i)
		}
		if _, err := types.Parse(c.Type); err != nil {
			return fmt.Errorf("table.columns[%d]: %w", i, err)
		}
	}
	for i, row := range s.Table.Rows {
		if len(row) != len(s.Table.Columns) {
			return fmt.Errorf("table.rows[%d]: has %d values, want %d", i, len(row), len(s.Table.Columns))
		}
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if c.Expr.Expr == nil {
			return fmt.Errorf("cases[%d]: expr is required", i)
		}
		if c.Error != "" && c.Expect != nil {
			return fmt.Errorf("cases[%d]: expect and error are exclusive", i)
		}
	}
	return nil
}
