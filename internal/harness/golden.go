package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a result as stable text for golden comparison.
func Snapshot(name string, r *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	for _, c := range r.Cases {
		fmt.Fprintf(&b, "\ncase: %s\n", c.Name)
		fmt.Fprintf(&b, "  expr:  %s\n", c.Input)
		if c.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", c.Error)
			continue
		}
		fired := "none"
		if len(c.Fired) > 0 {
			fired = strings.Join(c.Fired, ", ")
		}
		fmt.Fprintf(&b, "  plan:  %s\n", c.Plan)
		fmt.Fprintf(&b, "  fired: %s\n", fired)
		fmt.Fprintf(&b, "  type:  %s\n", c.Type)
		fmt.Fprintf(&b, "  cells: %s\n", strings.Join(c.Memory, " | "))
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario, fails t on any case error, and compares
// the snapshot with testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		t.Error(e)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Snapshot(scenario.Name, result))
	return nil
}
