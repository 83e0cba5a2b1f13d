package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is a failed case check with enough context to debug it.
type AssertionError struct {
	Case     string
	Check    string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "case %q: %s\n", e.Case, e.Check)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// checkCase compares one case result with its expectations. It returns
// every failed check.
func checkCase(c *Case, got CaseResult, memErr, sqlErr error) []error {
	var errs []error
	fail := func(check, expected, actual string) {
		errs = append(errs, &AssertionError{Case: c.Name, Check: check, Expected: expected, Actual: actual})
	}

	if c.Error != "" {
		for host, err := range map[string]error{"memory": memErr, "sqlite": sqlErr} {
			if err == nil {
				fail(host+" error", c.Error, "no error")
			} else if !strings.Contains(err.Error(), c.Error) {
				fail(host+" error", c.Error, err.Error())
			}
		}
		return sortErrors(errs)
	}

	if memErr != nil {
		fail("memory host", "success", memErr.Error())
	}
	if sqlErr != nil {
		fail("sqlite host", "success", sqlErr.Error())
	}
	if memErr != nil || sqlErr != nil {
		return errs
	}

	if c.Plan != "" && got.Plan != c.Plan {
		fail("plan", c.Plan, got.Plan)
	}
	if !slices.Equal(got.Memory, got.SQLite) {
		fail("hosts agree", renderCells(got.Memory), renderCells(got.SQLite))
	}
	if c.Expect != nil && !slices.Equal(c.Expect, got.Memory) {
		fail("cells", renderCells(c.Expect), renderCells(got.Memory))
	}
	return errs
}

// sortErrors orders errors by message so map iteration does not leak into
// the output.
func sortErrors(errs []error) []error {
	slices.SortFunc(errs, func(a, b error) int { return strings.Compare(a.Error(), b.Error()) })
	return errs
}

func renderCells(cells []string) string {
	return "[" + strings.Join(cells, ", ") + "]"
}
