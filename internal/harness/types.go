package harness

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every case passed.
	Pass bool `json:"pass"`

	// Cases holds one entry per scenario case, in order.
	Cases []CaseResult `json:"cases"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// CaseResult records what both hosts produced for one case.
type CaseResult struct {
	Name string `json:"name"`
	// Input is the expression as written.
	Input string `json:"input"`
	// Plan is the rewritten expression. Empty when planning failed.
	Plan  string   `json:"plan,omitempty"`
	Fired []string `json:"fired,omitempty"`
	Type  string   `json:"type,omitempty"`
	// Memory and SQLite hold the formatted cells of each host.
	Memory []string `json:"memory"`
	SQLite []string `json:"sqlite"`
	// Error is the planning error, for cases that expect one.
	Error string `json:"error,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
