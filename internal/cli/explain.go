package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/store"
	"github.com/roach88/jsonsql/internal/types"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	Table   string
	Columns []string // name:type
}

// ExplainResult shows how an expression is planned and compiled.
type ExplainResult struct {
	Expr   string   `json:"expr"`
	Plan   string   `json:"plan"`
	Fired  []string `json:"fired"`
	Type   string   `json:"type"`
	SQL    string   `json:"sql"`
	Params []any    `json:"params"`
}

func (r ExplainResult) String() string {
	fired := "none"
	if len(r.Fired) > 0 {
		fired = strings.Join(r.Fired, ", ")
	}
	params := make([]string, len(r.Params))
	for i, p := range r.Params {
		if s, ok := p.(string); ok {
			params[i] = fmt.Sprintf("%q", s)
		} else {
			params[i] = fmt.Sprint(p)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "expr:   %s\n", r.Expr)
	fmt.Fprintf(&b, "plan:   %s\n", r.Plan)
	fmt.Fprintf(&b, "fired:  %s\n", fired)
	fmt.Fprintf(&b, "type:   %s\n", r.Type)
	fmt.Fprintf(&b, "sql:    %s\n", r.SQL)
	fmt.Fprintf(&b, "params: %s", strings.Join(params, ", "))
	return b.String()
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain <expr.yaml>",
		Short: "Show the rewritten plan and compiled SQL of an expression",
		Long: `Read one expression from a YAML file, rewrite and type-check it against
the given table columns, and compile it to SQLite SQL.

Expression files use the scenario expression shapes:
  {column: doc}
  {lit: 'a'}
  {call: json_get, args: [...]}
  {cast: <expr>, to: bigint}
  {op: '->', left: <expr>, right: <expr>}
  {is_null: <expr>, negated: true}

Examples:
  jsonsql explain cast.yaml
  jsonsql explain --table events --column payload:text cast.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "t", "table name")
	cmd.Flags().StringSliceVar(&opts.Columns, "column", []string{"doc:text"}, "table column as name:type (repeatable)")

	return cmd
}

func runExplain(opts *ExplainOptions, path string, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read expression file", err)
	}
	e, err := expr.ParseYAML(data)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid expression", err)
	}
	defs, err := parseColumns(opts.Columns)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --column", err)
	}

	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	regOpts, err := cfg.RegisterOptions()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}

	ctx := cmd.Context()
	st, err := store.Open(":memory:", store.WithRegisterOptions(regOpts))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()
	if err := st.CreateTable(ctx, opts.Table, defs); err != nil {
		return WrapExitError(ExitCommandError, "failed to create table", err)
	}

	sel := expr.Select{Columns: []expr.Projection{{Expr: e}}, From: opts.Table}
	sp, query, params, err := st.Compile(ctx, sel)
	if err != nil {
		return WrapExitError(ExitFailure, "explain failed", err)
	}

	plan := sp.Columns[0]
	if params == nil {
		params = []any{}
	}
	return opts.formatter(cmd).Success(ExplainResult{
		Expr:   expr.String(e),
		Plan:   expr.String(plan.Expr),
		Fired:  plan.Fired,
		Type:   plan.Type.String(),
		SQL:    query,
		Params: params,
	})
}

func parseColumns(specs []string) ([]store.ColumnDef, error) {
	defs := make([]store.ColumnDef, 0, len(specs))
	for _, spec := range specs {
		name, typ, ok := strings.Cut(spec, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("%q: want name:type", spec)
		}
		t, err := types.Parse(typ)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", spec, err)
		}
		defs = append(defs, store.ColumnDef{Name: name, Type: t})
	}
	return defs, nil
}
