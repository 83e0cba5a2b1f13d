package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/types"
)

// EvalResult is the outcome of evaluating one function call.
type EvalResult struct {
	Expr  string `json:"expr"`
	Plan  string `json:"plan"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (r EvalResult) String() string {
	return r.Value
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <function> <json> [path...]",
		Short: "Evaluate one function on one document",
		Long: `Evaluate a JSON function on a single document in the in-memory engine.

Path arguments that parse as integers are array indices. Arguments
wrapped in double quotes are decoded as JSON strings, so "0" is the
object key 0 rather than an index. Everything else is an object key.

Examples:
  jsonsql eval json_get_int '{"a": [1, 2]}' a 1
  jsonsql eval json_get_str '{"0": "zero"}' '"0"'
  jsonsql eval json_extract '{"a": {"b": true}}' '$.a.b' --format json`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], args[1], args[2:], cmd)
		},
	}
}

func runEval(opts *RootOptions, name, doc string, path []string, cmd *cobra.Command) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	session, _, err := newSession(cfg)
	if err != nil {
		return err
	}

	call := expr.Call{Name: name, Args: []expr.Expr{expr.Literal{Value: types.DString(doc)}}}
	for _, p := range path {
		d, err := parsePathArg(p)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid path argument", err)
		}
		call.Args = append(call.Args, expr.Literal{Value: d})
	}

	plan, err := session.Plan(call, engine.Schema{})
	if err != nil {
		return WrapExitError(ExitCommandError, "plan failed", err)
	}
	vec, err := session.Eval(plan, column.NewBatch(1))
	if err != nil {
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}

	return opts.formatter(cmd).Success(EvalResult{
		Expr:  expr.String(call),
		Plan:  expr.String(plan.Expr),
		Type:  plan.Type.String(),
		Value: column.Format(vec, 0),
	})
}

// parsePathArg reads one command-line path element.
func parsePathArg(s string) (types.Datum, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return types.DInt(i), nil
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		var key string
		if err := json.Unmarshal([]byte(s), &key); err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		return types.DString(key), nil
	}
	return types.DString(s), nil
}
