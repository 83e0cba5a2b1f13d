package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/register"
)

// FunctionInfo describes one registered function.
type FunctionInfo struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases,omitempty"`
	Signature string   `json:"signature"`
	Doc       string   `json:"doc"`
}

// OperatorInfo maps an operator to the function it becomes.
type OperatorInfo struct {
	Operator string `json:"operator"`
	Function string `json:"function"`
}

// FunctionsResult is the registered function library.
type FunctionsResult struct {
	Functions []FunctionInfo `json:"functions"`
	Operators []OperatorInfo `json:"operators"`
	Rules     []string       `json:"rules"`
}

func (r FunctionsResult) String() string {
	var b strings.Builder
	for _, fn := range r.Functions {
		fmt.Fprintf(&b, "%s(%s)\n", fn.Name, fn.Signature)
		if len(fn.Aliases) > 0 {
			fmt.Fprintf(&b, "    aliases: %s\n", strings.Join(fn.Aliases, ", "))
		}
		fmt.Fprintf(&b, "    %s\n", fn.Doc)
	}
	b.WriteString("\nOperators:\n")
	for _, op := range r.Operators {
		fmt.Fprintf(&b, "  %-3s %s\n", op.Operator, op.Function)
	}
	fmt.Fprintf(&b, "\nRules: %s", strings.Join(r.Rules, ", "))
	return b.String()
}

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "functions",
		Short:         "List registered functions, operators and rewrite rules",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFunctions(rootOpts, cmd)
		},
	}
}

func listFunctions(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	regOpts, err := cfg.RegisterOptions()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}
	catalog, err := register.NewCatalog(regOpts)
	if err != nil {
		return err
	}

	result := FunctionsResult{}
	for _, fn := range catalog.Functions {
		result.Functions = append(result.Functions, FunctionInfo{
			Name:      fn.Name,
			Aliases:   fn.Aliases,
			Signature: fn.Signature,
			Doc:       fn.Doc,
		})
	}
	for op, name := range catalog.Operators {
		result.Operators = append(result.Operators, OperatorInfo{Operator: string(op), Function: name})
	}
	slices.SortFunc(result.Operators, func(a, b OperatorInfo) int {
		return strings.Compare(a.Operator, b.Operator)
	})
	for _, r := range catalog.Rules {
		result.Rules = append(result.Rules, r.Name())
	}

	return opts.formatter(cmd).Success(result)
}
