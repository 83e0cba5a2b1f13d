package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
}

// QueryResult holds the rows of a raw SQL query.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// String renders the result as tab-separated lines with a header.
func (r QueryResult) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Columns, "\t"))
	for _, row := range r.Rows {
		b.WriteByte('\n')
		for i, v := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			if v == nil {
				b.WriteString("NULL")
			} else {
				fmt.Fprint(&b, v)
			}
		}
	}
	return b.String()
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run SQL on SQLite with the JSON functions installed",
		Long: `Run a SQL statement on a SQLite database. Every JSON function, its
aliases and the jsonsql_cast helper are available to the statement.

The database defaults to the config's database setting (":memory:").

Examples:
  jsonsql query "SELECT json_get_int('{\"a\": 1}', 'a')"
  jsonsql query --db ./events.db "SELECT json_get_str(payload, 'user') FROM events"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	return cmd
}

func runQuery(opts *QueryOptions, query string, cmd *cobra.Command) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	regOpts, err := cfg.RegisterOptions()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}
	path := opts.Database
	if path == "" {
		path = cfg.Database
	}

	st, err := store.Open(path, store.WithRegisterOptions(regOpts))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	rows, err := st.Query(cmd.Context(), query)
	if err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}
	result := QueryResult{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return WrapExitError(ExitFailure, "query failed", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}

	return opts.formatter(cmd).Success(result)
}
