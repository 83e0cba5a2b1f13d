// Command jsonsql evaluates typed JSON accessors in memory or inside SQLite.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/jsonsql/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
