// Command tabmerge consolidates file browser windows into tabs.
package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/tabmerge/internal/cmd"
	"github.com/Iron-Ham/tabmerge/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.ErrorMessage(err))
		os.Exit(errors.ExitCode(err))
	}
}
