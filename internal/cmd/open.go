package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/tabmerge/internal/orchestrator"
)

var openCmd = &cobra.Command{
	Use:   "open <folder>",
	Short: "Open a folder as a new tab in the first file browser window",
	Long: `Open a folder as a new tab in the first file browser window found.

With no window open, or when the tab cannot be created, the folder is
opened by the shell in a new window instead.

Exit codes:
  0  folder opened
  1  missing or empty folder argument
  2  the shell could not open the folder
  3  the first window has no tab strip`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	opener := orchestrator.NewOpener(a.host(), orchestrator.OpenOptions{
		TabHost: a.tabHostOptions(),
		Resolve: resolvePath,
	}, a.logger.WithPhase("open"))

	report, err := opener.Run(args[0])
	if err != nil {
		return a.fail(err)
	}
	return a.printer.Open(report)
}
