package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List open file browser windows and their tabs",
	Long: `List open file browser windows and their tabs in discovery order.

The first window listed is the one merge and open target.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	snap := a.discover()()
	defer snap.Release()

	return a.printer.Tabs(snap)
}
