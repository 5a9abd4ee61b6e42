package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/orchestrator"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge every file browser window into tabs of the first one",
	Long: `Merge every open file browser window into the first window found.

Each tab outside the first window is recreated there as a new tab, then the
source windows are closed. Tabs that fail to open are reported and skipped.

Exit codes:
  0  merged, or nothing to merge
  1  usage or configuration error
  3  the first window has no tab strip`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	flags := mergeCmd.Flags()
	flags.Bool("dry-run", false, "show what would be merged without changing anything")
	flags.Bool("no-close", false, "leave source windows open after merging")
	flags.StringSlice("exclude", nil, "glob pattern for tab URLs to leave alone (repeatable)")
	flags.Bool("close-excluded", false, "close windows even when they hold excluded tabs")
}

func runMerge(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noClose, _ := cmd.Flags().GetBool("no-close")
	extra, _ := cmd.Flags().GetStringSlice("exclude")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	patterns := append(append([]string{}, a.cfg.Merge.Exclude...), extra...)
	exclude, err := explorer.CompileExcludes(patterns)
	if err != nil {
		return a.fail(errors.NewExitError(errors.ExitUsage,
			errors.NewValidationError("invalid exclude pattern").WithField("exclude").WithCause(err)))
	}

	merger := orchestrator.NewMerger(a.host(), orchestrator.MergeOptions{
		Classify: explorer.ClassifyOptions{
			Exclude:       exclude,
			CloseExcluded: a.cfg.Merge.CloseExcluded,
		},
		TabHost:     a.tabHostOptions(),
		DryRun:      dryRun,
		KeepSources: noClose || !a.cfg.Merge.CloseSources,
	}, a.logger.WithPhase("merge"))

	report, err := merger.Run()
	if err != nil {
		return a.fail(err)
	}
	return a.printer.Merge(report)
}
