// Package orchestrator drives the two user-facing flows: merging every
// file-browser window into the first one, and opening a folder as a tab.
//
// Both flows are strictly sequential. Each tab creation re-baselines against
// live host state, so nothing here may run two creations at once.
package orchestrator

import (
	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
	"github.com/Iron-Ham/tabmerge/internal/newtab"
)

// MergeOptions configures a Merger.
type MergeOptions struct {
	Classify explorer.ClassifyOptions
	TabHost  TabHostOptions
	// DryRun stops after planning: no commands are sent and nothing closes.
	DryRun bool
	// KeepSources leaves source windows open after merging.
	KeepSources bool
}

// MergeReport summarizes one merge run.
type MergeReport struct {
	Target   explorer.WindowID
	Windows  int
	InTarget int
	// Queued is the number of tabs planned for merging.
	Queued int
	// Moved is the number of tabs successfully recreated in the target.
	// Moved < Queued is an expected outcome, not an error.
	Moved    int
	Failed   []string
	Excluded []string
	Closed   []explorer.WindowID
	// Planned lists the merge URLs; filled on every run.
	Planned []string
	DryRun  bool
}

// Nothing reports whether the run found nothing to merge.
func (r MergeReport) Nothing() bool {
	return r.Queued == 0
}

// Merger consolidates every file-browser window's tabs into the first one.
type Merger struct {
	host   Host
	opts   MergeOptions
	logger *logging.Logger
}

// NewMerger creates a Merger.
func NewMerger(host Host, opts MergeOptions, logger *logging.Logger) *Merger {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Merger{host: host, opts: opts, logger: logger}
}

// Run performs one merge. It fails only when the target window has no
// tab-host control; individual tab failures are reported in MergeReport.
func (m *Merger) Run() (MergeReport, error) {
	report := MergeReport{DryRun: m.opts.DryRun}

	snap := m.host.Discover()
	c := explorer.Classify(snap, m.opts.Classify, m.logger.WithPhase("classify"))
	snap.Release()

	report.Windows = len(snap.Order)
	report.Target = c.Target
	report.InTarget = c.InTarget
	report.Queued = len(c.MergeList)
	report.Planned = c.MergeList
	report.Excluded = c.Excluded

	if snap.Empty() {
		m.logger.Info("no file browser windows detected")
		return report, nil
	}
	if c.Empty() {
		m.logger.Info("nothing to merge", "windows", report.Windows, "in_target", c.InTarget)
		return report, nil
	}

	logger := m.logger.WithWindow(uintptr(c.Target))

	tabHost, ok := m.host.findTabHost(c.Target, m.opts.TabHost)
	if !ok {
		logger.Error("tab host control not found in target window")
		return report, errors.NewNotFoundError("tab host", c.Target.String()).WithCause(errors.ErrTabHostNotFound)
	}

	if m.opts.DryRun {
		logger.Info("dry run, not merging", "tabs", report.Queued, "close", len(c.Close))
		return report, nil
	}

	logger.Info("merging tabs", "tabs", report.Queued, "sources", len(c.Close))
	for _, url := range c.MergeList {
		out := m.host.Tabs.CreateAndNavigate(newtab.Request{
			Window:  c.Target,
			TabHost: tabHost,
			URL:     url,
		})
		if out.Success() {
			report.Moved++
			continue
		}
		report.Failed = append(report.Failed, url)
		logger.Warn("failed to create tab", "url", url, "state", out.State.String(), "error", out.Err)
	}

	if !m.opts.KeepSources {
		report.Closed = m.closeSources(c)
	}

	logger.Info("merge complete", "moved", report.Moved, "failed", len(report.Failed), "closed", len(report.Closed))
	return report, nil
}

// closeSources requests every still-open source window to close.
func (m *Merger) closeSources(c explorer.Classification) []explorer.WindowID {
	logger := m.logger.WithPhase("close")

	var closed []explorer.WindowID
	for _, id := range c.Close {
		if id == 0 || id == c.Target || !m.host.Desktop.IsWindow(id) {
			continue
		}
		if err := m.host.Desktop.CloseWindow(id); err != nil {
			logger.Warn("failed to close window", "hwnd", id.String(), "error", err)
			continue
		}
		closed = append(closed, id)
	}
	return closed
}
