package output

import (
	"fmt"

	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/orchestrator"
	"github.com/Iron-Ham/tabmerge/internal/util"
)

// TabView is the serialized form of a discovered tab.
type TabView struct {
	Window string `json:"window" yaml:"window"`
	URL    string `json:"url" yaml:"url"`
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	Target bool   `json:"target" yaml:"target"`
}

// ListView is the serialized form of a snapshot.
type ListView struct {
	Windows []string  `json:"windows" yaml:"windows"`
	Tabs    []TabView `json:"tabs" yaml:"tabs"`
}

// MergeView is the serialized form of a MergeReport.
type MergeView struct {
	Target   string   `json:"target,omitempty" yaml:"target,omitempty"`
	Windows  int      `json:"windows" yaml:"windows"`
	InTarget int      `json:"in_target" yaml:"in_target"`
	Queued   int      `json:"queued" yaml:"queued"`
	Moved    int      `json:"moved" yaml:"moved"`
	DryRun   bool     `json:"dry_run" yaml:"dry_run"`
	Planned  []string `json:"planned,omitempty" yaml:"planned,omitempty"`
	Failed   []string `json:"failed,omitempty" yaml:"failed,omitempty"`
	Excluded []string `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Closed   []string `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// OpenView is the serialized form of an OpenReport.
type OpenView struct {
	Path   string `json:"path" yaml:"path"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Method string `json:"method" yaml:"method"`
}

// NewListView converts a snapshot.
func NewListView(snap explorer.Snapshot) ListView {
	target, _ := snap.Order.Target()
	view := ListView{
		Windows: make([]string, 0, len(snap.Order)),
		Tabs:    make([]TabView, 0, len(snap.Tabs)),
	}
	for _, w := range snap.Order {
		view.Windows = append(view.Windows, w.String())
	}
	for _, tab := range snap.Tabs {
		tv := TabView{
			Window: tab.Window.String(),
			URL:    tab.URL,
			Target: tab.Window == target,
		}
		if tab.Token.Known() {
			tv.Token = fmt.Sprintf("0x%X", uintptr(tab.Token))
		}
		view.Tabs = append(view.Tabs, tv)
	}
	return view
}

// NewMergeView converts a merge report.
func NewMergeView(r orchestrator.MergeReport) MergeView {
	view := MergeView{
		Windows:  r.Windows,
		InTarget: r.InTarget,
		Queued:   r.Queued,
		Moved:    r.Moved,
		DryRun:   r.DryRun,
		Planned:  r.Planned,
		Failed:   r.Failed,
		Excluded: r.Excluded,
	}
	if r.Target != 0 {
		view.Target = r.Target.String()
	}
	for _, w := range r.Closed {
		view.Closed = append(view.Closed, w.String())
	}
	return view
}

// NewOpenView converts an open report.
func NewOpenView(r orchestrator.OpenReport) OpenView {
	view := OpenView{Path: r.Path, Method: string(r.Method)}
	if r.Target != 0 {
		view.Target = r.Target.String()
	}
	return view
}

// Tabs prints the windows and tabs of a snapshot grouped by window.
func (p *Printer) Tabs(snap explorer.Snapshot) error {
	view := NewListView(snap)
	if ok, err := p.structured(view); ok {
		return err
	}

	if snap.Empty() {
		p.println(p.styles.Muted.Render("No file browser windows open."))
		return nil
	}

	target, _ := snap.Order.Target()
	urlWidth := p.width - 6
	for i, w := range snap.Order {
		if i > 0 {
			p.println("")
		}
		header := p.styles.Window.Render(w.String())
		if w == target {
			header += " " + p.styles.Target.Render("(target)")
		}
		p.println(header)
		p.println(p.rule(40))

		tabs := snap.InWindow(w)
		if len(tabs) == 0 {
			p.println("  " + p.styles.Muted.Render("no tabs"))
			continue
		}
		for j, tab := range tabs {
			url := tab.URL
			if url == "" {
				url = p.styles.Muted.Render("(unknown location)")
			} else {
				url = p.styles.URL.Render(util.TruncateMiddle(url, urlWidth))
			}
			p.printf("  %s %s\n", p.styles.Token.Render(util.PadRight(fmt.Sprintf("%d.", j+1), 3)), url)
		}
	}
	return nil
}

// Merge prints a merge report.
func (p *Printer) Merge(r orchestrator.MergeReport) error {
	if ok, err := p.structured(NewMergeView(r)); ok {
		return err
	}

	if r.Windows == 0 {
		p.println(p.styles.Muted.Render("No file browser windows open."))
		return nil
	}

	title := "Merge"
	if r.DryRun {
		title = "Merge plan (dry run)"
	}
	p.println(p.styles.Title.Render(title))
	p.printf("  %s %s\n", util.PadRight("target", 10), p.styles.Window.Render(r.Target.String()))
	p.printf("  %s %d\n", util.PadRight("windows", 10), r.Windows)
	p.printf("  %s %d\n", util.PadRight("in target", 10), r.InTarget)

	if r.Nothing() {
		p.println(p.styles.Muted.Render("Nothing to merge."))
		return nil
	}

	urlWidth := p.width - 6
	for _, url := range r.Planned {
		p.printf("    %s %s\n", p.styles.Muted.Render("+"), util.TruncateMiddle(url, urlWidth))
	}
	for _, url := range r.Excluded {
		p.printf("    %s %s\n", p.styles.Warning.Render("~"), util.TruncateMiddle(url, urlWidth))
	}

	if r.DryRun {
		p.println(p.styles.Muted.Render(fmt.Sprintf("%d tab(s) would be merged.", r.Queued)))
		return nil
	}

	summary := fmt.Sprintf("Merged %d of %d tab(s).", r.Moved, r.Queued)
	if r.Moved == r.Queued {
		p.println(p.styles.Success.Render(summary))
	} else {
		p.println(p.styles.Warning.Render(summary))
	}
	for _, url := range r.Failed {
		p.printf("    %s %s\n", p.styles.Error.Render("x"), util.TruncateMiddle(url, urlWidth))
	}
	if len(r.Closed) > 0 {
		p.println(p.styles.Muted.Render(fmt.Sprintf("Closed %d window(s).", len(r.Closed))))
	}
	return nil
}

// Open prints an open report.
func (p *Printer) Open(r orchestrator.OpenReport) error {
	if ok, err := p.structured(NewOpenView(r)); ok {
		return err
	}

	switch r.Method {
	case orchestrator.OpenedTab:
		p.printf("%s %s %s\n", p.styles.Success.Render("Opened"), r.Path, p.styles.Muted.Render("in "+r.Target.String()))
	case orchestrator.OpenedFallback:
		p.printf("%s %s %s\n", p.styles.Warning.Render("Opened"), r.Path, p.styles.Muted.Render("in a new window (tab creation failed)"))
	default:
		p.printf("%s %s %s\n", p.styles.Success.Render("Opened"), r.Path, p.styles.Muted.Render("in a new window"))
	}
	return nil
}
