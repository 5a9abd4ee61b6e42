package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/orchestrator"
	"github.com/Iron-Ham/tabmerge/internal/output"
	"github.com/Iron-Ham/tabmerge/internal/testutil"
)

func snapshot(t *testing.T) explorer.Snapshot {
	t.Helper()
	h := testutil.NewHost()
	h.AddTab(0x100, "file:///C:/")
	h.AddAnonymousTab(0x200, "file:///D:/Projects")
	h.AddTab(0x100, "file:///E:/")
	snap := explorer.NewEnumerator(h, nil).Discover()
	t.Cleanup(snap.Release)
	return snap
}

func TestNew_UnknownFormatFallsBackToText(t *testing.T) {
	p := output.New(&bytes.Buffer{}, "xml", output.ColorAuto)
	if p.Format() != output.FormatText {
		t.Errorf("Format() = %q, want text", p.Format())
	}
}

func TestPrinter_TabsText(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf, output.FormatText, output.ColorAuto)
	if err := p.Tabs(snapshot(t)); err != nil {
		t.Fatalf("Tabs() error = %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "\x1b[") {
		t.Errorf("non-terminal output contains escape codes: %q", got)
	}
	for _, want := range []string{"0x100 (target)", "0x200", "file:///C:/", "file:///D:/Projects", "file:///E:/"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "0x100") > strings.Index(got, "0x200") {
		t.Errorf("windows not printed in discovery order:\n%s", got)
	}
	if strings.Contains(got, "0x200 (target)") {
		t.Errorf("second window marked as target:\n%s", got)
	}
}

func TestPrinter_TabsEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf, output.FormatText, output.ColorNever)
	if err := p.Tabs(explorer.Snapshot{}); err != nil {
		t.Fatalf("Tabs() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No file browser windows open.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinter_TabsJSON(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf, output.FormatJSON, output.ColorAuto)
	if err := p.Tabs(snapshot(t)); err != nil {
		t.Fatalf("Tabs() error = %v", err)
	}

	var view output.ListView
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(view.Windows) != 2 || view.Windows[0] != "0x100" {
		t.Errorf("windows = %v", view.Windows)
	}
	if len(view.Tabs) != 3 {
		t.Fatalf("tabs = %d, want 3", len(view.Tabs))
	}
	if !view.Tabs[0].Target || view.Tabs[1].Target {
		t.Errorf("target flags = %v, %v", view.Tabs[0].Target, view.Tabs[1].Target)
	}
	if view.Tabs[0].Token == "" {
		t.Error("identified tab has no token")
	}
	if view.Tabs[1].Token != "" {
		t.Errorf("anonymous tab token = %q, want empty", view.Tabs[1].Token)
	}
}

func TestPrinter_MergeText(t *testing.T) {
	tests := []struct {
		name   string
		report orchestrator.MergeReport
		want   []string
		absent []string
	}{
		{
			name:   "no windows",
			report: orchestrator.MergeReport{},
			want:   []string{"No file browser windows open."},
		},
		{
			name:   "nothing to merge",
			report: orchestrator.MergeReport{Target: 0x100, Windows: 1, InTarget: 2},
			want:   []string{"Nothing to merge.", "0x100"},
		},
		{
			name: "dry run",
			report: orchestrator.MergeReport{
				Target:   0x100,
				Windows:  2,
				InTarget: 1,
				Queued:   1,
				Planned:  []string{"file:///D:/"},
				DryRun:   true,
			},
			want:   []string{"dry run", "file:///D:/", "1 tab(s) would be merged."},
			absent: []string{"Merged"},
		},
		{
			name: "partial success",
			report: orchestrator.MergeReport{
				Target:   0x100,
				Windows:  3,
				InTarget: 1,
				Queued:   2,
				Moved:    1,
				Planned:  []string{"file:///D:/", "file:///E:/"},
				Failed:   []string{"file:///E:/"},
				Closed:   []explorer.WindowID{0x200, 0x300},
			},
			want: []string{"Merged 1 of 2 tab(s).", "x file:///E:/", "Closed 2 window(s)."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := output.New(&buf, output.FormatText, output.ColorNever)
			if err := p.Merge(tt.report); err != nil {
				t.Fatalf("Merge() error = %v", err)
			}
			got := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(got, absent) {
					t.Errorf("output contains %q:\n%s", absent, got)
				}
			}
		})
	}
}

func TestPrinter_MergeYAML(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf, output.FormatYAML, output.ColorNever)
	report := orchestrator.MergeReport{
		Target:  0x100,
		Windows: 2,
		Queued:  1,
		Moved:   1,
		Planned: []string{"file:///D:/"},
		Closed:  []explorer.WindowID{0x200},
	}
	if err := p.Merge(report); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	var view output.MergeView
	if err := yaml.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if view.Target != "0x100" || view.Moved != 1 || len(view.Closed) != 1 || view.Closed[0] != "0x200" {
		t.Errorf("view = %+v", view)
	}
	if !strings.Contains(buf.String(), "in_target: 0") {
		t.Errorf("YAML keys not snake_case:\n%s", buf.String())
	}
}

func TestPrinter_Open(t *testing.T) {
	tests := []struct {
		method orchestrator.OpenMethod
		want   string
	}{
		{orchestrator.OpenedTab, "in 0x100"},
		{orchestrator.OpenedLaunch, "in a new window"},
		{orchestrator.OpenedFallback, "tab creation failed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			var buf bytes.Buffer
			p := output.New(&buf, output.FormatText, output.ColorNever)
			report := orchestrator.OpenReport{Path: `C:\Users`, Target: 0x100, Method: tt.method}
			if err := p.Open(report); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) || !strings.Contains(buf.String(), `C:\Users`) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinter_OpenJSON(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf, output.FormatJSON, output.ColorNever)
	if err := p.Open(orchestrator.OpenReport{Path: `C:\`, Method: orchestrator.OpenedLaunch}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var view output.OpenView
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if view.Method != "launch" || view.Target != "" || view.Path != `C:\` {
		t.Errorf("view = %+v", view)
	}
}
