package orchestrator_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tmerrors "github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/orchestrator"
	"github.com/Iron-Ham/tabmerge/internal/testutil"
)

func TestNormalizeFolderPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"C:/Users/me", `C:\Users\me`},
		{`C:\Users\me`, `C:\Users\me`},
		{"  D:/Projects  ", `D:\Projects`},
		{`"E:/With Space/"`, `E:\With Space\`},
		{"//server/share", `\\server\share`},
		{"", ""},
		{"   ", ""},
		{`""`, ""},
	}

	for _, tt := range tests {
		if got := orchestrator.NormalizeFolderPath(tt.in); got != tt.want {
			t.Errorf("NormalizeFolderPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpener_NoWindowsLaunches(t *testing.T) {
	h := testutil.NewHost()

	report, err := orchestrator.NewOpener(hostFor(h), orchestrator.OpenOptions{}, nil).Run("C:/Users/me")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Method != orchestrator.OpenedLaunch {
		t.Errorf("Method = %q, want %q", report.Method, orchestrator.OpenedLaunch)
	}
	if want := []string{`C:\Users\me`}; !reflect.DeepEqual(h.Launched, want) {
		t.Errorf("Launched = %v, want %v", h.Launched, want)
	}
	if len(h.Commands) != 0 {
		t.Errorf("sent %d commands, want 0", len(h.Commands))
	}
}

func TestOpener_NoWindowsLaunchFails(t *testing.T) {
	h := testutil.NewHost()
	h.LaunchErr = errors.New("SE_ERR_FNF")

	_, err := orchestrator.NewOpener(hostFor(h), orchestrator.OpenOptions{}, nil).Run(`C:\missing`)
	if !errors.Is(err, tmerrors.ErrLaunchFailed) {
		t.Fatalf("Run() error = %v, want ErrLaunchFailed", err)
	}
	if code := tmerrors.ExitCode(err); code != tmerrors.ExitLaunchFailed {
		t.Errorf("ExitCode = %d, want %d", code, tmerrors.ExitLaunchFailed)
	}
}

func TestOpener_OpensTab(t *testing.T) {
	h := testutil.NewHost()
	h.AddTab(0x100, "file:///C:/")
	h.AddTab(0x200, "file:///D:/")
	h.CreateTabOnCommand(1, true)

	report, err := orchestrator.NewOpener(hostFor(h), orchestrator.OpenOptions{}, nil).Run("D:/Projects")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Method != orchestrator.OpenedTab || report.Target != 0x100 {
		t.Errorf("report = %+v", report)
	}
	if len(h.Launched) != 0 {
		t.Errorf("Launched = %v, want none", h.Launched)
	}

	tabs := h.TabsIn(0x100)
	created := tabs[len(tabs)-1]
	if want := []string{`D:\Projects`}; !reflect.DeepEqual(created.Navigations, want) {
		t.Errorf("Navigations = %v, want %v", created.Navigations, want)
	}
	if len(h.Closed) != 0 {
		t.Errorf("open must not close windows, closed %v", h.Closed)
	}
}

func TestOpener_TabHostMissing(t *testing.T) {
	h := testutil.NewHost()
	h.AddTab(0x100, "file:///C:/")
	h.RemoveTabHost(0x100)

	_, err := orchestrator.NewOpener(hostFor(h), orchestrator.OpenOptions{}, nil).Run(`C:\Work`)
	if code := tmerrors.ExitCode(err); code != tmerrors.ExitTabHostMissing {
		t.Errorf("ExitCode = %d, want %d (err = %v)", code, tmerrors.ExitTabHostMissing, err)
	}
	if len(h.Launched) != 0 {
		t.Errorf("Launched = %v, want none", h.Launched)
	}
	if len(h.Commands) != 0 {
		t.Errorf("sent %d commands, want 0", len(h.Commands))
	}
}

func TestOpener_Fallback(t *testing.T) {
	tests := []struct {
		name      string
		launchErr error
		wantCode  int
	}{
		{"launch succeeds", nil, tmerrors.ExitOK},
		{"launch fails", errors.New("SE_ERR_ACCESSDENIED"), tmerrors.ExitLaunchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testutil.NewHost()
			h.AddTab(0x100, "file:///C:/")
			h.CreateTabOnCommand(0, true)
			h.NewTabNavigateErr = errors.New("E_FAIL")
			h.LaunchErr = tt.launchErr

			report, err := orchestrator.NewOpener(hostFor(h), orchestrator.OpenOptions{}, nil).Run(`C:\Work`)
			if code := tmerrors.ExitCode(err); code != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d (err = %v)", code, tt.wantCode, err)
			}
			if report.Method != orchestrator.OpenedFallback {
				t.Errorf("Method = %q, want %q", report.Method, orchestrator.OpenedFallback)
			}
			if want := []string{`C:\Work`}; !reflect.DeepEqual(h.Launched, want) {
				t.Errorf("Launched = %v, want %v", h.Launched, want)
			}
		})
	}
}

func TestOpener_EmptyPath(t *testing.T) {
	h := testutil.NewHost()
	h.AddTab(0x100, "file:///C:/")

	_, err := orchestrator.NewOpener(hostFor(h), orchestrator.OpenOptions{}, nil).Run("   ")
	if !errors.Is(err, tmerrors.ErrEmptyPath) {
		t.Errorf("Run() error = %v, want ErrEmptyPath", err)
	}
	if code := tmerrors.ExitCode(err); code != tmerrors.ExitUsage {
		t.Errorf("ExitCode = %d, want %d", code, tmerrors.ExitUsage)
	}
	if h.Polls != 0 {
		t.Errorf("discovered %d times, want 0", h.Polls)
	}
}

func TestOpener_Resolve(t *testing.T) {
	h := testutil.NewHost()
	opts := orchestrator.OpenOptions{
		Resolve: func(path string) (string, error) {
			if strings.HasPrefix(path, `.\`) {
				return `C:\cwd\` + strings.TrimPrefix(path, `.\`), nil
			}
			return "", errors.New("unresolvable")
		},
	}

	report, err := orchestrator.NewOpener(hostFor(h), opts, nil).Run("./docs")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Path != `C:\cwd\docs` {
		t.Errorf("Path = %q, want %q", report.Path, `C:\cwd\docs`)
	}

	report, err = orchestrator.NewOpener(hostFor(h), opts, nil).Run("Z:/x")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Path != `Z:\x` {
		t.Errorf("Path = %q, want normalized path kept", report.Path)
	}
}
