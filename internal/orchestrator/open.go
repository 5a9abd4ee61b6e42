package orchestrator

import (
	"strings"

	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
	"github.com/Iron-Ham/tabmerge/internal/newtab"
)

// OpenMethod records how a folder ended up on screen.
type OpenMethod string

const (
	// OpenedTab means the folder opened as a new tab in the first window.
	OpenedTab OpenMethod = "tab"
	// OpenedLaunch means no window existed and the shell opened the folder.
	OpenedLaunch OpenMethod = "launch"
	// OpenedFallback means tab creation failed and the shell opened the folder.
	OpenedFallback OpenMethod = "fallback"
)

// OpenOptions configures an Opener.
type OpenOptions struct {
	TabHost TabHostOptions
	// Resolve turns a normalized path into an absolute one. Errors and empty
	// results keep the normalized path.
	Resolve func(path string) (string, error)
}

// OpenReport summarizes one open run.
type OpenReport struct {
	Path   string
	Target explorer.WindowID
	Method OpenMethod
}

// Opener opens a folder as a tab in the first file-browser window.
type Opener struct {
	host   Host
	opts   OpenOptions
	logger *logging.Logger
}

// NewOpener creates an Opener.
func NewOpener(host Host, opts OpenOptions, logger *logging.Logger) *Opener {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Opener{host: host, opts: opts, logger: logger}
}

// NormalizeFolderPath trims whitespace and surrounding quotes and converts
// forward slashes to backslashes.
func NormalizeFolderPath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		path = strings.TrimSpace(path[1 : len(path)-1])
	}
	return strings.ReplaceAll(path, "/", `\`)
}

// Run opens path. With no window open the shell launches the folder; when
// the tab cannot be created the shell launch is the fallback. A missing
// tab-host control fails without launching anything.
func (o *Opener) Run(path string) (OpenReport, error) {
	target := NormalizeFolderPath(path)
	if target == "" {
		return OpenReport{}, errors.NewExitError(errors.ExitUsage,
			errors.NewValidationError("folder path is empty").WithField("path").WithCause(errors.ErrEmptyPath))
	}
	if o.opts.Resolve != nil {
		if full, err := o.opts.Resolve(target); err == nil && full != "" {
			target = full
		} else if err != nil {
			o.logger.Debug("keeping unresolved path", "path", target, "error", err)
		}
	}

	report := OpenReport{Path: target}
	logger := o.logger.With("path", target)

	snap := o.host.Discover()
	snap.Release()

	window, ok := snap.Order.Target()
	if !ok {
		logger.Info("no file browser window found, launching folder")
		report.Method = OpenedLaunch
		return report, o.launch(target)
	}
	report.Target = window
	logger = logger.WithWindow(uintptr(window))

	tabHost, ok := o.host.findTabHost(window, o.opts.TabHost)
	if !ok {
		logger.Error("tab host control not found in target window")
		return report, errors.NewNotFoundError("tab host", window.String()).WithCause(errors.ErrTabHostNotFound)
	}

	out := o.host.Tabs.CreateAndNavigate(newtab.Request{
		Window:  window,
		TabHost: tabHost,
		URL:     target,
	})
	if out.Success() {
		logger.Info("opened folder in new tab", "method", string(out.Method), "polls", out.Polls)
		report.Method = OpenedTab
		return report, nil
	}

	logger.Warn("failed to create or navigate new tab, falling back to shell launch",
		"state", out.State.String(), "error", out.Err)
	report.Method = OpenedFallback
	return report, o.launch(target)
}

func (o *Opener) launch(path string) error {
	if err := o.host.Launcher.OpenPath(path); err != nil {
		o.logger.Error("shell launch failed", "path", path, "error", err)
		return errors.Wrapf(errors.Join(errors.ErrLaunchFailed, err), "open %s", path)
	}
	return nil
}
