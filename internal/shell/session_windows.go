//go:build windows

package shell

import (
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
)

// sFalse is returned by CoInitializeEx when the thread already joined the
// apartment. It still needs a matching CoUninitialize.
const sFalse = 1

// Session is an open connection to the desktop shell. A session whose
// Shell.Application could not be created has a nil app: it reports the
// surface as unavailable but can still launch paths.
type Session struct {
	app     *ole.IDispatch
	logger  *logging.Logger
	comInit bool
}

// Open initializes COM on the current thread and connects to
// Shell.Application. The caller must Close the session on the same goroutine.
// Only a CoInitializeEx failure is returned as an error.
func Open(logger *logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, errors.NewHostError("CoInitializeEx failed", err).
				WithOperation("com_init").
				WithSeverity(errors.SeverityCritical)
		}
	}

	s := &Session{logger: logger, comInit: true}
	app, err := connect()
	if err != nil {
		logger.Warn("shell surface unavailable", "error", err, "severity", errors.GetSeverity(err).String())
		return s, nil
	}
	s.app = app
	logger.Debug("shell session opened")
	return s, nil
}

func connect() (*ole.IDispatch, error) {
	unknown, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return nil, errors.NewHostError("create Shell.Application", errors.Join(errors.ErrHostUnavailable, err)).
			WithOperation("create_object").
			WithSeverity(errors.SeverityWarning)
	}
	defer unknown.Release()

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, errors.NewHostError("query IDispatch", errors.Join(errors.ErrHostUnavailable, err)).
			WithOperation("query_interface").
			WithSeverity(errors.SeverityWarning)
	}
	return app, nil
}

// Close releases the shell object and leaves the COM apartment.
func (s *Session) Close() error {
	if s == nil || !s.comInit {
		return nil
	}
	if s.app != nil {
		s.app.Release()
		s.app = nil
	}
	s.comInit = false
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	s.logger.Debug("shell session closed")
	return nil
}

// Windows implements explorer.Surface with a fresh ShellWindows collection.
func (s *Session) Windows() (explorer.Collection, error) {
	if s.app == nil {
		return nil, errors.ErrHostUnavailable
	}
	v, err := oleutil.CallMethod(s.app, "Windows")
	if err != nil {
		return nil, errors.NewHostError("Shell.Application.Windows", err).WithOperation("windows")
	}
	disp := v.ToIDispatch()
	if disp == nil {
		return nil, errors.NewHostError("ShellWindows is not a dispatch object", errors.ErrHostUnavailable).
			WithOperation("windows")
	}
	return &shellWindows{disp: disp}, nil
}

// shellWindows is one ShellWindows collection.
type shellWindows struct {
	disp *ole.IDispatch
}

func (c *shellWindows) Count() (int, error) {
	v, err := oleutil.GetProperty(c.disp, "Count")
	if err != nil {
		return 0, errors.NewHostError("ShellWindows.Count", err).WithOperation("count")
	}
	defer v.Clear()
	return int(v.Val), nil
}

func (c *shellWindows) Item(index int) (explorer.Item, error) {
	v, err := oleutil.CallMethod(c.disp, "Item", index)
	if err != nil {
		return nil, errors.NewHostError("ShellWindows.Item", err).WithOperation("item")
	}
	disp := v.ToIDispatch()
	if disp == nil {
		return nil, errors.NewHostError("empty ShellWindows item", nil).WithOperation("item")
	}
	return &browser{disp: disp}, nil
}

func (c *shellWindows) Release() {
	if c.disp != nil {
		c.disp.Release()
		c.disp = nil
	}
}
