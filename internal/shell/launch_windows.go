//go:build windows

package shell

import (
	"golang.org/x/sys/windows"

	"github.com/Iron-Ham/tabmerge/internal/errors"
)

// OpenPath asks the shell to open path, which for a folder means a new
// file-browser window.
func (s *Session) OpenPath(path string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return errors.NewValidationError("path contains NUL").WithField("path").WithCause(err)
	}

	if err := windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return errors.NewHostError("ShellExecuteW", err).WithOperation("shell_execute")
	}
	s.logger.Debug("launched path", "path", path)
	return nil
}

// FullPath resolves path against the current directory the way the shell
// does, without touching the file system.
func FullPath(path string) (string, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return "", err
	}

	buf := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetFullPathName(p, uint32(len(buf)), &buf[0], nil)
		if err != nil {
			return "", err
		}
		if n < uint32(len(buf)) {
			return windows.UTF16ToString(buf[:n]), nil
		}
		buf = make([]uint16, n)
	}
}
