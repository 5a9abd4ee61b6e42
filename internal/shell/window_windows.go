//go:build windows

package shell

import (
	"golang.org/x/sys/windows"

	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procGetWindow   = user32.NewProc("GetWindow")
	procSendMessage = user32.NewProc("SendMessageW")
	procPostMessage = user32.NewProc("PostMessageW")
)

// Children implements explorer.Hierarchy by walking the GW_CHILD /
// GW_HWNDNEXT chain of id.
func (s *Session) Children(id explorer.WindowID) ([]explorer.WindowID, error) {
	if !s.IsWindow(id) {
		return nil, errors.NewHostError("invalid window handle", nil).
			WithWindow(uintptr(id)).
			WithOperation("children")
	}

	var children []explorer.WindowID
	child, _, _ := procGetWindow.Call(uintptr(id), gwChild)
	for child != 0 && len(children) < maxChildren {
		children = append(children, explorer.WindowID(child))
		child, _, _ = procGetWindow.Call(child, gwHwndNext)
	}
	return children, nil
}

// ClassName implements explorer.Hierarchy.
func (s *Session) ClassName(id explorer.WindowID) (string, error) {
	buf := make([]uint16, 256)
	n, err := windows.GetClassName(windows.HWND(id), &buf[0], int32(len(buf)))
	if err != nil {
		return "", errors.NewHostError("GetClassNameW", err).
			WithWindow(uintptr(id)).
			WithOperation("class_name")
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// SendCommand implements newtab.Messenger. The message is sent
// synchronously; its result carries no meaning and is ignored.
func (s *Session) SendCommand(control explorer.WindowID, code uint16) error {
	if !s.IsWindow(control) {
		return errors.NewHostError("tab host is not a window", nil).
			WithWindow(uintptr(control)).
			WithOperation("send_command")
	}
	procSendMessage.Call(uintptr(control), wmCommand, uintptr(code), 0)
	s.logger.Debug("sent command", "control", control.String(), "code", code)
	return nil
}

// IsWindow reports whether id is an existing window.
func (s *Session) IsWindow(id explorer.WindowID) bool {
	return id != 0 && windows.IsWindow(windows.HWND(id))
}

// CloseWindow posts WM_CLOSE to id and returns without waiting.
func (s *Session) CloseWindow(id explorer.WindowID) error {
	ok, _, err := procPostMessage.Call(uintptr(id), wmClose, 0, 0)
	if ok == 0 {
		return errors.NewHostError("PostMessageW(WM_CLOSE)", err).
			WithWindow(uintptr(id)).
			WithOperation("close")
	}
	return nil
}
