//go:build !windows

package shell

import (
	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
)

// Session is unavailable outside Windows; every method fails.
type Session struct{}

// Open always fails with errors.ErrUnsupportedPlatform.
func Open(*logging.Logger) (*Session, error) {
	return nil, errors.ErrUnsupportedPlatform
}

func (s *Session) Close() error { return nil }

func (s *Session) Windows() (explorer.Collection, error) {
	return nil, errors.ErrUnsupportedPlatform
}

func (s *Session) Children(explorer.WindowID) ([]explorer.WindowID, error) {
	return nil, errors.ErrUnsupportedPlatform
}

func (s *Session) ClassName(explorer.WindowID) (string, error) {
	return "", errors.ErrUnsupportedPlatform
}

func (s *Session) SendCommand(explorer.WindowID, uint16) error {
	return errors.ErrUnsupportedPlatform
}

func (s *Session) IsWindow(explorer.WindowID) bool { return false }

func (s *Session) CloseWindow(explorer.WindowID) error {
	return errors.ErrUnsupportedPlatform
}

func (s *Session) OpenPath(string) error {
	return errors.ErrUnsupportedPlatform
}

// FullPath always fails with errors.ErrUnsupportedPlatform.
func FullPath(string) (string, error) {
	return "", errors.ErrUnsupportedPlatform
}
