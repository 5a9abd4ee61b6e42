//go:build windows

package shell

import (
	"errors"
	"testing"

	tmerrors "github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
)

func TestSession_WithoutShellApplication(t *testing.T) {
	s := &Session{logger: logging.NopLogger()}

	if _, err := s.Windows(); !errors.Is(err, tmerrors.ErrHostUnavailable) {
		t.Errorf("Windows() error = %v, want ErrHostUnavailable", err)
	}
	snap := explorer.NewEnumerator(s, nil).Discover()
	if !snap.Empty() {
		t.Errorf("Discover() = %+v, want empty", snap)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestOpen_Close(t *testing.T) {
	s, err := Open(nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !s.comInit {
		t.Error("session did not record COM initialization")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if s.comInit || s.app != nil {
		t.Error("Close() left the session open")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
