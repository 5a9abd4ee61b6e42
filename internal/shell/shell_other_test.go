//go:build !windows

package shell

import (
	"errors"
	"testing"

	tmerrors "github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
)

func TestOpen_Unsupported(t *testing.T) {
	s, err := Open(nil)
	if !errors.Is(err, tmerrors.ErrUnsupportedPlatform) {
		t.Fatalf("Open() error = %v, want ErrUnsupportedPlatform", err)
	}
	if s != nil {
		t.Error("Open() returned a session")
	}
}

func TestSession_Unsupported(t *testing.T) {
	var s Session

	if _, err := s.Windows(); !errors.Is(err, tmerrors.ErrUnsupportedPlatform) {
		t.Errorf("Windows() error = %v", err)
	}
	if s.IsWindow(0x100) {
		t.Error("IsWindow() = true")
	}
	if err := s.OpenPath(`C:\`); !errors.Is(err, tmerrors.ErrUnsupportedPlatform) {
		t.Errorf("OpenPath() error = %v", err)
	}

	// Discovery over an unavailable surface is empty, not an error.
	snap := explorer.NewEnumerator(&s, nil).Discover()
	if !snap.Empty() {
		t.Errorf("Discover() = %+v, want empty", snap)
	}
	if _, ok := explorer.FindTabHost(&s, 0x100, "", 0); ok {
		t.Error("FindTabHost() found a tab host")
	}
}
