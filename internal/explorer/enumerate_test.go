package explorer_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
	"github.com/Iron-Ham/tabmerge/internal/testutil"
)

func TestSynthesizeURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"virtual folder", "::{20D04FE0-3AEA-1069-A2D8-08002B30309D}", "shell:::{20D04FE0-3AEA-1069-A2D8-08002B30309D}"},
		{"already shell", "shell::{X}", "shell::{X}"},
		{"nested virtual", `::{26EE0668-A00A-44D7-9371-BEB064C98683}\0`, `shell:::{26EE0668-A00A-44D7-9371-BEB064C98683}\0`},
		{"surrounding whitespace", "  ::{X}  ", "shell:::{X}"},
		{"empty", "", ""},
		{"filesystem path", `C:\Users`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := explorer.SynthesizeURL(tt.path); got != tt.want {
				t.Errorf("SynthesizeURL(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDiscover_OrderAndRecords(t *testing.T) {
	host := testutil.NewHost()
	host.AddTab(0x200, "file:///C:/Work")
	host.AddTab(0x100, "file:///C:/Users")
	host.AddTab(0x200, "file:///D:/")
	host.AddAnonymousTab(0x300, "file:///E:/")

	snap := explorer.NewEnumerator(host, nil).Discover()

	wantOrder := explorer.WindowOrder{0x200, 0x100, 0x300}
	if len(snap.Order) != len(wantOrder) {
		t.Fatalf("Order = %v, want %v", snap.Order, wantOrder)
	}
	for i, id := range wantOrder {
		if snap.Order[i] != id {
			t.Errorf("Order[%d] = %v, want %v", i, snap.Order[i], id)
		}
	}

	if len(snap.Tabs) != 4 {
		t.Fatalf("len(Tabs) = %d, want 4", len(snap.Tabs))
	}
	if snap.Tabs[1].URL != "file:///C:/Users" || snap.Tabs[1].Window != 0x100 {
		t.Errorf("Tabs[1] = %+v", snap.Tabs[1])
	}
	if !snap.Tabs[0].Token.Known() {
		t.Error("identity-resolvable tab should carry a token")
	}
	if snap.Tabs[3].Token.Known() {
		t.Error("anonymous tab should have token 0")
	}
	if snap.Tabs[0].Token == snap.Tabs[2].Token {
		t.Error("distinct tabs must not share a token")
	}

	target, ok := snap.Order.Target()
	if !ok || target != 0x200 {
		t.Errorf("Target() = %v, %v; want 0x200, true", target, ok)
	}
	if got := len(snap.InWindow(0x200)); got != 2 {
		t.Errorf("len(InWindow(0x200)) = %d, want 2", got)
	}
}

func TestDiscover_VirtualFolderFallback(t *testing.T) {
	host := testutil.NewHost()
	thisPC := host.AddTab(0x100, "")
	thisPC.Path = "::{20D04FE0-3AEA-1069-A2D8-08002B30309D}"
	shellPath := host.AddTab(0x100, "")
	shellPath.Path = "shell::{X}"
	unresolved := host.AddTab(0x100, "")
	unresolved.PathErr = errors.New("no document")

	snap := explorer.NewEnumerator(host, nil).Discover()
	if len(snap.Tabs) != 3 {
		t.Fatalf("len(Tabs) = %d, want 3", len(snap.Tabs))
	}

	want := []string{"shell:::{20D04FE0-3AEA-1069-A2D8-08002B30309D}", "shell::{X}", ""}
	for i, w := range want {
		if snap.Tabs[i].URL != w {
			t.Errorf("Tabs[%d].URL = %q, want %q", i, snap.Tabs[i].URL, w)
		}
	}
}

func TestDiscover_SkipsFailingItems(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, logging.LevelDebug)

	host := testutil.NewHost()
	host.AddTab(0x100, "file:///A")
	broken := host.AddTab(0x200, "file:///B")
	broken.LocationErr = errors.New("not a browser")
	host.AddTab(0x300, "file:///C")
	host.AddTab(0x400, "file:///D")
	host.ItemErrors = map[int]error{2: errors.New("RPC_E_DISCONNECTED")}

	snap := explorer.NewEnumerator(host, logger).Discover()

	if len(snap.Tabs) != 2 {
		t.Fatalf("len(Tabs) = %d, want 2 (one item error, one missing location)", len(snap.Tabs))
	}
	if snap.Tabs[0].Window != 0x100 || snap.Tabs[1].Window != 0x400 {
		t.Errorf("unexpected survivors: %+v", snap.Tabs)
	}
	if broken.Released != 1 {
		t.Errorf("skipped item Released = %d, want 1", broken.Released)
	}
	if !strings.Contains(buf.String(), "skipping window item") {
		t.Error("expected item failure to be logged")
	}
}

func TestDiscover_SurfaceUnavailable(t *testing.T) {
	host := testutil.NewHost()
	host.AddTab(0x100, "file:///A")
	host.Unavailable = true

	snap := explorer.NewEnumerator(host, nil).Discover()
	if !snap.Empty() || len(snap.Tabs) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestSnapshot_Release(t *testing.T) {
	host := testutil.NewHost()
	a := host.AddTab(0x100, "file:///A")
	b := host.AddTab(0x200, "file:///B")

	snap := explorer.NewEnumerator(host, nil).Discover()
	snap.Release()

	if a.Released != 1 || b.Released != 1 {
		t.Errorf("Released = %d, %d; want 1, 1", a.Released, b.Released)
	}
}

func TestWindowID_String(t *testing.T) {
	if got := explorer.WindowID(0x3012C).String(); got != "0x3012C" {
		t.Errorf("String() = %q, want %q", got, "0x3012C")
	}
}
