package tray

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spinualexandru/clammy/internal/sni"
)

func TestPixmapSelection(t *testing.T) {
	tests := []struct {
		name       string
		widths     []int32
		wantWidth  int
		wantNoIcon bool
	}{
		{
			name:      "closest width wins",
			widths:    []int32{16, 20, 24, 48},
			wantWidth: 20,
		},
		{
			name:      "tie goes to first in input order",
			widths:    []int32{20, 24},
			wantWidth: 20,
		},
		{
			name:      "tie reversed",
			widths:    []int32{24, 20},
			wantWidth: 24,
		},
		{
			name:      "exact match",
			widths:    []int32{48, 22, 16},
			wantWidth: 22,
		},
		{
			name:       "no candidates",
			widths:     nil,
			wantNoIcon: true,
		},
	}

	r := NewResolver(IconSize, NewPathCache())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pixmaps []sni.Pixmap
			for _, w := range tt.widths {
				pixmaps = append(pixmaps, sni.Pixmap{
					Width:  w,
					Height: w,
					Bytes:  make([]byte, int(w)*int(w)*4),
				})
			}

			icon := r.Resolve(sni.Item{IconPixmaps: pixmaps})
			if tt.wantNoIcon {
				if icon != nil {
					t.Fatalf("Resolve() = %+v, want nil", icon)
				}
				return
			}
			if icon == nil {
				t.Fatal("Resolve() = nil, want icon")
			}
			if icon.Width != tt.wantWidth {
				t.Errorf("Resolve() width = %d, want %d", icon.Width, tt.wantWidth)
			}
		})
	}
}

func TestPixmapSelectionRejectsInvalid(t *testing.T) {
	r := NewResolver(IconSize, NewPathCache())

	// The 22px candidate has no pixel data and the 0x0 one is degenerate;
	// selection must fall through to the 48px candidate.
	icon := r.Resolve(sni.Item{IconPixmaps: []sni.Pixmap{
		{Width: 22, Height: 22, Bytes: nil},
		{Width: 0, Height: 0, Bytes: make([]byte, 4)},
		{Width: -3, Height: 22, Bytes: make([]byte, 4)},
		{Width: 48, Height: 48, Bytes: make([]byte, 48*48*4)},
	}})
	if icon == nil {
		t.Fatal("Resolve() = nil, want 48px icon")
	}
	if icon.Width != 48 {
		t.Errorf("Resolve() width = %d, want 48", icon.Width)
	}
}

func TestARGBToRGBA(t *testing.T) {
	got := argbToRGBA([]byte{0xFF, 0x10, 0x20, 0x30}, 1, 1)
	want := []byte{0x10, 0x20, 0x30, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("argbToRGBA() = %x, want %x", got, want)
	}
}

func TestARGBToRGBATruncatedBuffer(t *testing.T) {
	// Declared 2x2 but only one pixel supplied: expect a fully
	// transparent buffer of the declared size, not a panic.
	got := argbToRGBA([]byte{0xFF, 0x10, 0x20, 0x30}, 2, 2)
	if len(got) != 16 {
		t.Fatalf("argbToRGBA() len = %d, want 16", len(got))
	}
	for i, b := range got {
		if b != 0 {
			t.Errorf("argbToRGBA()[%d] = %#x, want 0", i, b)
		}
	}
}

func TestFindIconInPath(t *testing.T) {
	dir := t.TempDir()

	sized := filepath.Join(dir, "24x24")
	if err := os.MkdirAll(sized, 0o755); err != nil {
		t.Fatal(err)
	}
	sizedIcon := filepath.Join(sized, "app.png")
	if err := os.WriteFile(sizedIcon, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	bareIcon := filepath.Join(dir, "bare.svg")
	if err := os.WriteFile(bareIcon, []byte("svg"), 0o644); err != nil {
		t.Fatal(err)
	}
	hicolor := filepath.Join(dir, "hicolor", "32x32", "apps")
	if err := os.MkdirAll(hicolor, 0o755); err != nil {
		t.Fatal(err)
	}
	hicolorIcon := filepath.Join(hicolor, "deep.png")
	if err := os.WriteFile(hicolorIcon, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		icon     string
		wantPath string
	}{
		{name: "size subdirectory", icon: "app", wantPath: sizedIcon},
		{name: "bare name", icon: "bare", wantPath: bareIcon},
		{name: "hicolor layout", icon: "deep", wantPath: hicolorIcon},
		{name: "missing", icon: "nope", wantPath: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findIconInPath(dir, tt.icon, IconSize)
			if got != tt.wantPath {
				t.Errorf("findIconInPath(%q) = %q, want %q", tt.icon, got, tt.wantPath)
			}
		})
	}
}

func TestPathCacheIsNotInvalidatedByFilesystem(t *testing.T) {
	dir := t.TempDir()
	iconPath := filepath.Join(dir, "app.png")
	if err := os.WriteFile(iconPath, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(IconSize, NewPathCache())

	first := r.findIconCached(dir, "app")
	if first != iconPath {
		t.Fatalf("first lookup = %q, want %q", first, iconPath)
	}

	// Delete the file; the cached (now stale) result must still be
	// returned, since entries never expire for the process lifetime.
	if err := os.Remove(iconPath); err != nil {
		t.Fatal(err)
	}
	second := r.findIconCached(dir, "app")
	if second != first {
		t.Errorf("second lookup = %q, want cached %q", second, first)
	}
}

func TestPathCacheCachesNegativeLookups(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(IconSize, NewPathCache())

	if got := r.findIconCached(dir, "ghost"); got != "" {
		t.Fatalf("lookup of missing icon = %q, want \"\"", got)
	}

	// Creating the file afterwards must not change the cached miss.
	if err := os.WriteFile(filepath.Join(dir, "ghost.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := r.findIconCached(dir, "ghost"); got != "" {
		t.Errorf("lookup after create = %q, want cached miss", got)
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(IconSize, NewPathCache())

	// A usable pixmap wins over a resolvable theme icon.
	icon := r.Resolve(sni.Item{
		IconName:      "app",
		IconThemePath: dir,
		IconPixmaps:   []sni.Pixmap{{Width: 22, Height: 22, Bytes: make([]byte, 22*22*4)}},
	})
	if icon == nil || icon.Path != "" || len(icon.Pixels) == 0 {
		t.Fatalf("Resolve() = %+v, want pixmap icon", icon)
	}

	// Without a pixmap the theme path is consulted.
	icon = r.Resolve(sni.Item{IconName: "app", IconThemePath: dir})
	if icon == nil || icon.Path == "" {
		t.Fatalf("Resolve() = %+v, want theme path icon", icon)
	}

	// Name only: the freedesktop fallback is a stub, so resolution
	// degrades to no icon rather than erroring.
	if icon := r.Resolve(sni.Item{IconName: "app"}); icon != nil {
		t.Errorf("Resolve() = %+v, want nil from disabled system lookup", icon)
	}
}
