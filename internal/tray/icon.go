// Package tray implements the tray host core: icon resolution, menu
// conversion, the foreground state store, the protocol listener task, and
// popup lifecycle. It is render-agnostic; the TUI layer consumes its
// projections.
package tray

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spinualexandru/clammy/internal/sni"
)

// IconSize is the target icon edge for the tray, in pixels.
const IconSize = 22

// iconExtensions and iconSizes define the probe order for theme-path
// lookups. The target size leads; common sizes follow.
var (
	iconExtensions = []string{"png", "svg", "xpm"}
	iconSizes      = []int{IconSize, 24, 32, 48, 22, 16}
)

// Icon is a renderable image handle. Either Pixels holds RGBA bytes decoded
// from a protocol pixmap, or Path points at a theme icon file on disk.
type Icon struct {
	Width  int
	Height int
	Pixels []byte
	Path   string
}

type cacheKey struct {
	dir  string
	name string
}

// PathCache memoizes theme-path icon lookups, including failed ones, so a
// repeated probe never re-touches the filesystem. Entries live for the
// process lifetime: icon themes on disk are assumed static while the bar
// runs. The map is initialized lazily on first use.
type PathCache struct {
	mu    sync.RWMutex
	paths map[cacheKey]string
}

// NewPathCache returns an empty cache.
func NewPathCache() *PathCache {
	return &PathCache{}
}

// get reports the cached result for a key. A hit with an empty path means a
// previously failed lookup.
func (c *PathCache) get(key cacheKey) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.paths == nil {
		return "", false
	}
	path, ok := c.paths[key]
	return path, ok
}

// put records a lookup result. The empty string caches a miss.
func (c *PathCache) put(key cacheKey, path string) {
	c.mu.Lock()
	if c.paths == nil {
		c.paths = make(map[cacheKey]string)
	}
	c.paths[key] = path
	c.mu.Unlock()
}

// Resolver converts a protocol item's icon sources into at most one Icon.
// The cache is shared: hand the same Resolver (or the same PathCache) to
// every component that resolves icons.
type Resolver struct {
	target   int
	cache    *PathCache
	fallback string
}

// NewResolver returns a resolver targeting icons of the given edge size.
func NewResolver(target int, cache *PathCache) *Resolver {
	return &Resolver{target: target, cache: cache}
}

// SetFallbackThemeDir sets an operator-configured directory probed when an
// item names an icon but carries no usable theme path of its own.
func (r *Resolver) SetFallbackThemeDir(dir string) {
	r.fallback = dir
}

// Resolve tries the item's icon sources in priority order: raw pixmap,
// named icon under the item's own theme path, then the system theme.
// It returns nil when nothing usable is found; callers render a
// placeholder glyph instead.
func (r *Resolver) Resolve(item sni.Item) *Icon {
	if icon := r.pixmapIcon(item.IconPixmaps); icon != nil {
		return icon
	}

	if item.IconName != "" {
		if item.IconThemePath != "" {
			if path := r.findIconCached(item.IconThemePath, item.IconName); path != "" {
				return &Icon{Path: path}
			}
		}
		if r.fallback != "" {
			if path := r.findIconCached(r.fallback, item.IconName); path != "" {
				return &Icon{Path: path}
			}
		}
		if path := lookupFreedesktopIcon(item.IconName); path != "" {
			return &Icon{Path: path}
		}
	}

	return nil
}

// pixmapIcon picks the pixmap whose width is closest to the target size and
// converts it to RGBA. Candidates with non-positive dimensions or no pixel
// data are rejected; ties go to the first candidate in input order.
func (r *Resolver) pixmapIcon(pixmaps []sni.Pixmap) *Icon {
	var best *sni.Pixmap
	bestDist := 0
	for i := range pixmaps {
		p := &pixmaps[i]
		if p.Width <= 0 || p.Height <= 0 || len(p.Bytes) == 0 {
			continue
		}
		dist := int(p.Width) - r.target
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < bestDist {
			best = p
			bestDist = dist
		}
	}
	if best == nil {
		return nil
	}

	w, h := int(best.Width), int(best.Height)
	return &Icon{
		Width:  w,
		Height: h,
		Pixels: argbToRGBA(best.Bytes, w, h),
	}
}

// argbToRGBA converts packed ARGB32 pixels in network byte order to RGBA.
// A buffer shorter than width*height*4 yields fully transparent pixels of
// the expected size; a corrupt pixmap must never crash the bar.
func argbToRGBA(argb []byte, width, height int) []byte {
	expected := width * height * 4
	if len(argb) < expected {
		return make([]byte, expected)
	}

	rgba := make([]byte, 0, expected)
	for i := 0; i+4 <= expected; i += 4 {
		a, r, g, b := argb[i], argb[i+1], argb[i+2], argb[i+3]
		rgba = append(rgba, r, g, b, a)
	}
	return rgba
}

// findIconCached is findIconInPath behind the shared cache. The probe runs
// outside any lock other callers wait on; only the insert holds the write
// lock.
func (r *Resolver) findIconCached(dir, name string) string {
	key := cacheKey{dir: dir, name: name}
	if path, ok := r.cache.get(key); ok {
		return path
	}

	path := findIconInPath(dir, name, r.target)
	r.cache.put(key, path)
	return path
}

// findIconInPath probes a custom theme directory for a named icon: size
// subdirectories first, then the bare name, then the hicolor layout. Up to
// a few dozen stat calls, hence the cache in front of it.
func findIconInPath(dir, name string, target int) string {
	sizes := iconSizes
	if target != IconSize {
		sizes = append([]int{target}, iconSizes[1:]...)
	}

	for _, size := range sizes {
		for _, ext := range iconExtensions {
			path := filepath.Join(dir, fmt.Sprintf("%dx%d", size, size), fmt.Sprintf("%s.%s", name, ext))
			if fileExists(path) {
				return path
			}
		}
	}

	for _, ext := range iconExtensions {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s", name, ext))
		if fileExists(path) {
			return path
		}
	}

	for _, size := range sizes {
		for _, ext := range iconExtensions {
			path := filepath.Join(dir, "hicolor", fmt.Sprintf("%dx%d", size, size), "apps", fmt.Sprintf("%s.%s", name, ext))
			if fileExists(path) {
				return path
			}
		}
	}

	return ""
}

// lookupFreedesktopIcon would search the system icon theme registry.
// Disabled to bound memory and IO: most applications ship pixmaps or a
// theme path, and items without either degrade to a placeholder glyph.
func lookupFreedesktopIcon(name string) string {
	_ = name
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
