package sni

import "github.com/godbus/dbus/v5"

const (
	itemInterface = "org.kde.StatusNotifierItem"
	itemPath      = "/StatusNotifierItem"

	watcherInterface = "org.kde.StatusNotifierWatcher"
	watcherPath      = "/StatusNotifierWatcher"

	getProperty = "org.freedesktop.DBus.Properties.Get"
)

// Pixmap is a raw bitmap supplied by a tray application instead of a named
// theme icon. Bytes are packed 32-bit pixels in network byte order: [A, R, G, B].
type Pixmap struct {
	Width  int32
	Height int32
	Bytes  []byte
}

// Item is a snapshot of one StatusNotifierItem's displayable properties.
type Item struct {
	// Name that describes the application.
	Title string

	// Freedesktop-compliant icon name, if the application provides one.
	IconName string

	// Directory to search for the named icon in, if the application ships
	// its own icons instead of relying on the system theme.
	IconThemePath string

	// Binary icon representations in various sizes.
	IconPixmaps []Pixmap

	// Whether the item only supports a context menu and has no primary
	// click action.
	IsMenu bool

	// D-Bus path to the com.canonical.dbusmenu object for this item.
	MenuPath string
}

// fetchItem reads the displayable StatusNotifierItem properties from obj.
// Individual property failures are ignored; applications routinely omit
// properties they do not use.
func fetchItem(obj dbus.BusObject) Item {
	var item Item

	if v, err := obj.GetProperty(itemInterface + ".Title"); err == nil {
		v.Store(&item.Title)
	}
	if v, err := obj.GetProperty(itemInterface + ".IconName"); err == nil {
		v.Store(&item.IconName)
	}
	if v, err := obj.GetProperty(itemInterface + ".IconThemePath"); err == nil {
		v.Store(&item.IconThemePath)
	}
	if v, err := obj.GetProperty(itemInterface + ".IconPixmap"); err == nil {
		item.IconPixmaps = parsePixmaps(v.Value())
	}
	if v, err := obj.GetProperty(itemInterface + ".ItemIsMenu"); err == nil {
		v.Store(&item.IsMenu)
	}
	if v, err := obj.GetProperty(itemInterface + ".Menu"); err == nil {
		var path dbus.ObjectPath
		if v.Store(&path) == nil {
			item.MenuPath = string(path)
		}
	}

	return item
}

// parsePixmaps decodes the IconPixmap property value, an array of
// [<width>, <height>, <bytes>] triples. Malformed entries are skipped.
func parsePixmaps(value any) []Pixmap {
	entries, ok := value.([][]any)
	if !ok {
		// Some applications publish the property as a plain variant array.
		raw, ok := value.([]any)
		if !ok {
			return nil
		}
		for _, e := range raw {
			triple, ok := e.([]any)
			if !ok {
				continue
			}
			entries = append(entries, triple)
		}
	}

	pixmaps := make([]Pixmap, 0, len(entries))
	for _, e := range entries {
		if len(e) != 3 {
			continue
		}
		width, ok := e[0].(int32)
		if !ok {
			continue
		}
		height, ok := e[1].(int32)
		if !ok {
			continue
		}
		bytes, ok := e[2].([]byte)
		if !ok {
			continue
		}
		pixmaps = append(pixmaps, Pixmap{Width: width, Height: height, Bytes: bytes})
	}

	return pixmaps
}
