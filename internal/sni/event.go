package sni

// EventKind identifies the lifecycle change an Event describes.
type EventKind int

const (
	// EventAdd announces a newly registered item.
	EventAdd EventKind = iota

	// EventUpdateTitle carries a new title for a known item.
	EventUpdateTitle

	// EventUpdateMenu carries a replacement menu layout for a known item.
	EventUpdateMenu

	// EventUpdateIcon announces that a known item changed its icon.
	EventUpdateIcon

	// EventRemove announces that an item was unregistered.
	EventRemove
)

// Event is a lifecycle notification for one tray item. Address is always set;
// the payload fields depend on Kind.
type Event struct {
	Kind    EventKind
	Address string

	// Item is set for EventAdd.
	Item *Item

	// Title is set for EventUpdateTitle. A nil pointer means the
	// application signalled a title change but the property could not be
	// re-read; receivers must treat it as "no change".
	Title *string

	// Menu is set for EventUpdateMenu and replaces the previous layout
	// wholesale.
	Menu *LayoutNode
}

// ActivateRequest asks a tray item's application to perform an action.
// An empty MenuPath requests the item's default activation at the given
// screen position hint; a non-empty MenuPath requests activation of the
// menu entry ItemID under that menu root.
type ActivateRequest struct {
	Address  string
	X, Y     int
	MenuPath string
	ItemID   int32
}
