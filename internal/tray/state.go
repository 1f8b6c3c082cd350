package tray

import "github.com/spinualexandru/clammy/internal/sni"

// MenuPathToken is the logical menu root carried by menu-item activation
// requests.
const MenuPathToken = "/MenuBar"

// Item is the store's record of one protocol tray item.
type Item struct {
	Address string
	Title   string
	Icon    *Icon
	Menu    []MenuItem
	IsMenu  bool
}

// CustomIndicator is a locally created tray entry, independent of the
// protocol listener.
type CustomIndicator struct {
	ID      string
	Icon    *Icon
	Tooltip string
}

// IconView is one entry of the bar's read-only tray projection.
type IconView struct {
	Address  string
	Tooltip  string
	Icon     *Icon
	MenuOpen bool
	Custom   bool
}

// Store owns the tray's foreground state: protocol items, custom
// indicators, and the open-menu marker. It is not safe for concurrent use;
// all access happens on the foreground event loop.
type Store struct {
	items    map[string]*Item
	order    []string
	custom   []CustomIndicator
	openMenu string
	activate chan<- sni.ActivateRequest
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*Item)}
}

// AddCustomIndicator appends a custom indicator. ID uniqueness is the
// caller's responsibility.
func (s *Store) AddCustomIndicator(ind CustomIndicator) {
	s.custom = append(s.custom, ind)
}

// RemoveCustomIndicator removes the indicator with the given id; removing
// an unknown id is a no-op.
func (s *Store) RemoveCustomIndicator(id string) {
	kept := s.custom[:0]
	for _, ind := range s.custom {
		if ind.ID != id {
			kept = append(kept, ind)
		}
	}
	s.custom = kept
}

// GetMenuItems returns a snapshot of the current menu for an address, or
// nil when the address is unknown.
func (s *Store) GetMenuItems(address string) []MenuItem {
	item, ok := s.items[address]
	if !ok {
		return nil
	}
	menu := make([]MenuItem, len(item.Menu))
	copy(menu, item.Menu)
	return menu
}

// HasMenu reports whether an item has a non-empty menu or is flagged
// menu-only. The application layer uses it to decide whether a left click
// activates or opens a menu.
func (s *Store) HasMenu(address string) bool {
	item, ok := s.items[address]
	if !ok {
		return false
	}
	return len(item.Menu) > 0 || item.IsMenu
}

// OpenMenu returns the address whose menu is currently marked open, or ""
// when none is.
func (s *Store) OpenMenu() string {
	return s.openMenu
}

// Activations returns the activation egress channel, or nil before the
// listener has connected.
func (s *Store) Activations() chan<- sni.ActivateRequest {
	return s.activate
}

// Apply is the single state-mutation entry point. It returns zero or more
// activation requests for the caller to dispatch off the foreground;
// sending on the activation channel may block and must never happen here.
func (s *Store) Apply(ev Event) []sni.ActivateRequest {
	switch ev := ev.(type) {
	case ActivateChannelReady:
		s.activate = ev.Ch

	case ItemAdded:
		item := &Item{Address: ev.Address, Icon: ev.Icon, IsMenu: ev.IsMenu}
		if ev.Title != nil {
			item.Title = *ev.Title
		}
		if _, exists := s.items[ev.Address]; !exists {
			s.order = append(s.order, ev.Address)
		}
		s.items[ev.Address] = item

	case ItemUpdated:
		item, ok := s.items[ev.Address]
		if !ok {
			return nil
		}
		if ev.Title != nil {
			item.Title = *ev.Title
		}
		if ev.Icon != nil {
			item.Icon = ev.Icon
		}

	case MenuUpdated:
		item, ok := s.items[ev.Address]
		if !ok {
			return nil
		}
		item.Menu = ev.Items

	case ItemRemoved:
		if _, ok := s.items[ev.Address]; !ok {
			return nil
		}
		delete(s.items, ev.Address)
		for i, addr := range s.order {
			if addr == ev.Address {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		if s.openMenu == ev.Address {
			s.openMenu = ""
		}

	case LeftClick:
		if s.activate == nil {
			return nil
		}
		return []sni.ActivateRequest{{Address: ev.Address}}

	case RightClick:
		if s.openMenu == ev.Address {
			s.openMenu = ""
		} else {
			s.openMenu = ev.Address
		}

	case MenuItemClick:
		s.openMenu = ""
		if s.activate == nil {
			return nil
		}
		return []sni.ActivateRequest{{
			Address:  ev.Address,
			MenuPath: MenuPathToken,
			ItemID:   ev.ID,
		}}
	}

	return nil
}

// VisibleIcons is the bar's per-frame tray projection: protocol items in
// arrival order, then custom indicators in registration order.
func (s *Store) VisibleIcons() []IconView {
	views := make([]IconView, 0, len(s.order)+len(s.custom))
	for _, addr := range s.order {
		item := s.items[addr]
		views = append(views, IconView{
			Address:  addr,
			Tooltip:  item.Title,
			Icon:     item.Icon,
			MenuOpen: s.openMenu == addr,
		})
	}
	for _, ind := range s.custom {
		views = append(views, IconView{
			Address: ind.ID,
			Tooltip: ind.Tooltip,
			Icon:    ind.Icon,
			Custom:  true,
		})
	}
	return views
}
