package tray

import "github.com/spinualexandru/clammy/internal/sni"

// Event is a state-store input: a protocol lifecycle event forwarded by the
// listener, or a user intent forwarded by the UI. All events are applied on
// the foreground, in arrival order, through Store.Apply.
type Event interface {
	isTrayEvent()
}

// ActivateChannelReady hands the store the sending end of the listener's
// activation channel. The listener emits it before any item events so that
// activations issued during initial population are not lost.
type ActivateChannelReady struct {
	Ch chan<- sni.ActivateRequest
}

// ItemAdded announces a new tray item. Re-adding a known address replaces
// the entry; last write wins.
type ItemAdded struct {
	Address string
	Title   *string
	Icon    *Icon
	IsMenu  bool
}

// ItemUpdated upgrades fields of a known item in place. Nil fields mean
// "no change"; partial updates merge, they never clear.
type ItemUpdated struct {
	Address string
	Title   *string
	Icon    *Icon
}

// MenuUpdated replaces an item's menu tree wholesale.
type MenuUpdated struct {
	Address string
	Items   []MenuItem
}

// ItemRemoved destroys an item. If the open-menu marker points at it, the
// marker is cleared too.
type ItemRemoved struct {
	Address string
}

// LeftClick is the user intent for a primary activation. The application
// layer intercepts left clicks on items with a menu before they reach the
// store; the store itself never special-cases menu presence here.
type LeftClick struct {
	Address string
}

// RightClick toggles the open-menu marker for an address.
type RightClick struct {
	Address string
}

// MenuItemClick activates one menu entry. It always closes the open menu.
type MenuItemClick struct {
	Address string
	ID      int32
}

func (ActivateChannelReady) isTrayEvent() {}
func (ItemAdded) isTrayEvent()            {}
func (ItemUpdated) isTrayEvent()          {}
func (MenuUpdated) isTrayEvent()          {}
func (ItemRemoved) isTrayEvent()          {}
func (LeftClick) isTrayEvent()            {}
func (RightClick) isTrayEvent()           {}
func (MenuItemClick) isTrayEvent()        {}
