// Package sni implements the host side of the freedesktop
// StatusNotifierItem protocol over D-Bus. A Client registers itself as a
// StatusNotifierHost with the session watcher, tracks registered items and
// their com.canonical.dbusmenu layouts, and surfaces lifecycle changes as a
// typed event stream. It knows nothing about rendering or caching; that is
// the tray host's job.
package sni

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// ItemSnapshot pairs an item's properties with its current menu layout,
// which may be nil when the item exposes no menu.
type ItemSnapshot struct {
	Item Item
	Menu *LayoutNode
}

type trackedItem struct {
	busName string
	path    string
	item    Item
	menu    *LayoutNode
}

// Client is a connected StatusNotifierHost. All exported methods are safe
// for concurrent use.
type Client struct {
	conn    *dbus.Conn
	log     *zap.Logger
	host    string
	signals chan *dbus.Signal
	events  chan Event

	mu    sync.Mutex
	items map[string]*trackedItem
}

// Connect opens the session bus, registers a StatusNotifierHost name with
// the watcher, and starts tracking items. The returned client's event
// stream carries one Add event (plus a menu update, when a menu is already
// published) for every item that registers after Connect returns; items
// registered before are available through Items.
func Connect(log *zap.Logger) (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("sni: session bus: %w", err)
	}

	c := &Client{
		conn:    conn,
		log:     log,
		host:    fmt.Sprintf("org.kde.StatusNotifierHost-%d", os.Getpid()),
		signals: make(chan *dbus.Signal, 128),
		events:  make(chan Event, 128),
		items:   make(map[string]*trackedItem),
	}

	reply, err := conn.RequestName(c.host, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sni: request host name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("sni: host name %s already taken", c.host)
	}

	watcher := conn.Object(watcherInterface, watcherPath)
	if call := watcher.Call(watcherInterface+".RegisterStatusNotifierHost", 0, c.host); call.Err != nil {
		conn.Close()
		return nil, fmt.Errorf("sni: register host: %w", call.Err)
	}

	if err := c.subscribe(); err != nil {
		conn.Close()
		return nil, err
	}

	c.trackInitialItems(watcher)

	go c.run()

	return c, nil
}

// Items returns a snapshot of all currently tracked items keyed by address.
// Item data is copied out under the client's lock; menu layout trees are
// immutable once parsed and are shared by reference.
func (c *Client) Items() map[string]ItemSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make(map[string]ItemSnapshot, len(c.items))
	for addr, t := range c.items {
		snapshot[addr] = ItemSnapshot{Item: t.item, Menu: t.menu}
	}
	return snapshot
}

// Events returns the client's event stream. The channel is closed when the
// underlying bus connection terminates; it is never closed by item churn.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Activate dispatches an activation request to the owning application.
// The request's MenuPath is a logical token: menu activation is delivered to
// the item's actual dbusmenu object regardless of the token's value.
func (c *Client) Activate(req ActivateRequest) error {
	c.mu.Lock()
	t, ok := c.items[req.Address]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("sni: activate: unknown address %s", req.Address)
	}

	if req.MenuPath == "" {
		call := c.conn.Object(t.busName, dbus.ObjectPath(t.path)).Call(
			itemInterface+".Activate", 0, req.X, req.Y,
		)
		if call.Err != nil {
			return fmt.Errorf("sni: activate %s: %w", req.Address, call.Err)
		}
		return nil
	}

	if t.item.MenuPath == "" {
		return fmt.Errorf("sni: activate: item %s has no menu", req.Address)
	}
	call := c.conn.Object(t.busName, dbus.ObjectPath(t.item.MenuPath)).Call(
		menuInterface+".Event", 0,
		req.ItemID, "clicked", dbus.MakeVariant(int32(0)), uint32(time.Now().Unix()),
	)
	if call.Err != nil {
		return fmt.Errorf("sni: menu event %s/%d: %w", req.Address, req.ItemID, call.Err)
	}
	return nil
}

// Close releases the host name and terminates the event stream.
func (c *Client) Close() error {
	_, _ = c.conn.ReleaseName(c.host)
	return c.conn.Close()
}

func (c *Client) subscribe() error {
	matches := [][]dbus.MatchOption{
		{dbus.WithMatchInterface(watcherInterface), dbus.WithMatchMember("StatusNotifierItemRegistered")},
		{dbus.WithMatchInterface(watcherInterface), dbus.WithMatchMember("StatusNotifierItemUnregistered")},
		{dbus.WithMatchInterface(itemInterface), dbus.WithMatchMember("NewTitle")},
		{dbus.WithMatchInterface(itemInterface), dbus.WithMatchMember("NewIcon")},
		{dbus.WithMatchInterface(menuInterface), dbus.WithMatchMember("LayoutUpdated")},
	}
	for _, m := range matches {
		if err := c.conn.AddMatchSignal(m...); err != nil {
			return fmt.Errorf("sni: add match: %w", err)
		}
	}
	c.conn.Signal(c.signals)
	return nil
}

// trackInitialItems registers items that were already present before this
// host connected. No events are emitted for them; they are reachable
// through Items.
func (c *Client) trackInitialItems(watcher dbus.BusObject) {
	property, err := watcher.GetProperty(watcherInterface + ".RegisteredStatusNotifierItems")
	if err != nil {
		return
	}
	registered, ok := property.Value().([]string)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range registered {
		busName, objectPath := splitItemName(name)
		if _, exists := c.items[busName]; exists {
			continue
		}
		if t := c.fetchTracked(busName, objectPath); t != nil {
			c.items[busName] = t
		}
	}
}

// run is the signal loop. It exits, closing the event stream, when the bus
// connection drops.
func (c *Client) run() {
	for signal := range c.signals {
		switch signal.Name {
		case watcherInterface + ".StatusNotifierItemRegistered":
			c.handleRegistered(signal)
		case watcherInterface + ".StatusNotifierItemUnregistered":
			c.handleUnregistered(signal)
		case itemInterface + ".NewTitle":
			c.handleNewTitle(signal.Sender)
		case itemInterface + ".NewIcon":
			c.handleNewIcon(signal.Sender)
		case menuInterface + ".LayoutUpdated":
			c.handleLayoutUpdated(signal.Sender)
		}
	}
	close(c.events)
}

func (c *Client) handleRegistered(signal *dbus.Signal) {
	name, ok := itemNameFromSignal(signal)
	if !ok {
		return
	}
	busName, objectPath := splitItemName(name)

	c.mu.Lock()
	if _, exists := c.items[busName]; exists {
		c.mu.Unlock()
		return
	}
	t := c.fetchTracked(busName, objectPath)
	if t == nil {
		c.mu.Unlock()
		return
	}
	c.items[busName] = t
	item := t.item
	menu := t.menu
	c.mu.Unlock()

	c.events <- Event{Kind: EventAdd, Address: busName, Item: &item}
	if menu != nil {
		c.events <- Event{Kind: EventUpdateMenu, Address: busName, Menu: menu}
	}
}

func (c *Client) handleUnregistered(signal *dbus.Signal) {
	name, ok := itemNameFromSignal(signal)
	if !ok {
		return
	}
	busName, _ := splitItemName(name)

	c.mu.Lock()
	_, exists := c.items[busName]
	if exists {
		delete(c.items, busName)
	}
	c.mu.Unlock()

	if exists {
		c.events <- Event{Kind: EventRemove, Address: busName}
	}
}

func (c *Client) handleNewTitle(sender string) {
	c.mu.Lock()
	t, ok := c.items[sender]
	if !ok {
		c.mu.Unlock()
		return
	}
	obj := c.conn.Object(t.busName, dbus.ObjectPath(t.path))
	c.mu.Unlock()

	var title *string
	if v, err := obj.GetProperty(itemInterface + ".Title"); err == nil {
		var s string
		if v.Store(&s) == nil {
			title = &s
		}
	}

	c.mu.Lock()
	if t, ok := c.items[sender]; ok && title != nil {
		t.item.Title = *title
	}
	c.mu.Unlock()

	c.events <- Event{Kind: EventUpdateTitle, Address: sender, Title: title}
}

func (c *Client) handleNewIcon(sender string) {
	c.mu.Lock()
	t, ok := c.items[sender]
	if !ok {
		c.mu.Unlock()
		return
	}
	obj := c.conn.Object(t.busName, dbus.ObjectPath(t.path))
	c.mu.Unlock()

	fresh := fetchItem(obj)

	c.mu.Lock()
	if t, ok := c.items[sender]; ok {
		t.item.IconName = fresh.IconName
		t.item.IconThemePath = fresh.IconThemePath
		t.item.IconPixmaps = fresh.IconPixmaps
	}
	c.mu.Unlock()

	c.events <- Event{Kind: EventUpdateIcon, Address: sender}
}

func (c *Client) handleLayoutUpdated(sender string) {
	c.mu.Lock()
	t, ok := c.items[sender]
	if !ok || t.item.MenuPath == "" {
		c.mu.Unlock()
		return
	}
	busName, menuPath := t.busName, t.item.MenuPath
	c.mu.Unlock()

	menu, err := c.fetchMenu(busName, menuPath)
	if err != nil {
		c.log.Debug("sni: menu refetch failed", zap.String("address", sender), zap.Error(err))
		return
	}

	c.mu.Lock()
	if t, ok := c.items[sender]; ok {
		t.menu = menu
	}
	c.mu.Unlock()

	c.events <- Event{Kind: EventUpdateMenu, Address: sender, Menu: menu}
}

// fetchTracked resolves an item's properties and menu. Returns nil when the
// item does not answer property queries, which happens when an application
// exits between registration and fetch.
func (c *Client) fetchTracked(busName, objectPath string) *trackedItem {
	obj := c.conn.Object(busName, dbus.ObjectPath(objectPath))

	// Probe before bulk-fetching so a dead peer is one failed call, not six.
	if call := obj.Call(getProperty, 0, itemInterface, "Title"); call.Err != nil {
		return nil
	}

	t := &trackedItem{
		busName: busName,
		path:    objectPath,
		item:    fetchItem(obj),
	}
	if t.item.MenuPath != "" {
		menu, err := c.fetchMenu(busName, t.item.MenuPath)
		if err == nil {
			t.menu = menu
		}
	}
	return t
}

func (c *Client) fetchMenu(busName, menuPath string) (*LayoutNode, error) {
	call := c.conn.Object(busName, dbus.ObjectPath(menuPath)).Call(
		menuInterface+".GetLayout", 0, 0, -1, []string{},
	)
	if call.Err != nil {
		return nil, call.Err
	}
	if len(call.Body) != 2 {
		return nil, fmt.Errorf("sni: GetLayout: invalid reply")
	}
	return ParseLayout(call.Body[1])
}

func itemNameFromSignal(signal *dbus.Signal) (string, bool) {
	if len(signal.Body) < 1 {
		return "", false
	}
	name, ok := signal.Body[0].(string)
	return name, ok
}

// splitItemName splits a watcher item name of the form
// ":1.185/StatusNotifierItem" into the unique bus name and object path.
// Names without a path component use the well-known item path.
func splitItemName(name string) (busName, objectPath string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '/' {
			return name[:i], name[i:]
		}
	}
	return name, itemPath
}
