package tray

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spinualexandru/clammy/internal/sni"
)

// fakeConn is a scripted protocol client. The test closes events to end
// the listener's receive loop.
type fakeConn struct {
	items  map[string]sni.ItemSnapshot
	events chan sni.Event

	mu        sync.Mutex
	activated []sni.ActivateRequest
	fail      map[string]bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		items:  map[string]sni.ItemSnapshot{},
		events: make(chan sni.Event, 16),
	}
}

func (f *fakeConn) Items() map[string]sni.ItemSnapshot { return f.items }
func (f *fakeConn) Events() <-chan sni.Event           { return f.events }

func (f *fakeConn) Activate(req sni.ActivateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated = append(f.activated, req)
	if f.fail[req.Address] {
		return errors.New("peer gone")
	}
	return nil
}

func (f *fakeConn) activations() []sni.ActivateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sni.ActivateRequest(nil), f.activated...)
}

func runListener(t *testing.T, conn *fakeConn) *Listener {
	t.Helper()
	l := NewListener(
		func() (Conn, error) { return conn, nil },
		NewResolver(IconSize, NewPathCache()),
		zap.NewNop(),
	)
	go l.Run()
	return l
}

func recvEvent(t *testing.T, l *Listener) Event {
	t.Helper()
	select {
	case ev := <-l.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tray event")
		return nil
	}
}

func TestListenerEmitsChannelReadyFirst(t *testing.T) {
	conn := newFakeConn()
	conn.items["steam"] = sni.ItemSnapshot{Item: sni.Item{Title: "Steam"}}
	l := runListener(t, conn)
	defer close(conn.events)

	ev := recvEvent(t, l)
	ready, ok := ev.(ActivateChannelReady)
	if !ok {
		t.Fatalf("first event = %T, want ActivateChannelReady", ev)
	}
	if ready.Ch == nil {
		t.Fatal("activation channel is nil")
	}
}

func TestListenerPublishesSnapshot(t *testing.T) {
	conn := newFakeConn()
	conn.items["steam"] = sni.ItemSnapshot{
		Item: sni.Item{Title: "Steam"},
		Menu: &sni.LayoutNode{ID: 0, Children: []*sni.LayoutNode{
			{ID: 1, Properties: map[string]any{"label": "_Quit"}},
		}},
	}
	l := runListener(t, conn)
	defer close(conn.events)

	recvEvent(t, l) // ActivateChannelReady

	added, ok := recvEvent(t, l).(ItemAdded)
	if !ok || added.Address != "steam" {
		t.Fatalf("snapshot event = %+v, want ItemAdded for steam", added)
	}
	if added.Title == nil || *added.Title != "Steam" {
		t.Errorf("added title = %v, want Steam", added.Title)
	}

	menu, ok := recvEvent(t, l).(MenuUpdated)
	if !ok || menu.Address != "steam" {
		t.Fatalf("event after add = %+v, want MenuUpdated for steam", menu)
	}
	if len(menu.Items) != 1 || menu.Items[0].Label != "Quit" {
		t.Errorf("menu = %+v, want one cleaned Quit entry", menu.Items)
	}
}

func TestListenerTranslatesRuntimeEvents(t *testing.T) {
	conn := newFakeConn()
	l := runListener(t, conn)

	recvEvent(t, l) // ActivateChannelReady

	conn.events <- sni.Event{
		Kind:    sni.EventAdd,
		Address: "spotify",
		Item:    &sni.Item{IsMenu: true},
	}
	added := recvEvent(t, l).(ItemAdded)
	if added.Address != "spotify" || !added.IsMenu {
		t.Errorf("added = %+v, want menu-only spotify", added)
	}
	if added.Title != nil {
		t.Errorf("empty title mapped to %v, want nil", added.Title)
	}

	title := "Spotify Premium"
	conn.events <- sni.Event{Kind: sni.EventUpdateTitle, Address: "spotify", Title: &title}
	updated := recvEvent(t, l).(ItemUpdated)
	if updated.Title == nil || *updated.Title != title {
		t.Errorf("updated = %+v, want title %q", updated, title)
	}

	conn.events <- sni.Event{
		Kind:    sni.EventUpdateMenu,
		Address: "spotify",
		Menu: &sni.LayoutNode{ID: 0, Children: []*sni.LayoutNode{
			{ID: 7, Properties: map[string]any{"label": "Pause"}},
		}},
	}
	menu := recvEvent(t, l).(MenuUpdated)
	if len(menu.Items) != 1 || menu.Items[0].ID != 7 {
		t.Errorf("menu = %+v, want one entry with id 7", menu.Items)
	}

	conn.events <- sni.Event{Kind: sni.EventRemove, Address: "spotify"}
	removed := recvEvent(t, l).(ItemRemoved)
	if removed.Address != "spotify" {
		t.Errorf("removed = %+v, want spotify", removed)
	}
	close(conn.events)
}

func TestListenerIgnoresIconOnlyUpdates(t *testing.T) {
	conn := newFakeConn()
	l := runListener(t, conn)

	recvEvent(t, l) // ActivateChannelReady

	conn.events <- sni.Event{Kind: sni.EventUpdateIcon, Address: "spotify"}
	conn.events <- sni.Event{Kind: sni.EventRemove, Address: "spotify"}
	close(conn.events)

	// The icon update produces nothing; the very next event is the removal.
	if ev := recvEvent(t, l); ev != (ItemRemoved{Address: "spotify"}) {
		t.Errorf("event after icon update = %+v, want ItemRemoved", ev)
	}
}

func TestListenerDrainsActivationsPastFailures(t *testing.T) {
	conn := newFakeConn()
	conn.fail = map[string]bool{"dead": true}
	l := runListener(t, conn)
	defer close(conn.events)

	ready := recvEvent(t, l).(ActivateChannelReady)
	ready.Ch <- sni.ActivateRequest{Address: "dead"}
	ready.Ch <- sni.ActivateRequest{Address: "alive"}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(conn.activations()) == 2 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	got := conn.activations()
	if len(got) != 2 {
		t.Fatalf("dispatched %d activations, want 2 (failure must not stop the drain)", len(got))
	}
	if got[1].Address != "alive" {
		t.Errorf("second activation = %+v, want alive", got[1])
	}
}

func TestListenerConnectFailureStaysSilent(t *testing.T) {
	l := NewListener(
		func() (Conn, error) { return nil, errors.New("no session bus") },
		NewResolver(IconSize, NewPathCache()),
		zap.NewNop(),
	)
	go l.Run()

	select {
	case ev := <-l.Events():
		t.Fatalf("got event %+v after connect failure, want silence", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
