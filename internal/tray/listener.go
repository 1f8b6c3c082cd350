package tray

import (
	"go.uber.org/zap"

	"github.com/spinualexandru/clammy/internal/sni"
)

const (
	// eventQueueCap bounds the listener→store channel. When the
	// foreground falls behind, the listener blocks; dropping would
	// silently desynchronize the displayed tray from reality.
	eventQueueCap = 100

	// activationQueueCap bounds the store→listener activation channel.
	activationQueueCap = 32
)

// Conn is the protocol client surface the listener consumes. *sni.Client
// satisfies it; tests substitute fakes.
type Conn interface {
	// Items snapshots currently known items. Implementations copy data
	// out under their internal lock and release it before returning.
	Items() map[string]sni.ItemSnapshot

	// Events is the protocol event stream. It is closed on a hard
	// receive error.
	Events() <-chan sni.Event

	// Activate dispatches one activation request.
	Activate(sni.ActivateRequest) error
}

// Listener is the background task bridging the protocol client and the
// foreground store. It forwards lifecycle events inbound and drains
// activation requests outbound for the lifetime of the tray feature.
type Listener struct {
	connect  func() (Conn, error)
	resolver *Resolver
	log      *zap.Logger
	events   chan Event
}

// NewListener returns a listener that will connect lazily when Run starts.
func NewListener(connect func() (Conn, error), resolver *Resolver, log *zap.Logger) *Listener {
	return &Listener{
		connect:  connect,
		resolver: resolver,
		log:      log,
		events:   make(chan Event, eventQueueCap),
	}
}

// Events is the bounded store-inbound channel. It is never closed: after a
// connection failure or a terminated subscription the stream simply goes
// silent, and the bar keeps running without tray icons.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Run executes the listener until the protocol subscription ends. It is
// meant to run on its own goroutine; every send below may block.
func (l *Listener) Run() {
	conn, err := l.connect()
	if err != nil {
		l.log.Warn("tray: protocol client unavailable, tray disabled", zap.Error(err))
		return
	}

	// The store must hold the activation channel before any item events
	// so clicks during initial population are not lost.
	activations := make(chan sni.ActivateRequest, activationQueueCap)
	l.events <- ActivateChannelReady{Ch: activations}

	// Snapshot first, resolve after: Items copies under the client's
	// lock, and icon resolution does filesystem IO that must not stall
	// unrelated protocol traffic.
	for address, snap := range conn.Items() {
		l.events <- l.addedEvent(address, snap.Item)
		if snap.Menu != nil {
			l.events <- MenuUpdated{Address: address, Items: ConvertMenu(snap.Menu)}
		}
	}

	go l.drainActivations(conn, activations)

	for ev := range conn.Events() {
		switch ev.Kind {
		case sni.EventAdd:
			if ev.Item == nil {
				continue
			}
			l.events <- l.addedEvent(ev.Address, *ev.Item)

		case sni.EventUpdateTitle:
			l.events <- ItemUpdated{Address: ev.Address, Title: ev.Title}

		case sni.EventUpdateMenu:
			l.events <- MenuUpdated{Address: ev.Address, Items: ConvertMenu(ev.Menu)}

		case sni.EventUpdateIcon:
			// Ignored: honoring it would mean re-fetching the full
			// item on every icon change. An item that changes only
			// its icon shows the stale one until removed and
			// re-added.

		case sni.EventRemove:
			l.events <- ItemRemoved{Address: ev.Address}
		}
	}

	// Hard receive error. No reconnect; the tray stays frozen in its
	// last known state.
	l.log.Warn("tray: protocol subscription ended")
}

func (l *Listener) addedEvent(address string, item sni.Item) ItemAdded {
	added := ItemAdded{
		Address: address,
		Icon:    l.resolver.Resolve(item),
		IsMenu:  item.IsMenu,
	}
	if item.Title != "" {
		title := item.Title
		added.Title = &title
	}
	return added
}

// drainActivations forwards activation requests to the protocol client.
// One failed activation is logged and must not stop subsequent ones.
func (l *Listener) drainActivations(conn Conn, activations <-chan sni.ActivateRequest) {
	for req := range activations {
		if err := conn.Activate(req); err != nil {
			l.log.Warn("tray: activation failed",
				zap.String("address", req.Address),
				zap.Error(err))
		}
	}
}
