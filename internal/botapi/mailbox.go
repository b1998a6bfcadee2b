package botapi

import (
	"sync"

	"mafia/internal/engine"
)

// mailboxSize bounds the events held for a bot that stops polling.
const mailboxSize = 1024

// Mailbox is the bus driver behind one automated participant. It keeps the
// public events and the bot's own private events until the bot polls.
type Mailbox struct {
	name string

	mu      sync.Mutex
	events  []engine.Event
	dropped int
}

func NewMailbox(name string) *Mailbox {
	return &Mailbox{name: name}
}

func (m *Mailbox) Wants(e engine.Event) bool {
	return !e.Private() || e.To == m.name
}

func (m *Mailbox) Deliver(e engine.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == mailboxSize {
		m.events = m.events[1:]
		m.dropped++
	}
	m.events = append(m.events, e)
}

// Drain returns and forgets every held event, plus how many were lost to
// overflow since the last drain.
func (m *Mailbox) Drain() ([]engine.Event, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, dropped := m.events, m.dropped
	m.events, m.dropped = nil, 0
	if out == nil {
		out = []engine.Event{}
	}
	return out, dropped
}
