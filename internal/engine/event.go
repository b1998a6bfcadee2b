package engine

import "time"

// EventKind classifies events on the bus.
type EventKind string

const (
	EventAnnouncement    EventKind = "announcement"
	EventBotPublic       EventKind = "bot-public"
	EventPlayerPublic    EventKind = "player-public"
	EventPrivateMessage  EventKind = "private-message"
	EventPrivateFeedback EventKind = "private-feedback"
	EventIndicator       EventKind = "indicator"
	EventNightSequence   EventKind = "night-sequence"
)

// Event is emitted by the engine after state changes. From and To carry
// actor names, never handles.
type Event struct {
	ID     string    `json:"id"`
	GameID string    `json:"game_id,omitempty"`
	Time   time.Time `json:"time"`
	Turn   int       `json:"turn"`
	Phase  GamePhase `json:"phase"`
	Kind   EventKind `json:"kind"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to,omitempty"`
	Title  string    `json:"title,omitempty"`
	Body   string    `json:"body"`
}

// Private reports whether the event is addressed to a single actor.
func (e Event) Private() bool {
	return e.Kind == EventPrivateMessage || e.Kind == EventPrivateFeedback
}

// MarshalText lets phases appear by name in JSON.
func (p GamePhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name.
func (p *GamePhase) UnmarshalText(b []byte) error {
	for k, v := range phaseNames {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	*p = PhaseInit
	return nil
}
