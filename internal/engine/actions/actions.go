// Package actions implements the night and day abilities roles are built
// from. Every action embeds engine.Spec for its descriptor and implements
// Execute.
package actions

import "mafia/internal/engine"

// Killer is implemented by actions that leave an epitaph.
type Killer interface {
	Epitaph() string
	IgnoresImmunity() bool
}

// epitaph returns the cause of death r's kills leave behind.
func epitaph(r *engine.Role) string {
	for _, act := range r.NightActions {
		if k, ok := act.(Killer); ok {
			return k.Epitaph()
		}
	}
	return engine.CauseUnknown
}

// unstoppable reports whether any of r's kills ignore immunity.
func unstoppable(r *engine.Role) bool {
	for _, act := range r.NightActions {
		if k, ok := act.(Killer); ok && k.IgnoresImmunity() {
			return true
		}
	}
	return false
}

func sameTeam(a, b *engine.Actor) bool {
	fa, fb := a.Role().Affiliation, b.Role().Affiliation
	return fa == fb && (fa == engine.Mafia || fa == engine.Triad)
}

// live returns a's first target when it is still alive.
func live(a *engine.Actor) *engine.Actor {
	t := a.Target(0)
	if t == nil || !t.Alive() {
		return nil
	}
	return t
}

func crimes(cs ...engine.Crime) map[engine.Outcome][]engine.Crime {
	return map[engine.Outcome][]engine.Crime{
		engine.OutcomeSuccess: cs,
		engine.OutcomeFail:    cs,
	}
}
