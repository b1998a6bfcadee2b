package engine

import "go.uber.org/zap"

// JailAllowed reports whether prisoners can be taken tonight. A lynch or a
// planned party cancels jailing.
func (g *Game) JailAllowed() bool {
	return !g.lynchedToday && !g.partyPlanned
}

// Imprison commits jailor's choice for the coming night. The prisoner loses
// their night visit and wears a one-night vest.
func (g *Game) Imprison(jailor, prisoner *Actor) Outcome {
	if !g.JailAllowed() {
		return OutcomeFail
	}
	if !prisoner.alive || prisoner == jailor {
		return OutcomeNone
	}
	g.jail[jailor] = prisoner
	prisoner.ArmVest()
	g.Notify(prisoner, "You have been hauled off to jail.")
	return OutcomeSuccess
}

// dusk commits the day's non-instant day actions, then clears every target
// list and resets the tribunal for the next day.
func (g *Game) dusk() {
	g.jail = make(map[*Actor]*Actor)
	for _, a := range g.liveActors() {
		for _, act := range a.role.DayActions {
			if !act.Instant() {
				g.perform(act, a)
			}
		}
	}
	for _, a := range g.actors {
		a.ResetTargets()
	}
	if n := len(g.jail); n > 0 {
		g.log.Debug("prisoners jailed", zap.Int("count", n), zap.Int("turn", g.turn))
	}
	g.lynchedToday = false
	g.tribunal.reset()
}
