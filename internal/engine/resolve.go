package engine

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// suicide kills its own actor regardless of immunity. The resolver schedules
// it for vigilante guilt and jester haunts.
type suicide struct {
	Spec
	cause string
}

func newSuicide(cause string) suicide {
	return suicide{
		Spec:  Spec{Label: "suicide", Order: PrecedenceSuicide},
		cause: cause,
	}
}

func (s suicide) Execute(g *Game, a *Actor) Outcome {
	g.Notify(a, "You could not live with yourself any longer.")
	return a.Attack(a, s.cause, 100, true)
}

type queued struct {
	pendingAction
	forced bool
}

// RunNightSequence resolves the night at once, whatever the current phase,
// without waiting out any phase duration. Like Step it then starts the next
// turn at daybreak unless the game concluded.
func (g *Game) RunNightSequence() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseConcluded {
		return
	}
	g.phase = PhaseNightSequence
	g.inputLocked = true
	g.nightSequence()
	g.endTurn()
	if g.phase == PhaseConcluded {
		return
	}
	g.phase = PhaseDaybreak
	g.publish(Event{
		Kind:  EventAnnouncement,
		Title: "Phase",
		Body:  phaseBanner(g.phase, g.turn),
	})
}

// endTurn closes the night sequence: the turn advances and input reopens.
func (g *Game) endTurn() {
	g.turn++
	g.diedThisTurn = make(map[*Actor]bool)
	g.inputLocked = false
}

func (g *Game) nightSequence() {
	g.resolveNight()
	g.checkEnd()
}

// resolveNight runs the night actions grouped by precedence. Within a group
// actions run in random order and deaths are declared only once the whole
// group has run.
func (g *Game) resolveNight() {
	buried := len(g.graveyard)
	live := g.liveActors()
	for _, a := range live {
		a.beginNight()
	}
	for _, prisoner := range g.jail {
		prisoner.ResetTargets()
	}

	var queue []queued
	for _, p := range g.extras {
		queue = append(queue, queued{pendingAction: p, forced: true})
	}
	g.extras = nil
	for _, a := range live {
		for _, act := range a.role.NightActions {
			if g.ready(act, a) {
				queue = append(queue, queued{pendingAction: pendingAction{action: act, actor: a}})
			}
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].action.Precedence() < queue[j].action.Precedence()
	})

	g.resolving = true
	for i := 0; i < len(queue); {
		j := i
		for j < len(queue) && queue[j].action.Precedence() == queue[i].action.Precedence() {
			j++
		}
		group := queue[i:j]
		g.rng.Shuffle(len(group), func(x, y int) { group[x], group[y] = group[y], group[x] })
		for _, q := range group {
			a := q.actor
			if !a.alive {
				continue
			}
			if !q.forced && (!g.canUse(q.action, a) || len(a.targets) < q.action.Arity()) {
				continue
			}
			g.run(q.action, a)
		}
		g.settle()
		i = j
	}
	g.resolving = false

	for _, a := range g.actors {
		a.ConsumeVest()
		if a.frameSpent {
			a.ClearFrame()
		}
		a.ResetTargets()
		if v := a.guiltyOf; v != nil {
			a.guiltyOf = nil
			if a.alive && !v.alive {
				g.ScheduleSuicide(a, CauseSuicide)
				g.Notify(a, fmt.Sprintf("You killed %s, a member of the town. The guilt is unbearable.", v.Name))
			}
		}
	}
	g.jail = make(map[*Actor]*Actor)
	g.partyPlanned = false

	mail := g.nightMail
	g.nightMail = nil
	for _, e := range mail {
		g.publish(e)
	}
	for _, ts := range g.graveyard[buried:] {
		a := g.actors[ts.Index]
		g.publish(Event{
			Kind:  EventNightSequence,
			Title: "Death",
			Body:  fmt.Sprintf("%s was %s.", a.Name, ts.Epitaph),
		})
		g.Notify(a, fmt.Sprintf("You have died. You were %s.", ts.Epitaph))
		g.Announce("Death", g.deathReveal(a, ts.Epitaph))
	}
}

// settle declares dead every actor whose hitpoints ran out. The first attack
// that landed becomes the epitaph.
func (g *Game) settle() {
	for _, a := range g.actors {
		if !a.alive || a.hp > 0 {
			continue
		}
		cause := CauseUnknown
		if len(a.attacks) > 0 {
			cause = a.attacks[0].Cause
		}
		g.killActor(a, cause)
	}
}

// ready reports whether a can use act with its current targets.
func (g *Game) ready(act Action, a *Actor) bool {
	if !a.alive || !g.canUse(act, a) || len(a.targets) < act.Arity() {
		return false
	}
	for _, t := range a.targets[:act.Arity()] {
		if !g.validTarget(a, t) {
			return false
		}
	}
	return true
}

func (g *Game) canUse(act Action, a *Actor) bool {
	return !act.Costs() || a.HasUses()
}

func (g *Game) validTarget(a, t *Actor) bool {
	if t == nil {
		return false
	}
	r := a.role
	if t == a && !r.AllowSelfTarget && r.TargetGroup != TargetSelf {
		return false
	}
	if t != a && t.role.Has(ImmuneTarget) {
		return false
	}
	switch r.TargetGroup {
	case TargetNone:
		return false
	case TargetSelf:
		return t == a
	case TargetDead:
		return !t.alive
	case TargetLiveNonMafia:
		return t.alive && t.role.Affiliation != Mafia
	case TargetLiveNonTriad:
		return t.alive && t.role.Affiliation != Triad
	}
	return t.alive
}

// perform validates and runs a single action. Instant day actions go
// through here.
func (g *Game) perform(act Action, a *Actor) Outcome {
	if !g.ready(act, a) {
		return OutcomeNone
	}
	return g.run(act, a)
}

// run executes act for a and applies the outcome: one ability use, the
// crimes for the outcome and the rendered messages. A panicking action is
// logged and treated as OutcomeNone.
func (g *Game) run(act Action, a *Actor) (o Outcome) {
	targets := a.Targets()
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("action panicked",
				zap.String("actor", a.Name),
				zap.String("action", act.Name()),
				zap.Int("turn", g.turn),
				zap.Stringer("phase", g.phase),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			o = OutcomeNone
		}
	}()

	o = act.Execute(g, a)
	if o == OutcomeNone {
		return o
	}
	if act.Costs() {
		a.SpendUse()
	}
	a.AddCrimes(act.CrimesFor(o)...)
	g.report(act, a, targets, o)
	return o
}

func (g *Game) report(act Action, a *Actor, targets []*Actor, o Outcome) {
	msgs := act.Text()
	var target string
	if len(targets) > 0 && targets[0] != nil {
		target = targets[0].Name
	}

	self, other := msgs.Success, msgs.TargetSuccess
	if o == OutcomeFail {
		self, other = msgs.Fail, msgs.TargetFail
	}
	g.Feedback(a, render(self, a.Name, target))
	if other != "" {
		for _, t := range targets {
			if t != nil && t != a {
				g.Notify(t, render(other, a.Name, t.Name))
			}
		}
	}
	if o == OutcomeSuccess {
		g.Announce(act.Name(), render(msgs.Announce, a.Name, target))
	}
}
