package actions

import (
	"fmt"

	"mafia/internal/engine"
)

// Kill attacks the target. Damage defaults to 1.
type Kill struct {
	engine.Spec
	Cause          string
	Damage         int
	IgnoreImmunity bool
	// Guilt makes an attack on a town member haunt the killer.
	Guilt bool
}

// NewKill returns a precedence-100 kill leaving cause as the epitaph.
func NewKill(cause string, c ...engine.Crime) Kill {
	if len(c) == 0 {
		c = []engine.Crime{engine.CrimeMurder}
	}
	return Kill{
		Spec: engine.Spec{
			Label:   "kill",
			Order:   engine.PrecedenceKill,
			Targets: 1,
			Kill:    true,
			Msgs: engine.Messages{
				Success: "You attacked {target}.",
				Fail:    "Your attack on {target} failed. They were immune.",
			},
			Crimes: crimes(append([]engine.Crime{engine.CrimeTrespassing}, c...)...),
		},
		Cause:  cause,
		Damage: 1,
	}
}

// NewVigilanteKill is a kill whose wielder cannot bear killing the town.
func NewVigilanteKill() Kill {
	k := NewKill(engine.CauseVigilante)
	k.Guilt = true
	return k
}

func (k Kill) Epitaph() string       { return k.Cause }
func (k Kill) IgnoresImmunity() bool { return k.IgnoreImmunity }

func (k Kill) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := a.Target(0)
	if t == nil || t == a {
		return engine.OutcomeNone
	}
	dmg := k.Damage
	if dmg <= 0 {
		dmg = 1
	}
	o := t.Attack(a, k.Cause, dmg, k.IgnoreImmunity)
	if o == engine.OutcomeSuccess && k.Guilt && t.Role().Affiliation == engine.Town {
		a.MarkGuilty(t)
	}
	return o
}

// MassMurder (Mass Murderer): attacks the target and everyone else who
// visited them tonight.
type MassMurder struct{ engine.Spec }

func NewMassMurder() MassMurder {
	return MassMurder{engine.Spec{
		Label:   "massacre",
		Order:   engine.PrecedenceKill,
		Targets: 1,
		Kill:    true,
		Msgs: engine.Messages{
			Success: "You went on a rampage at {target}'s house.",
			Fail:    "Nobody at {target}'s house could be harmed.",
		},
		Crimes: crimes(engine.CrimeTrespassing, engine.CrimeMurder),
	}}
}

func (m MassMurder) Epitaph() string       { return engine.CauseMass }
func (m MassMurder) IgnoresImmunity() bool { return false }

func (m MassMurder) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := a.Target(0)
	if t == nil || t == a {
		return engine.OutcomeNone
	}
	victims := []*engine.Actor{t}
	for _, v := range g.Visitors(t) {
		if v != a {
			victims = append(victims, v)
		}
	}

	out := engine.OutcomeNone
	for _, v := range victims {
		switch v.Attack(a, engine.CauseMass, 1, false) {
		case engine.OutcomeSuccess:
			out = engine.OutcomeSuccess
			if v != t {
				g.Notify(v, fmt.Sprintf("A mass murderer was waiting at %s's house.", t.Name))
			}
		case engine.OutcomeFail:
			if out == engine.OutcomeNone {
				out = engine.OutcomeFail
			}
		}
	}
	return out
}

// Alert (Veteran): the veteran cannot be killed tonight and shoots every
// visitor, regardless of immunity.
type Alert struct{ engine.Spec }

func NewAlert() Alert {
	return Alert{engine.Spec{
		Label:   "alert",
		Order:   engine.PrecedenceAlert,
		Targets: 1,
		Kill:    true,
		Msgs: engine.Messages{
			Success: "You stayed up on alert.",
		},
		Crimes: map[engine.Outcome][]engine.Crime{
			engine.OutcomeSuccess: {engine.CrimeDisturbance},
		},
	}}
}

func (v Alert) Epitaph() string       { return engine.CauseVeteran }
func (v Alert) IgnoresImmunity() bool { return true }

func (v Alert) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	if a.Target(0) != a {
		return engine.OutcomeNone
	}
	a.Alert()
	for _, visitor := range g.Visitors(a) {
		visitor.Attack(a, engine.CauseVeteran, 100, true)
		g.Notify(visitor, "You were shot by the veteran you visited.")
		g.Feedback(a, fmt.Sprintf("You shot %s.", visitor.Name))
	}
	return engine.OutcomeSuccess
}

// Execute (Jailor): kills the jailor's prisoner, regardless of immunity.
// Executing a member of the town costs every remaining execution.
type Execute struct{ engine.Spec }

func NewExecute() Execute {
	return Execute{engine.Spec{
		Label:   "execute",
		Order:   engine.PrecedenceExecute,
		Targets: 1,
		Kill:    true,
		Msgs: engine.Messages{
			Success:       "You executed {target}.",
			TargetSuccess: "The jailor has decided to execute you.",
		},
		Crimes: map[engine.Outcome][]engine.Crime{
			engine.OutcomeSuccess: {engine.CrimeMurder},
		},
	}}
}

func (e Execute) Epitaph() string       { return engine.CauseJailor }
func (e Execute) IgnoresImmunity() bool { return true }

func (e Execute) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := a.Target(0)
	if t == nil || g.Prisoner(a) != t {
		return engine.OutcomeNone
	}
	o := t.Attack(a, engine.CauseJailor, 100, true)
	if o == engine.OutcomeSuccess && t.Role().Affiliation == engine.Town {
		a.ClearUses()
		g.Feedback(a, "You executed a member of the town. You may not execute again.")
	}
	return o
}
