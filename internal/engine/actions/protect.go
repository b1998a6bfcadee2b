package actions

import (
	"fmt"

	"mafia/internal/engine"
)

// Heal (Doctor): the target survives one extra attack tonight.
type Heal struct{ engine.Spec }

func NewHeal() Heal {
	return Heal{engine.Spec{
		Label:   "heal",
		Order:   engine.PrecedenceHeal,
		Targets: 1,
		Msgs: engine.Messages{
			Success: "You tended to {target}.",
			Fail:    "{target} refused your help.",
		},
		Crimes: crimes(engine.CrimeTrespassing),
	}}
}

func (h Heal) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil {
		return engine.OutcomeNone
	}
	return t.Heal()
}

// HealReport tells the doctor whether their patient was attacked. It runs
// after the kills and never costs a use.
type HealReport struct{ engine.Spec }

func NewHealReport() HealReport {
	return HealReport{engine.Spec{
		Label:   "heal report",
		Order:   engine.PrecedenceHealReport,
		Targets: 1,
		NoCost:  true,
		Msgs: engine.Messages{
			Success:       "{target} was attacked tonight. You did your best to save them.",
			TargetSuccess: "You were attacked, but a doctor nursed you back to health.",
		},
	}}
}

func (h HealReport) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := a.Target(0)
	if t == nil || !t.WasAttacked() {
		return engine.OutcomeNone
	}
	if !t.Alive() {
		g.Feedback(a, fmt.Sprintf("%s was attacked and died despite your care.", t.Name))
		return engine.OutcomeNone
	}
	return engine.OutcomeSuccess
}

// Protect (Bodyguard): fights one attacker of the target. The bodyguard and
// the attacker each take a fatal wound and the attacker's kill is diverted
// onto the bodyguard.
type Protect struct{ engine.Spec }

func NewProtect() Protect {
	return Protect{engine.Spec{
		Label:   "protect",
		Order:   engine.PrecedenceProtect,
		Targets: 1,
		Kill:    true,
		Msgs: engine.Messages{
			Success:       "You fought off an attacker at {target}'s house.",
			TargetSuccess: "Someone fought off an attacker at your house.",
		},
		Crimes: map[engine.Outcome][]engine.Crime{
			engine.OutcomeSuccess: {engine.CrimeTrespassing, engine.CrimeMurder},
		},
	}}
}

func (p Protect) Epitaph() string       { return engine.CauseDuel }
func (p Protect) IgnoresImmunity() bool { return true }

func (p Protect) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil || t == a {
		return engine.OutcomeNone
	}
	killers := g.Catalog().KillingRoles()
	blockAll := g.Config().BodyguardBlocksUnstoppable

	var attackers []*engine.Actor
	for _, v := range g.Visitors(t) {
		if v == a {
			continue
		}
		if _, ok := killers[v.Role().Name]; !ok || guards(v.Role()) {
			continue
		}
		if !blockAll && unstoppable(v.Role()) {
			continue
		}
		attackers = append(attackers, v)
	}
	if len(attackers) == 0 {
		return engine.OutcomeNone
	}

	x := attackers[g.Rand().IntN(len(attackers))]
	a.Attack(x, engine.CauseDuel, 1, true)
	x.Attack(a, engine.CauseDuel, 1, true)
	x.Retarget(t, a)
	g.Notify(x, "You were attacked by a bodyguard.")
	return engine.OutcomeSuccess
}

// guards reports whether r protects others at night. Fellow guards visiting
// the same house are never taken for attackers. A jailor executing the
// guarded prisoner still is.
func guards(r *engine.Role) bool {
	for _, act := range r.NightActions {
		if _, ok := act.(Protect); ok {
			return true
		}
	}
	return false
}
