package actions

import (
	"fmt"

	"mafia/internal/engine"
)

// Roleblock (Escort, Consort, Liaison): the target loses every visit tonight.
// Visiting a roleblock-intercepting killer gets the roleblocker attacked
// instead.
type Roleblock struct{ engine.Spec }

func NewRoleblock() Roleblock {
	return Roleblock{engine.Spec{
		Label:   "roleblock",
		Order:   engine.PrecedenceRoleblock,
		Targets: 1,
		Msgs: engine.Messages{
			Success:       "You occupied {target} for the night.",
			TargetSuccess: "Someone occupied your night. You were roleblocked!",
		},
		Crimes: crimes(engine.CrimeSoliciting),
	}}
}

func (r Roleblock) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil {
		return engine.OutcomeNone
	}
	role := t.Role()
	switch {
	case role.Has(engine.RoleblockIntercept):
		a.ChooseTargets(t)
		a.Attack(t, epitaph(role), 1, false)
		g.Feedback(a, fmt.Sprintf("You visited %s, who turned on you.", t.Name))
		return engine.OutcomeFail
	case role.Has(engine.ImmuneRoleblock):
		g.Feedback(a, fmt.Sprintf("%s is immune to roleblocks.", t.Name))
		return engine.OutcomeFail
	}
	t.ResetTargets()
	return engine.OutcomeSuccess
}

// Hide (Beguiler): everyone outside the hider's team who visits the hider
// visits the hider's chosen target instead.
type Hide struct{ engine.Spec }

func NewHide() Hide {
	return Hide{engine.Spec{
		Label:   "hide",
		Order:   engine.PrecedenceRedirect,
		Targets: 1,
		Msgs: engine.Messages{
			Success: "You hid behind {target}.",
		},
		Crimes: crimes(engine.CrimeTrespassing),
	}}
}

func (h Hide) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil || t == a {
		return engine.OutcomeNone
	}
	for _, v := range g.Visitors(a) {
		if !sameTeam(v, a) {
			v.Retarget(a, t)
		}
	}
	return engine.OutcomeSuccess
}

// Redirect (Witch): the first target's visit goes to the second target.
type Redirect struct{ engine.Spec }

func NewRedirect() Redirect {
	return Redirect{engine.Spec{
		Label:   "control",
		Order:   engine.PrecedenceRedirect,
		Targets: 2,
		Msgs: engine.Messages{
			Success: "You took control of {target}.",
		},
		Crimes: crimes(engine.CrimeTrespassing),
	}}
}

func (r Redirect) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	x, y := a.Target(0), a.Target(1)
	if x == nil || y == nil || !x.Alive() || x.Target(0) == nil {
		return engine.OutcomeNone
	}
	x.SetTarget(0, y)
	g.Notify(x, "You felt a mystical power dominating you.")
	return engine.OutcomeSuccess
}
