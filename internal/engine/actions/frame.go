package actions

import "mafia/internal/engine"

// Frame (Framer, Deceiver): investigators see a random evil role and crime
// on the target until someone investigates them.
type Frame struct{ engine.Spec }

func NewFrame() Frame {
	return Frame{engine.Spec{
		Label:   "frame",
		Order:   engine.PrecedenceFrame,
		Targets: 1,
		Msgs: engine.Messages{
			Success: "You planted evidence on {target}.",
		},
		Crimes: crimes(engine.CrimeTrespassing, engine.CrimeIdentity),
	}}
}

func (f Frame) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil {
		return engine.OutcomeNone
	}
	evil := g.Catalog().EvilRoles()
	if len(evil) == 0 {
		return engine.OutcomeNone
	}
	all := engine.AllCrimes()
	rng := g.Rand()
	t.Frame(evil[rng.IntN(len(evil))], all[rng.IntN(len(all))])
	return engine.OutcomeSuccess
}

// Obscure (Janitor, Incense Master): hides the role and will of a target
// who died tonight. The janitor alone learns the truth.
type Obscure struct{ engine.Spec }

func NewObscure() Obscure {
	return Obscure{engine.Spec{
		Label:   "clean",
		Order:   engine.PrecedenceObscure,
		Targets: 1,
		Msgs: engine.Messages{
			Success: "You cleaned up after {target}.",
		},
		Crimes: crimes(engine.CrimeTrespassing, engine.CrimeDestruction),
	}}
}

func (o Obscure) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := a.Target(0)
	if t == nil || t.Alive() || !g.DiedThisTurn(t) {
		return engine.OutcomeNone
	}
	msg := "They were the " + t.Role().Name + "."
	if w := t.LastWill(); w != "" {
		msg += " Their last will read: " + w
	}
	g.Feedback(a, msg)
	t.Obscure()
	return engine.OutcomeSuccess
}
