package actions

import "mafia/internal/engine"

// MayorReveal announces the mayor and raises their vote weight for the rest
// of the game.
type MayorReveal struct{ engine.Spec }

func NewMayorReveal() MayorReveal {
	return MayorReveal{engine.Spec{
		Label:     "reveal",
		Immediate: true,
		NoCost:    true,
		Msgs: engine.Messages{
			Success:  "You revealed yourself as the Mayor.",
			Announce: "{actor} has revealed themselves as the Mayor!",
		},
	}}
}

func (m MayorReveal) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	if a.Revealed() {
		return engine.OutcomeNone
	}
	a.Reveal()
	a.SetVoteWeight(g.Config().MayorVoteCount)
	return engine.OutcomeSuccess
}

// Marshall orders a group lynch: several lynches today, without defense.
type Marshall struct{ engine.Spec }

func NewMarshall() Marshall {
	return Marshall{engine.Spec{
		Label:     "martial law",
		Immediate: true,
		Msgs: engine.Messages{
			Success:  "You declared martial law.",
			Announce: "{actor} the Marshall has declared martial law. The town may lynch several people today!",
		},
	}}
}

func (m Marshall) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	a.Reveal()
	g.Tribunal().AddLynches(g.Config().MarshallLynches - 1)
	return engine.OutcomeSuccess
}

// Court (Judge) turns today's tribunal into a secret court where the judge
// holds several votes.
type Court struct{ engine.Spec }

func NewCourt() Court {
	return Court{engine.Spec{
		Label:     "court",
		Immediate: true,
		Msgs: engine.Messages{
			Success:  "You called a court session.",
			Announce: "Court is now in session. All votes are secret.",
		},
		Crimes: map[engine.Outcome][]engine.Crime{
			engine.OutcomeSuccess: {engine.CrimeCorruption},
		},
	}}
}

func (c Court) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	if g.Tribunal().InCourt() {
		return engine.OutcomeNone
	}
	g.Tribunal().OpenCourt(a, g.Config().JudgeVoteCount)
	return engine.OutcomeSuccess
}

// ConstableShoot kills the target on the spot during the day.
type ConstableShoot struct{ engine.Spec }

func NewConstableShoot() ConstableShoot {
	return ConstableShoot{engine.Spec{
		Label:     "shoot",
		Immediate: true,
		Targets:   1,
		Kill:      true,
		Msgs: engine.Messages{
			Success: "You shot {target}.",
		},
		Crimes: map[engine.Outcome][]engine.Crime{
			engine.OutcomeSuccess: {engine.CrimeMurder},
		},
	}}
}

func (c ConstableShoot) Epitaph() string       { return engine.CauseConstable }
func (c ConstableShoot) IgnoresImmunity() bool { return true }

func (c ConstableShoot) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil || t == a {
		return engine.OutcomeNone
	}
	a.Reveal()
	if !g.Kill(t, engine.CauseConstable) {
		return engine.OutcomeNone
	}
	return engine.OutcomeSuccess
}

// PartyHost throws a party: nobody can be jailed tonight.
type PartyHost struct{ engine.Spec }

func NewPartyHost() PartyHost {
	return PartyHost{engine.Spec{
		Label:     "party",
		Immediate: true,
		Msgs: engine.Messages{
			Success:  "You are throwing a party tonight.",
			Announce: "{actor} is throwing a party tonight! The whole town is invited.",
		},
	}}
}

func (p PartyHost) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	if g.PartyPlanned() {
		return engine.OutcomeNone
	}
	g.PlanParty()
	return engine.OutcomeSuccess
}

// Jail (Jailor) takes the chosen target prisoner at dusk. The execution at
// night is a separate action.
type Jail struct{ engine.Spec }

func NewJail() Jail {
	return Jail{engine.Spec{
		Label:   "jail",
		Targets: 1,
		NoCost:  true,
		Msgs: engine.Messages{
			Success: "You hauled {target} off to jail.",
			Fail:    "The town is too restless to take prisoners tonight.",
		},
		Crimes: map[engine.Outcome][]engine.Crime{
			engine.OutcomeSuccess: {engine.CrimeKidnapping},
		},
	}}
}

func (j Jail) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil {
		return engine.OutcomeNone
	}
	return g.Imprison(a, t)
}
