package actions

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mafia/internal/engine"
)

// InvestigationKind selects what an investigation reveals.
type InvestigationKind int

const (
	// Suspicion reveals Mafia, Triad, a neutral killer's role or
	// Not Suspicious.
	Suspicion InvestigationKind = iota
	Crimes
	Exact
)

// Investigate (Sheriff, Investigator, Detective, Consigliere, Administrator)
// runs after every other action, so it sees tonight's frames and crimes.
type Investigate struct {
	engine.Spec
	Kind InvestigationKind
}

func NewInvestigate(kind InvestigationKind) Investigate {
	label := map[InvestigationKind]string{
		Suspicion: "check",
		Crimes:    "investigate",
		Exact:     "examine",
	}[kind]
	return Investigate{
		Spec: engine.Spec{
			Label:   label,
			Order:   engine.PrecedenceInvestigate,
			Targets: 1,
			Crimes:  crimes(engine.CrimeTrespassing),
		},
		Kind: kind,
	}
}

func (inv Investigate) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil {
		return engine.OutcomeNone
	}
	g.Feedback(a, inv.result(t))
	t.MarkInvestigated()
	return engine.OutcomeSuccess
}

func (inv Investigate) result(t *engine.Actor) string {
	switch inv.Kind {
	case Crimes:
		cs := t.InvestigatedCrimes()
		if len(cs) == 0 {
			return fmt.Sprintf("%s has committed no crimes.", t.Name)
		}
		names := make([]string, len(cs))
		for i, c := range cs {
			names[i] = string(c)
		}
		return fmt.Sprintf("%s is guilty of %s.", t.Name, strings.Join(names, ", "))
	case Exact:
		return fmt.Sprintf("%s is the %s.", t.Name, t.InvestigatedRole())
	}
	switch s := t.InvestigatedSuspicion(); s {
	case engine.NotSuspicious:
		return fmt.Sprintf("%s is not suspicious.", t.Name)
	case engine.Mafia.String(), engine.Triad.String():
		return fmt.Sprintf("%s is a member of the %s!", t.Name, s)
	default:
		return fmt.Sprintf("%s is a %s!", t.Name, s)
	}
}

// Audit (Auditor): turns the target into a Citizen, or a Scumbag when they
// do not belong to the town. Detection immunity protects against it.
type Audit struct{ engine.Spec }

func NewAudit() Audit {
	return Audit{engine.Spec{
		Label:   "audit",
		Order:   engine.PrecedenceAudit,
		Targets: 1,
		Msgs: engine.Messages{
			Success:       "You audited {target}.",
			Fail:          "{target} could not be audited.",
			TargetSuccess: "You have been audited.",
		},
		Crimes: crimes(engine.CrimeTrespassing, engine.CrimeCorruption),
	}}
}

func (au Audit) Execute(g *engine.Game, a *engine.Actor) engine.Outcome {
	t := live(a)
	if t == nil {
		return engine.OutcomeNone
	}
	if t.Role().Has(engine.ImmuneDetect) {
		return engine.OutcomeFail
	}
	to := "Scumbag"
	if t.Role().Affiliation == engine.Town {
		to = "Citizen"
	}
	t.ClearFrame()
	if err := g.Transform(t, to); err != nil {
		g.Log().Error("audit transform failed", zap.String("actor", t.Name), zap.String("role", to), zap.Error(err))
		return engine.OutcomeFail
	}
	return engine.OutcomeSuccess
}
