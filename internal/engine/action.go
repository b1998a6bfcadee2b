package engine

import "strings"

// Outcome is the result of executing an action.
type Outcome int

const (
	// OutcomeNone means the action did not apply: no target, a dead target,
	// or nothing to act upon. It costs no ability use and sends no messages.
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFail
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:    "none",
	OutcomeSuccess: "success",
	OutcomeFail:    "fail",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Canonical precedences. Lower runs earlier.
const (
	PrecedenceSuicide     = 0
	PrecedenceRoleblock   = 10
	PrecedenceRedirect    = 15
	PrecedenceAlert       = 20
	PrecedenceFrame       = 25
	PrecedenceExecute     = 75
	PrecedenceHeal        = 80
	PrecedenceProtect     = 90
	PrecedenceKill        = 100
	PrecedenceHealReport  = 110
	PrecedenceAudit       = 140
	PrecedenceObscure     = 150
	PrecedenceInvestigate = 1500
)

// Crime is a tag investigators can discover.
type Crime string

const (
	CrimeTrespassing Crime = "Trespassing"
	CrimeMurder      Crime = "Murder"
	CrimeKidnapping  Crime = "Kidnapping"
	CrimeSoliciting  Crime = "Soliciting"
	CrimeCorruption  Crime = "Corruption"
	CrimeConspiracy  Crime = "Conspiracy"
	CrimeDestruction Crime = "Destruction of Property"
	CrimeIdentity    Crime = "Identity Theft"
	CrimeDisturbance Crime = "Disturbing the Peace"
)

// AllCrimes lists every crime tag; frames draw from it.
func AllCrimes() []Crime {
	return []Crime{
		CrimeTrespassing, CrimeMurder, CrimeKidnapping, CrimeSoliciting,
		CrimeCorruption, CrimeConspiracy, CrimeDestruction, CrimeIdentity,
		CrimeDisturbance,
	}
}

// Messages holds per-outcome templates. {actor} and {target} are replaced
// with display names; empty templates are not sent.
type Messages struct {
	Success       string // private feedback to the actor
	Fail          string
	TargetSuccess string // private message to each target
	TargetFail    string
	Announce      string // public, on success only
}

func render(tmpl string, actor, target string) string {
	return strings.NewReplacer("{actor}", actor, "{target}", target).Replace(tmpl)
}

// Action is a night or day ability. Concrete actions embed Spec for the
// descriptor half and implement Execute.
type Action interface {
	Name() string
	Precedence() int
	Arity() int
	Instant() bool
	IsKill() bool
	// Costs reports whether a defined outcome spends an ability use.
	Costs() bool
	Text() Messages
	CrimesFor(o Outcome) []Crime
	// Execute runs the effect for actor a, reading a.Targets().
	Execute(g *Game, a *Actor) Outcome
}

// Spec is the data half of an action.
type Spec struct {
	Label     string
	Order     int
	Targets   int
	Immediate bool
	Kill      bool
	NoCost    bool
	Msgs      Messages
	Crimes    map[Outcome][]Crime
}

func (s Spec) Name() string    { return s.Label }
func (s Spec) Precedence() int { return s.Order }
func (s Spec) Arity() int      { return s.Targets }
func (s Spec) Instant() bool   { return s.Immediate }
func (s Spec) IsKill() bool    { return s.Kill }
func (s Spec) Costs() bool     { return !s.NoCost }
func (s Spec) Text() Messages  { return s.Msgs }

func (s Spec) CrimesFor(o Outcome) []Crime {
	if s.Crimes == nil {
		return nil
	}
	return s.Crimes[o]
}
