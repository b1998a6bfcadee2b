package engine

import (
	"fmt"
	"sort"
)

// ParticipantKind distinguishes people from automated players.
type ParticipantKind int

const (
	Human ParticipantKind = iota
	Automated
)

func (k ParticipantKind) String() string {
	if k == Automated {
		return "automated"
	}
	return "human"
}

// Participant is the immutable identity behind an actor.
type Participant struct {
	Name string
	Kind ParticipantKind
}

// Attack records one kill attempt that landed on an actor this night.
type Attack struct {
	Cause string
	By    *Actor
}

// Suspicion results returned by InvestigatedSuspicion.
const (
	NotSuspicious = "Not Suspicious"
	UnknownRole   = "Unknown"
)

// Actor is a participant's in-game record. Actors are owned by the Game and
// addressed by Index; they do not hold a reference back to it.
type Actor struct {
	Index int
	Participant

	role        *Role
	visibleRole string
	alive       bool
	hp          int
	targets     []*Actor

	abilityUses int
	vests       int
	vestActive  bool
	vestArmed   bool
	alerted     bool

	crimes  map[Crime]struct{}
	attacks []Attack

	frame      *Role
	frameCrime Crime
	frameSpent bool

	lastWill  string
	deathNote string

	voteWeight int
	revealed   bool
	lynched    bool

	exeTarget *Actor
	exeWon    bool
	guiltyOf  *Actor

	inbox []string
}

func newActor(index int, p Participant) *Actor {
	return &Actor{
		Index:       index,
		Participant: p,
		alive:       true,
		hp:          1,
		voteWeight:  1,
		crimes:      make(map[Crime]struct{}),
	}
}

func (a *Actor) assign(r *Role) {
	a.role = r
	a.visibleRole = r.Name
	a.abilityUses = r.AbilityUses
	a.vests = r.Vests
}

func (a *Actor) String() string {
	if a == nil {
		return "<nobody>"
	}
	return a.Name
}

// Role returns the actor's current role.
func (a *Actor) Role() *Role { return a.role }

// Alive reports whether the actor is still playing.
func (a *Actor) Alive() bool { return a.alive }

// HP returns the current night hitpoints.
func (a *Actor) HP() int { return a.hp }

// AbilityUses returns the remaining charges; Unlimited is -1.
func (a *Actor) AbilityUses() int { return a.abilityUses }

// HasUses reports whether the actor can still use abilities.
func (a *Actor) HasUses() bool { return a.abilityUses != 0 }

// SpendUse deducts one ability charge unless the budget is unlimited.
func (a *Actor) SpendUse() {
	if a.abilityUses > 0 {
		a.abilityUses--
	}
}

// ClearUses removes every remaining ability charge.
func (a *Actor) ClearUses() { a.abilityUses = 0 }

// Targets returns a copy of the chosen targets.
func (a *Actor) Targets() []*Actor {
	return append([]*Actor(nil), a.targets...)
}

// Target returns the i-th target or nil.
func (a *Actor) Target(i int) *Actor {
	if i < 0 || i >= len(a.targets) {
		return nil
	}
	return a.targets[i]
}

// ChooseTargets overwrites the target list. Validation is deferred to
// resolution.
func (a *Actor) ChooseTargets(targets ...*Actor) {
	a.targets = append(a.targets[:0:0], targets...)
}

// SetTarget replaces the i-th target slot, growing the list when needed.
func (a *Actor) SetTarget(i int, t *Actor) {
	for len(a.targets) <= i {
		a.targets = append(a.targets, nil)
	}
	a.targets[i] = t
}

// Retarget replaces every occurrence of from with to.
func (a *Actor) Retarget(from, to *Actor) bool {
	changed := false
	for i, t := range a.targets {
		if t == from {
			a.targets[i] = to
			changed = true
		}
	}
	return changed
}

// IsTargeting reports whether t is among the chosen targets.
func (a *Actor) IsTargeting(t *Actor) bool {
	for _, x := range a.targets {
		if x == t {
			return true
		}
	}
	return false
}

// ResetTargets clears the target list.
func (a *Actor) ResetTargets() { a.targets = nil }

// Vests returns the vest inventory.
func (a *Actor) Vests() int { return a.vests }

// VestActive reports whether a vest is worn tonight.
func (a *Actor) VestActive() bool { return a.vestActive }

// PutOnVest activates a vest. The inventory is only spent by ConsumeVest.
func (a *Actor) PutOnVest() error {
	if a.vests <= 0 {
		return ErrNoVests
	}
	a.vestActive = true
	return nil
}

// TakeOffVest deactivates the vest without spending it.
func (a *Actor) TakeOffVest() error {
	if !a.vestActive || a.vestArmed {
		return fmt.Errorf("%w: no vest is worn", ErrNoVests)
	}
	a.vestActive = false
	return nil
}

// ArmVest grants one night of vest protection without inventory. Used for
// jailed prisoners.
func (a *Actor) ArmVest() {
	a.vestActive = true
	a.vestArmed = true
}

// ConsumeVest spends the active vest, if any. A vest granted by ArmVest
// expires without touching the inventory.
func (a *Actor) ConsumeVest() {
	if !a.vestActive {
		return
	}
	a.vestActive = false
	if a.vestArmed {
		a.vestArmed = false
		return
	}
	if a.vests > 0 {
		a.vests--
	}
}

// Alert arms a veteran for the rest of the night.
func (a *Actor) Alert() { a.alerted = true }

// Alerted reports whether the actor is on alert tonight.
func (a *Actor) Alerted() bool { return a.alerted }

// NightImmune reports whether conventional attacks fail against the actor.
func (a *Actor) NightImmune() bool {
	return a.role.Has(ImmuneNight) || a.vestActive || a.alerted
}

// Attack applies damage from a kill action. Without ignoreImmunity, night
// immunity and active vests make the attack fail. Death is declared later
// by the resolver when hitpoints drop to zero.
func (a *Actor) Attack(by *Actor, cause string, damage int, ignoreImmunity bool) Outcome {
	if !a.alive {
		return OutcomeNone
	}
	if !ignoreImmunity && a.NightImmune() {
		return OutcomeFail
	}
	a.hp -= damage
	a.attacks = append(a.attacks, Attack{Cause: cause, By: by})
	return OutcomeSuccess
}

// Heal adds a hitpoint unless the role refuses healing.
func (a *Actor) Heal() Outcome {
	if !a.alive {
		return OutcomeNone
	}
	if a.role.Has(CannotBeHealed) {
		return OutcomeFail
	}
	a.hp++
	return OutcomeSuccess
}

// Attacks returns the kill attempts that landed tonight, in order.
func (a *Actor) Attacks() []Attack {
	return append([]Attack(nil), a.attacks...)
}

// WasAttacked reports whether any attack landed tonight.
func (a *Actor) WasAttacked() bool { return len(a.attacks) > 0 }

// AddCrimes merges tags into the crime set.
func (a *Actor) AddCrimes(cs ...Crime) {
	for _, c := range cs {
		a.crimes[c] = struct{}{}
	}
}

// Crimes returns the committed crimes, sorted.
func (a *Actor) Crimes() []Crime {
	return sortedCrimes(a.crimes)
}

func sortedCrimes(set map[Crime]struct{}) []Crime {
	out := make([]Crime, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Frame makes investigators see r and crime instead of the truth until the
// frame is spent.
func (a *Actor) Frame(r *Role, crime Crime) {
	a.frame = r
	a.frameCrime = crime
	a.frameSpent = false
}

// ClearFrame removes any active frame.
func (a *Actor) ClearFrame() {
	a.frame = nil
	a.frameCrime = ""
	a.frameSpent = false
}

// Framed reports whether a frame is active.
func (a *Actor) Framed() bool { return a.frame != nil }

// MarkInvestigated schedules the frame to expire at the end of the night.
func (a *Actor) MarkInvestigated() {
	if a.frame != nil {
		a.frameSpent = true
	}
}

// InvestigatedCrimes is what crime investigators learn.
func (a *Actor) InvestigatedCrimes() []Crime {
	if a.role.Has(ImmuneDetect) {
		return nil
	}
	if a.frame == nil {
		return a.Crimes()
	}
	set := make(map[Crime]struct{}, len(a.crimes)+1)
	for c := range a.crimes {
		set[c] = struct{}{}
	}
	set[a.frameCrime] = struct{}{}
	return sortedCrimes(set)
}

// InvestigatedRole is what exact-role investigators learn.
func (a *Actor) InvestigatedRole() string {
	if a.role.Has(ImmuneDetect) {
		return "Citizen"
	}
	if a.frame != nil {
		return a.frame.Name
	}
	return a.role.Name
}

// InvestigatedSuspicion is what suspicion investigators learn.
func (a *Actor) InvestigatedSuspicion() string {
	if a.role.Has(ImmuneDetect) {
		return NotSuspicious
	}
	r := a.role
	if a.frame != nil {
		r = a.frame
	}
	switch {
	case r.Affiliation == Mafia:
		return Mafia.String()
	case r.Affiliation == Triad:
		return Triad.String()
	case r.InGroup(GroupNeutralKilling):
		return r.Name
	}
	return NotSuspicious
}

// VisibleRole is the role revealed on death.
func (a *Actor) VisibleRole() string { return a.visibleRole }

// Obscure hides the role and last will from the death reveal.
func (a *Actor) Obscure() {
	a.visibleRole = UnknownRole
	a.lastWill = ""
}

// Obscured reports whether the death reveal is hidden.
func (a *Actor) Obscured() bool { return a.visibleRole == UnknownRole }

// LastWill returns the actor's will.
func (a *Actor) LastWill() string { return a.lastWill }

// DeathNote returns the note the actor leaves on victims.
func (a *Actor) DeathNote() string { return a.deathNote }

// VoteWeight returns the persistent vote weight.
func (a *Actor) VoteWeight() int { return a.voteWeight }

// SetVoteWeight changes the persistent vote weight.
func (a *Actor) SetVoteWeight(w int) { a.voteWeight = w }

// Reveal marks the actor as publicly revealed.
func (a *Actor) Reveal() { a.revealed = true }

// Revealed reports whether the actor revealed their role publicly.
func (a *Actor) Revealed() bool { return a.revealed }

// Lynched reports whether the tribunal executed the actor.
func (a *Actor) Lynched() bool { return a.lynched }

// ExecutionerTarget returns the actor an executioner must get lynched.
func (a *Actor) ExecutionerTarget() *Actor { return a.exeTarget }

// MarkGuilty records an attack on a town member. If the victim is dead when
// the night ends, the actor takes their own life the following night.
func (a *Actor) MarkGuilty(victim *Actor) { a.guiltyOf = victim }

// Inbox returns the private messages received so far.
func (a *Actor) Inbox() []string {
	return append([]string(nil), a.inbox...)
}

// beginNight resets the per-night fields.
func (a *Actor) beginNight() {
	a.hp = 1
	a.attacks = nil
	a.alerted = false
}
