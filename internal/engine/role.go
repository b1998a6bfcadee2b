package engine

// Affiliation is the broad team a role belongs to.
type Affiliation int

const (
	Town Affiliation = iota
	Mafia
	Triad
	Neutral
)

var affiliationNames = map[Affiliation]string{
	Town:    "Town",
	Mafia:   "Mafia",
	Triad:   "Triad",
	Neutral: "Neutral",
}

func (a Affiliation) String() string {
	if s, ok := affiliationNames[a]; ok {
		return s
	}
	return "Unknown"
}

// Group is a draw pool tag used by role lists.
type Group string

const (
	GroupAny                Group = "any"
	GroupTown               Group = "town"
	GroupMafia              Group = "mafia"
	GroupTriad              Group = "triad"
	GroupNeutral            Group = "neutral"
	GroupTownInvestigative  Group = "town-investigative"
	GroupTownProtective     Group = "town-protective"
	GroupTownKilling        Group = "town-killing"
	GroupTownPower          Group = "town-power"
	GroupTownSupport        Group = "town-support"
	GroupMafiaKilling       Group = "mafia-killing"
	GroupMafiaSupport       Group = "mafia-support"
	GroupMafiaDeception     Group = "mafia-deception"
	GroupTriadKilling       Group = "triad-killing"
	GroupTriadSupport       Group = "triad-support"
	GroupTriadDeception     Group = "triad-deception"
	GroupNeutralKilling     Group = "neutral-killing"
	GroupNeutralEvil        Group = "neutral-evil"
	GroupNeutralBenign      Group = "neutral-benign"
)

// TargetGroup restricts who an actor's actions may be aimed at.
type TargetGroup int

const (
	TargetLiveAny TargetGroup = iota
	TargetDead
	TargetLiveNonMafia
	TargetLiveNonTriad
	TargetSelf
	TargetNone
)

// Immunity is a bit set of protections a role carries.
type Immunity uint

const (
	ImmuneNight Immunity = 1 << iota
	ImmuneRoleblock
	RoleblockIntercept
	ImmuneTarget
	ImmuneDetect
	CannotBeHealed
)

var immunityKeys = []struct {
	flag Immunity
	name string
}{
	{ImmuneNight, "night_immune"},
	{ImmuneRoleblock, "roleblock_immune"},
	{RoleblockIntercept, "roleblock_intercept"},
	{ImmuneTarget, "target_immune"},
	{ImmuneDetect, "detect_immune"},
	{CannotBeHealed, "cannot_be_healed"},
}

// Names returns the configuration keys of the flags set in i.
func (i Immunity) Names() []string {
	var out []string
	for _, k := range immunityKeys {
		if i&k.flag != 0 {
			out = append(out, k.name)
		}
	}
	return out
}

// Unlimited marks an ability budget that never runs out.
const Unlimited = -1

// Role describes a role class. Instances handed to actors are clones, so
// configuration overrides never leak into the catalog.
type Role struct {
	Name        string
	Description string
	Affiliation Affiliation
	Groups      []Group

	DayActions   []Action
	NightActions []Action

	TargetGroup     TargetGroup
	AllowSelfTarget bool
	Immunities      Immunity

	AbilityUses int
	Vests       int

	Unique   bool
	Disabled bool

	Win WinCondition
}

// Has reports whether the role carries all the given immunity flags.
func (r *Role) Has(i Immunity) bool {
	return r.Immunities&i == i
}

// InGroup reports whether the role is a member of g.
func (r *Role) InGroup(g Group) bool {
	for _, rg := range r.Groups {
		if rg == g {
			return true
		}
	}
	return false
}

// IsKiller reports whether any night action of the role is tagged as a kill.
func (r *Role) IsKiller() bool {
	for _, a := range r.NightActions {
		if a.IsKill() {
			return true
		}
	}
	return false
}

// IsEvil reports whether the role blocks a town victory while alive.
func (r *Role) IsEvil() bool {
	return r.Affiliation == Mafia || r.Affiliation == Triad || r.InGroup(GroupNeutralKilling)
}

// Clone returns a deep copy of the descriptor. Actions are values and are
// shared.
func (r *Role) Clone() *Role {
	c := *r
	c.Groups = append([]Group(nil), r.Groups...)
	c.DayActions = append([]Action(nil), r.DayActions...)
	c.NightActions = append([]Action(nil), r.NightActions...)
	return &c
}
