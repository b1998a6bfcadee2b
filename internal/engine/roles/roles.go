// Package roles defines the playable role catalog: the town, the two crime
// families and the neutrals.
package roles

import (
	"mafia/internal/engine"
	"mafia/internal/engine/actions"
)

// Role names.
const (
	Citizen      = "Citizen"
	Sheriff      = "Sheriff"
	Investigator = "Investigator"
	Detective    = "Detective"
	Doctor       = "Doctor"
	Bodyguard    = "Bodyguard"
	Escort       = "Escort"
	Vigilante    = "Vigilante"
	Veteran      = "Veteran"
	Jailor       = "Jailor"
	Constable    = "Constable"
	Mayor        = "Mayor"
	Marshall     = "Marshall"
	Auditor      = "Auditor"
	PartyHost    = "Party Host"

	Godfather   = "Godfather"
	Mafioso     = "Mafioso"
	Consort     = "Consort"
	Framer      = "Framer"
	Janitor     = "Janitor"
	Consigliere = "Consigliere"
	Beguiler    = "Beguiler"
	Judge       = "Judge"

	DragonHead    = "Dragon Head"
	Enforcer      = "Enforcer"
	Liaison       = "Liaison"
	Deceiver      = "Deceiver"
	IncenseMaster = "Incense Master"
	Administrator = "Administrator"

	SerialKiller = "Serial Killer"
	MassMurderer = "Mass Murderer"
	Jester       = "Jester"
	Executioner  = "Executioner"
	Survivor     = "Survivor"
	Witch        = "Witch"
	Scumbag      = "Scumbag"
)

// All returns a fresh descriptor for every role.
func All() []*engine.Role {
	var out []*engine.Role
	out = append(out, town()...)
	out = append(out, mafia()...)
	out = append(out, triad()...)
	out = append(out, neutral()...)
	return out
}

// Register adds every role to cat.
func Register(cat *engine.Catalog) {
	for _, r := range All() {
		cat.Register(r)
	}
}

// NewCatalog returns a catalog holding every role.
func NewCatalog() *engine.Catalog {
	cat := engine.NewCatalog()
	Register(cat)
	return cat
}

// DefaultRoleList is the standard fifteen-player setup.
var DefaultRoleList = []string{
	"Name::" + Godfather,
	"Name::" + Sheriff,
	"Name::" + Doctor,
	"Group::" + string(engine.GroupTownInvestigative),
	"Name::" + Mafioso,
	"Group::" + string(engine.GroupTownProtective),
	"Group::" + string(engine.GroupNeutralBenign),
	"Group::" + string(engine.GroupTownKilling),
	"Group::" + string(engine.GroupMafia),
	"Group::" + string(engine.GroupTownSupport),
	"Group::" + string(engine.GroupNeutralEvil),
	"Group::" + string(engine.GroupTownPower),
	"Group::" + string(engine.GroupTown),
	"Group::" + string(engine.GroupNeutralKilling),
	"Group::" + string(engine.GroupAny),
}

// DefaultConfig returns engine.DefaultConfig with the standard role list
// and every drawable role weighted equally.
func DefaultConfig() engine.GameConfig {
	cfg := engine.DefaultConfig()
	cfg.RoleList = append([]string(nil), DefaultRoleList...)
	for _, r := range All() {
		if !r.Disabled {
			cfg.RoleWeights[r.Name] = 1
		}
	}
	return cfg
}

// kill is the ordinary night kill leaving cause as the epitaph.
func kill(cause string) engine.Action {
	return actions.NewKill(cause)
}
