package roles

import (
	"mafia/internal/engine"
	"mafia/internal/engine/actions"
)

func town() []*engine.Role {
	return []*engine.Role{
		{
			Name:        Citizen,
			Description: "An ordinary member of the town with one bulletproof vest.",
			Affiliation: engine.Town,
			TargetGroup: engine.TargetNone,
			Vests:       1,
			Disabled:    true,
			Win:         engine.WinTown,
		},
		{
			Name:        Sheriff,
			Description: "Check one person each night for suspicious activity.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownInvestigative},
			NightActions: []engine.Action{
				actions.NewInvestigate(actions.Suspicion),
			},
			AbilityUses: engine.Unlimited,
			Win:         engine.WinTown,
		},
		{
			Name:        Investigator,
			Description: "Investigate one person each night for the crimes they committed.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownInvestigative},
			NightActions: []engine.Action{
				actions.NewInvestigate(actions.Crimes),
			},
			AbilityUses: engine.Unlimited,
			Win:         engine.WinTown,
		},
		{
			Name:        Detective,
			Description: "Learn the exact role of one person each night.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownInvestigative},
			NightActions: []engine.Action{
				actions.NewInvestigate(actions.Exact),
			},
			AbilityUses: engine.Unlimited,
			Win:         engine.WinTown,
		},
		{
			Name:        Doctor,
			Description: "Heal one person each night, saving them from a single attack.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownProtective},
			NightActions: []engine.Action{
				actions.NewHeal(),
				actions.NewHealReport(),
			},
			AbilityUses: engine.Unlimited,
			Win:         engine.WinTown,
		},
		{
			Name:        Bodyguard,
			Description: "Guard one person each night. You die fighting off their attacker, taking the attacker with you.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownProtective},
			NightActions: []engine.Action{
				actions.NewProtect(),
			},
			AbilityUses: engine.Unlimited,
			Win:         engine.WinTown,
		},
		{
			Name:        Escort,
			Description: "Distract one person each night so they cannot act.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownSupport},
			NightActions: []engine.Action{
				actions.NewRoleblock(),
			},
			AbilityUses: engine.Unlimited,
			Win:         engine.WinTown,
		},
		{
			Name:        Vigilante,
			Description: "Shoot one person at night. Killing a member of the town drives you to suicide.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownKilling},
			NightActions: []engine.Action{
				actions.NewVigilanteKill(),
			},
			AbilityUses: 3,
			Win:         engine.WinTown,
		},
		{
			Name:        Veteran,
			Description: "Go on alert at night, shooting everyone who visits you.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownKilling},
			NightActions: []engine.Action{
				actions.NewAlert(),
			},
			TargetGroup: engine.TargetSelf,
			Immunities:  engine.ImmuneRoleblock,
			AbilityUses: 3,
			Win:         engine.WinTown,
		},
		{
			Name:        Jailor,
			Description: "Pick a prisoner during the day. At night you may execute them.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownKilling, engine.GroupTownPower},
			DayActions: []engine.Action{
				actions.NewJail(),
			},
			NightActions: []engine.Action{
				actions.NewExecute(),
			},
			AbilityUses: 3,
			Unique:      true,
			Win:         engine.WinTown,
		},
		{
			Name:        Constable,
			Description: "Once per game, shoot someone dead in broad daylight.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownKilling},
			DayActions: []engine.Action{
				actions.NewConstableShoot(),
			},
			AbilityUses: 1,
			Win:         engine.WinTown,
		},
		{
			Name:        Mayor,
			Description: "Reveal yourself during the day to gain extra votes.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownPower},
			DayActions: []engine.Action{
				actions.NewMayorReveal(),
			},
			TargetGroup: engine.TargetNone,
			AbilityUses: engine.Unlimited,
			Unique:      true,
			Win:         engine.WinTown,
		},
		{
			Name:        Marshall,
			Description: "Once per game, declare martial law and allow several lynches in one day.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownPower},
			DayActions: []engine.Action{
				actions.NewMarshall(),
			},
			TargetGroup: engine.TargetNone,
			AbilityUses: 1,
			Unique:      true,
			Win:         engine.WinTown,
		},
		{
			Name:        Auditor,
			Description: "Audit someone at night, stripping them of their role.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownSupport},
			NightActions: []engine.Action{
				actions.NewAudit(),
			},
			AbilityUses: 3,
			Win:         engine.WinTown,
		},
		{
			Name:        PartyHost,
			Description: "Throw a party during the day so nobody can be jailed that night.",
			Affiliation: engine.Town,
			Groups:      []engine.Group{engine.GroupTownSupport},
			DayActions: []engine.Action{
				actions.NewPartyHost(),
			},
			TargetGroup: engine.TargetNone,
			AbilityUses: 2,
			Win:         engine.WinTown,
		},
	}
}
