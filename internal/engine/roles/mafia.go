package roles

import (
	"mafia/internal/engine"
	"mafia/internal/engine/actions"
)

func mafia() []*engine.Role {
	return []*engine.Role{
		{
			Name:         Godfather,
			Description:  "Leader of the Mafia. Kill at night. You cannot be killed at night and look innocent to investigators.",
			Affiliation:  engine.Mafia,
			Groups:       []engine.Group{engine.GroupMafiaKilling},
			NightActions: []engine.Action{kill(engine.CauseMafia)},
			TargetGroup:  engine.TargetLiveNonMafia,
			Immunities:   engine.ImmuneNight | engine.ImmuneDetect,
			AbilityUses:  engine.Unlimited,
			Unique:       true,
			Win:          engine.WinMafia,
		},
		{
			Name:         Mafioso,
			Description:  "Kill someone each night for the Mafia.",
			Affiliation:  engine.Mafia,
			Groups:       []engine.Group{engine.GroupMafiaKilling},
			NightActions: []engine.Action{kill(engine.CauseMafia)},
			TargetGroup:  engine.TargetLiveNonMafia,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinMafia,
		},
		{
			Name:         Consort,
			Description:  "Distract one person each night so they cannot act.",
			Affiliation:  engine.Mafia,
			Groups:       []engine.Group{engine.GroupMafiaSupport},
			NightActions: []engine.Action{actions.NewRoleblock()},
			TargetGroup:  engine.TargetLiveNonMafia,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinMafia,
		},
		{
			Name:         Framer,
			Description:  "Frame one person each night so investigators find them guilty.",
			Affiliation:  engine.Mafia,
			Groups:       []engine.Group{engine.GroupMafiaDeception},
			NightActions: []engine.Action{actions.NewFrame()},
			TargetGroup:  engine.TargetLiveNonMafia,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinMafia,
		},
		{
			Name:         Janitor,
			Description:  "Clean up a body at night, hiding the victim's role and last will.",
			Affiliation:  engine.Mafia,
			Groups:       []engine.Group{engine.GroupMafiaDeception},
			NightActions: []engine.Action{actions.NewObscure()},
			TargetGroup:  engine.TargetLiveNonMafia,
			AbilityUses:  2,
			Win:          engine.WinMafia,
		},
		{
			Name:         Consigliere,
			Description:  "Learn the exact role of one person each night.",
			Affiliation:  engine.Mafia,
			Groups:       []engine.Group{engine.GroupMafiaSupport},
			NightActions: []engine.Action{actions.NewInvestigate(actions.Exact)},
			TargetGroup:  engine.TargetLiveNonMafia,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinMafia,
		},
		{
			Name:         Beguiler,
			Description:  "Hide behind someone at night. Whoever visits you visits them instead.",
			Affiliation:  engine.Mafia,
			Groups:       []engine.Group{engine.GroupMafiaDeception},
			NightActions: []engine.Action{actions.NewHide()},
			AbilityUses:  2,
			Win:          engine.WinMafia,
		},
		{
			Name:        Judge,
			Description: "Call a secret court during the day, where your vote counts several times.",
			Affiliation: engine.Mafia,
			Groups:      []engine.Group{engine.GroupMafiaSupport},
			DayActions:  []engine.Action{actions.NewCourt()},
			TargetGroup: engine.TargetNone,
			AbilityUses: 1,
			Unique:      true,
			Win:         engine.WinMafia,
		},
	}
}
