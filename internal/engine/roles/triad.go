package roles

import (
	"mafia/internal/engine"
	"mafia/internal/engine/actions"
)

func triad() []*engine.Role {
	return []*engine.Role{
		{
			Name:         DragonHead,
			Description:  "Leader of the Triad. Kill at night. You cannot be killed at night and look innocent to investigators.",
			Affiliation:  engine.Triad,
			Groups:       []engine.Group{engine.GroupTriadKilling},
			NightActions: []engine.Action{kill(engine.CauseTriad)},
			TargetGroup:  engine.TargetLiveNonTriad,
			Immunities:   engine.ImmuneNight | engine.ImmuneDetect,
			AbilityUses:  engine.Unlimited,
			Unique:       true,
			Win:          engine.WinTriad,
		},
		{
			Name:         Enforcer,
			Description:  "Kill someone each night for the Triad.",
			Affiliation:  engine.Triad,
			Groups:       []engine.Group{engine.GroupTriadKilling},
			NightActions: []engine.Action{kill(engine.CauseTriad)},
			TargetGroup:  engine.TargetLiveNonTriad,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinTriad,
		},
		{
			Name:         Liaison,
			Description:  "Distract one person each night so they cannot act.",
			Affiliation:  engine.Triad,
			Groups:       []engine.Group{engine.GroupTriadSupport},
			NightActions: []engine.Action{actions.NewRoleblock()},
			TargetGroup:  engine.TargetLiveNonTriad,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinTriad,
		},
		{
			Name:         Deceiver,
			Description:  "Frame one person each night so investigators find them guilty.",
			Affiliation:  engine.Triad,
			Groups:       []engine.Group{engine.GroupTriadDeception},
			NightActions: []engine.Action{actions.NewFrame()},
			TargetGroup:  engine.TargetLiveNonTriad,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinTriad,
		},
		{
			Name:         IncenseMaster,
			Description:  "Hide the role and last will of a body at night.",
			Affiliation:  engine.Triad,
			Groups:       []engine.Group{engine.GroupTriadDeception},
			NightActions: []engine.Action{actions.NewObscure()},
			TargetGroup:  engine.TargetLiveNonTriad,
			AbilityUses:  2,
			Win:          engine.WinTriad,
		},
		{
			Name:         Administrator,
			Description:  "Learn the exact role of one person each night.",
			Affiliation:  engine.Triad,
			Groups:       []engine.Group{engine.GroupTriadSupport},
			NightActions: []engine.Action{actions.NewInvestigate(actions.Exact)},
			TargetGroup:  engine.TargetLiveNonTriad,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinTriad,
		},
	}
}
