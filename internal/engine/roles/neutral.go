package roles

import (
	"mafia/internal/engine"
	"mafia/internal/engine/actions"
)

func neutral() []*engine.Role {
	return []*engine.Role{
		{
			Name:         SerialKiller,
			Description:  "Kill someone each night. Anyone who tries to distract you dies instead.",
			Affiliation:  engine.Neutral,
			Groups:       []engine.Group{engine.GroupNeutralKilling},
			NightActions: []engine.Action{kill(engine.CauseSerial)},
			Immunities:   engine.ImmuneNight | engine.ImmuneRoleblock | engine.RoleblockIntercept,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinSoloKiller,
		},
		{
			Name:         MassMurderer,
			Description:  "Visit a house at night and kill everyone you find there.",
			Affiliation:  engine.Neutral,
			Groups:       []engine.Group{engine.GroupNeutralKilling},
			NightActions: []engine.Action{actions.NewMassMurder()},
			Immunities:   engine.ImmuneNight,
			AbilityUses:  engine.Unlimited,
			Win:          engine.WinSoloKiller,
		},
		{
			Name:        Jester,
			Description: "Trick the town into lynching you.",
			Affiliation: engine.Neutral,
			Groups:      []engine.Group{engine.GroupNeutralEvil},
			TargetGroup: engine.TargetNone,
			Win:         engine.WinJesterLynched,
		},
		{
			Name:        Executioner,
			Description: "Get your target lynched by the town. You cannot be killed at night.",
			Affiliation: engine.Neutral,
			Groups:      []engine.Group{engine.GroupNeutralEvil},
			TargetGroup: engine.TargetNone,
			Immunities:  engine.ImmuneNight,
			Win:         engine.WinExecutionerTarget,
		},
		{
			Name:        Survivor,
			Description: "Stay alive until the end. You have four bulletproof vests.",
			Affiliation: engine.Neutral,
			Groups:      []engine.Group{engine.GroupNeutralBenign},
			TargetGroup: engine.TargetNone,
			Vests:       4,
			Win:         engine.WinSurvivorAlive,
		},
		{
			Name:            Witch,
			Description:     "Control one person each night, sending them to a target of your choice.",
			Affiliation:     engine.Neutral,
			Groups:          []engine.Group{engine.GroupNeutralEvil},
			NightActions:    []engine.Action{actions.NewRedirect()},
			AllowSelfTarget: true,
			AbilityUses:     engine.Unlimited,
			Win:             engine.WinSurvivorAlive,
		},
		{
			Name:        Scumbag,
			Description: "Your role was taken from you. Survive.",
			Affiliation: engine.Neutral,
			Groups:      []engine.Group{engine.GroupNeutralEvil},
			TargetGroup: engine.TargetNone,
			Disabled:    true,
			Win:         engine.WinSurvivorAlive,
		},
	}
}
