package engine

import (
	"sort"

	"go.uber.org/zap"
)

// WinCondition selects the predicate that decides whether an actor won.
type WinCondition int

const (
	WinTown WinCondition = iota
	WinMafia
	WinTriad
	WinSoloKiller
	WinJesterLynched
	WinSurvivorAlive
	WinExecutionerTarget
	WinAuto
)

var winNames = map[WinCondition]string{
	WinTown:              "town",
	WinMafia:             "mafia",
	WinTriad:             "triad",
	WinSoloKiller:        "solo-killer",
	WinJesterLynched:     "jester-lynched",
	WinSurvivorAlive:     "survivor-alive",
	WinExecutionerTarget: "executioner-target",
	WinAuto:              "auto",
}

func (w WinCondition) String() string {
	if s, ok := winNames[w]; ok {
		return s
	}
	return "unknown"
}

// Result describes a concluded game.
type Result struct {
	Reason  string   `json:"reason"`
	Winners []string `json:"winners"`
	Losers  []string `json:"losers"`
}

// won evaluates a's win predicate against the current table.
func (g *Game) won(a *Actor) bool {
	switch a.role.Win {
	case WinTown:
		return len(g.liveEvils()) == 0
	case WinMafia:
		return g.factionWon(a, Mafia)
	case WinTriad:
		return g.factionWon(a, Triad)
	case WinSoloKiller:
		if !a.alive || len(g.liveActors()) > 2 {
			return false
		}
		for _, o := range g.liveActors() {
			if o != a && o.role.IsEvil() {
				return false
			}
		}
		return true
	case WinJesterLynched:
		return a.lynched
	case WinSurvivorAlive:
		return a.alive
	case WinExecutionerTarget:
		return a.exeWon
	case WinAuto:
		return true
	}
	return false
}

func (g *Game) factionWon(a *Actor, f Affiliation) bool {
	members, town := 0, 0
	for _, o := range g.liveActors() {
		switch {
		case o.role.Affiliation == f:
			members++
		case o.role.Affiliation == Town:
			town++
		case o.role.IsEvil():
			// a rival faction or neutral killer still stands
			return false
		}
	}
	return members > 0 && members >= town
}

// checkEnd concludes the game when an end condition holds. It reports
// whether the game is over.
func (g *Game) checkEnd() bool {
	if g.phase == PhaseConcluded {
		return true
	}
	live := g.liveActors()
	var reason string
	switch {
	case len(g.liveEvils()) == 0:
		reason = "The town has purged every threat."
	case g.countAffiliation(Town) == 0:
		reason = "No member of the town is left alive."
	case len(live) == 2:
		reason = "Only two remain."
	case g.turn-g.lastDeathTurn >= g.cfg.StalemateTurns:
		reason = "Nobody has died for too long. Stalemate."
	default:
		return false
	}
	g.conclude(reason, false)
	return true
}

// conclude ends the game. With auto set every actor is declared a winner,
// which is how scheduler invariant violations end a game.
func (g *Game) conclude(reason string, auto bool) {
	if g.phase == PhaseConcluded {
		return
	}
	g.phase = PhaseConcluded

	res := Result{Reason: reason}
	for _, a := range g.actors {
		if a.role == nil {
			continue
		}
		if auto || g.won(a) {
			res.Winners = append(res.Winners, a.Name)
		} else {
			res.Losers = append(res.Losers, a.Name)
		}
	}
	sort.Strings(res.Winners)
	sort.Strings(res.Losers)
	g.result = &res

	body := reason
	if len(res.Winners) > 0 {
		body += " Winners: " + joinNames(res.Winners)
	} else {
		body += " Nobody wins."
	}
	g.flushPending()
	g.Announce("Game over", body)
	g.log.Info("game concluded",
		zap.Strings("winners", res.Winners),
		zap.String("reason", reason),
	)
	if g.stop != nil {
		g.stop()
	}
}
