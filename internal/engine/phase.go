package engine

// GamePhase represents the coarse turn cycle of the game.
type GamePhase int

const (
	PhaseInit          GamePhase = iota // participants joining, roles not assigned
	PhaseDaybreak                       // night results are announced
	PhaseDaylight                       // tribunal runs
	PhaseDusk                           // jail pairings are committed
	PhaseNight                          // participants submit night targets
	PhaseNightSequence                  // input locked, resolver runs
	PhaseConcluded                      // game over
)

var phaseNames = map[GamePhase]string{
	PhaseInit:          "Init",
	PhaseDaybreak:      "Daybreak",
	PhaseDaylight:      "Daylight",
	PhaseDusk:          "Dusk",
	PhaseNight:         "Night",
	PhaseNightSequence: "NightSequence",
	PhaseConcluded:     "Concluded",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Next returns the phase that follows p in the turn cycle.
// PhaseConcluded is terminal.
func (p GamePhase) Next() GamePhase {
	switch p {
	case PhaseInit:
		return PhaseDaybreak
	case PhaseDaybreak:
		return PhaseDaylight
	case PhaseDaylight:
		return PhaseDusk
	case PhaseDusk:
		return PhaseNight
	case PhaseNight:
		return PhaseNightSequence
	case PhaseNightSequence:
		return PhaseDaybreak
	default:
		return PhaseConcluded
	}
}

// IsDay reports whether p is one of the daytime phases.
func (p GamePhase) IsDay() bool {
	return p == PhaseDaybreak || p == PhaseDaylight
}
