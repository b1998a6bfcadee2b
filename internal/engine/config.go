package engine

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that reads and writes Go duration strings
// ("90s", "2m") in JSON.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n float64
		if err2 := json.Unmarshal(b, &n); err2 != nil {
			return fmt.Errorf("duration must be a string like \"90s\": %w", err)
		}
		*d = Duration(time.Duration(n * float64(time.Second)))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Timing holds the minimum real-time length of each phase and tribunal
// sub-phase.
type Timing struct {
	DayDuration           Duration `json:"day_duration"`
	NightDuration         Duration `json:"night_duration"`
	TrialDefenseDuration  Duration `json:"trial_defense_duration"`
	LynchVoteDuration     Duration `json:"lynch_vote_duration"`
	VerdictDuration       Duration `json:"verdict_duration"`
	DaybreakToDaylight    Duration `json:"daybreak_to_daylight"`
	DuskToNight           Duration `json:"dusk_to_night"`
	NightSequenceDuration Duration `json:"night_sequence_duration"`
	SkipFirstDay          bool     `json:"skip_first_day"`
}

// Exclude removes Role from draws of Group.
type Exclude struct {
	Group Group  `json:"group"`
	Role  string `json:"role"`
}

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	RoleList      []string                  `json:"role_list"`
	RoleWeights   map[string]float64        `json:"role_weights"`
	Excludes      []Exclude                 `json:"excludes"`
	RoleOverrides map[string]map[string]any `json:"role_overrides"`
	Timing        Timing                    `json:"timing"`

	MarshallLynches                   int  `json:"marshall_lynches"`
	MayorVoteCount                    int  `json:"mayor_vote_count"`
	JudgeVoteCount                    int  `json:"judge_vote_count"`
	JesterRandomGuiltyVoterDies       bool `json:"jester_random_guilty_voter_dies"`
	ExecutionerBecomesJesterOnFailure bool `json:"executioner_becomes_jester_on_failure"`
	// BodyguardBlocksUnstoppable lets bodyguards intercept attackers whose
	// kills ignore immunity.
	BodyguardBlocksUnstoppable bool `json:"bodyguard_blocks_unstoppable"`

	MaxParticipants int   `json:"max_participants"`
	StalemateTurns  int   `json:"stalemate_turns"`
	BusQueueSize    int   `json:"bus_queue_size"`
	Seed            int64 `json:"seed"` // 0 picks a random seed
}

// DefaultConfig returns the knobs and timing of a standard game. The role
// list is left empty; the roles package supplies one.
func DefaultConfig() GameConfig {
	return GameConfig{
		RoleWeights:   map[string]float64{},
		RoleOverrides: map[string]map[string]any{},
		Timing: Timing{
			DayDuration:           Duration(3 * time.Minute),
			NightDuration:         Duration(45 * time.Second),
			TrialDefenseDuration:  Duration(20 * time.Second),
			LynchVoteDuration:     Duration(20 * time.Second),
			VerdictDuration:       Duration(5 * time.Second),
			DaybreakToDaylight:    Duration(10 * time.Second),
			DuskToNight:           Duration(5 * time.Second),
			NightSequenceDuration: Duration(5 * time.Second),
		},
		MarshallLynches:                   3,
		MayorVoteCount:                    4,
		JudgeVoteCount:                    3,
		JesterRandomGuiltyVoterDies:       true,
		ExecutionerBecomesJesterOnFailure: true,
		BodyguardBlocksUnstoppable:        true,
		MaxParticipants:                   15,
		StalemateTurns:                    3,
		BusQueueSize:                      256,
	}
}

func (c GameConfig) withDefaults() GameConfig {
	d := DefaultConfig()
	if c.MaxParticipants <= 0 {
		c.MaxParticipants = d.MaxParticipants
	}
	if c.StalemateTurns <= 0 {
		c.StalemateTurns = d.StalemateTurns
	}
	if c.BusQueueSize <= 0 {
		c.BusQueueSize = d.BusQueueSize
	}
	if c.MarshallLynches <= 0 {
		c.MarshallLynches = d.MarshallLynches
	}
	if c.MayorVoteCount <= 0 {
		c.MayorVoteCount = d.MayorVoteCount
	}
	if c.JudgeVoteCount <= 0 {
		c.JudgeVoteCount = d.JudgeVoteCount
	}
	if c.RoleWeights == nil {
		c.RoleWeights = map[string]float64{}
	}
	if c.RoleOverrides == nil {
		c.RoleOverrides = map[string]map[string]any{}
	}
	return c
}
