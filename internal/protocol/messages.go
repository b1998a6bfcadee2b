package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgPlayerState = "player_state"
	MsgEvent       = "event"
	MsgGameOver    = "game_over"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	MsgTargets   = "targets"
	MsgVest      = "vest"
	MsgTrialVote = "trial_vote"
	MsgSkipVote  = "skip_vote"
	MsgLynchVote = "lynch_vote"
	MsgSay       = "say"
	MsgLastWill  = "last_will"
	MsgDeathNote = "death_note"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID  string        `json:"game_id"`
	Players []LobbyPlayer `json:"players"`
	Started bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// TargetsMsg replaces the sender's target list. An empty list fires an
// untargeted day ability.
type TargetsMsg struct {
	Targets []string `json:"targets"`
}

// VestMsg puts a vest on or takes it off for tonight.
type VestMsg struct {
	On bool `json:"on"`
}

// TrialVoteMsg nominates a candidate. An empty candidate skips the trial.
type TrialVoteMsg struct {
	Candidate string `json:"candidate"`
}

// LynchVoteMsg carries "guilty", "innocent" or "abstain".
type LynchVoteMsg struct {
	Verdict string `json:"verdict"`
}

// TextMsg carries chat lines, last wills and death notes.
type TextMsg struct {
	Text string `json:"text"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
