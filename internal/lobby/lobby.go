package lobby

import (
	"errors"
	"strings"
	"sync"

	"mafia/internal/engine"
)

var (
	ErrStarted          = errors.New("game already started")
	ErrFull             = errors.New("lobby is full")
	ErrNameTaken        = errors.New("name already taken")
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNotReady         = errors.New("not all players ready")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Kind  engine.ParticipantKind
	Ready bool
}

// Lobby seats participants until the game starts. Once started it holds the
// running game.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Started    bool
	game       *engine.Game
}

// NewLobby creates a new lobby.
func NewLobby(id string, maxPlayers int) *Lobby {
	if maxPlayers <= 0 {
		maxPlayers = 15
	}
	return &Lobby{
		ID:         id,
		MaxPlayers: maxPlayers,
		MinPlayers: 3,
	}
}

// Join seats a participant. Automated participants are ready at once. A
// human rejoining with a known ID keeps the seat and may rename.
func (l *Lobby) Join(id, name string, kind engine.ParticipantKind) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for _, p := range l.Players {
		if p.ID == id {
			if l.Started {
				return nil
			}
			if l.nameTaken(name, id) {
				return ErrNameTaken
			}
			p.Name = name
			return nil
		}
	}
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return ErrFull
	}
	if l.nameTaken(name, id) {
		return ErrNameTaken
	}
	l.Players = append(l.Players, &PlayerInfo{
		ID:    id,
		Name:  name,
		Kind:  kind,
		Ready: kind == engine.Automated,
	})
	return nil
}

func (l *Lobby) nameTaken(name, except string) bool {
	for _, p := range l.Players {
		if p.ID != except && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// Leave removes a player from the lobby. Seats are kept after the start.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// CanStart returns true if enough players are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checkStart() == nil
}

func (l *Lobby) checkStart() error {
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) < l.MinPlayers {
		return ErrNotEnoughPlayers
	}
	for _, p := range l.Players {
		if !p.Ready {
			return ErrNotReady
		}
	}
	return nil
}

// Start marks the lobby as started and returns the seated players.
func (l *Lobby) Start() ([]PlayerInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkStart(); err != nil {
		return nil, err
	}
	l.Started = true
	return l.players(), nil
}

// IsStarted reports whether Start succeeded.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.players()
}

func (l *Lobby) players() []PlayerInfo {
	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}

// Player looks a seat up by ID.
func (l *Lobby) Player(id string) (PlayerInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.Players {
		if p.ID == id {
			return *p, true
		}
	}
	return PlayerInfo{}, false
}

// Game returns the running game, or nil before the start.
func (l *Lobby) Game() *engine.Game {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.game
}

// abort undoes Start after the game could not be set up.
func (l *Lobby) abort() {
	l.mu.Lock()
	l.Started = false
	l.mu.Unlock()
}

func (l *Lobby) setGame(g *engine.Game) {
	l.mu.Lock()
	l.game = g
	l.mu.Unlock()
}
