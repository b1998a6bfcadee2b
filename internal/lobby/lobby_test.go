package lobby_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"mafia/internal/engine"
	"mafia/internal/engine/roles"
	"mafia/internal/lobby"
)

func TestJoinAndReady(t *testing.T) {
	l := lobby.NewLobby("g1", 4)
	if err := l.Join("a", "Alice", engine.Human); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := l.Join("b", "alice", engine.Human); !errors.Is(err, lobby.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	if err := l.Join("b", "Bob", engine.Human); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := l.Join("bot", "Robo", engine.Automated); err != nil {
		t.Fatalf("join: %v", err)
	}
	if l.CanStart() {
		t.Fatal("humans have not readied up")
	}
	l.SetReady("a", true)
	l.SetReady("b", true)
	if !l.CanStart() {
		t.Fatal("everyone is ready")
	}

	players := l.GetPlayers()
	if len(players) != 3 || !players[2].Ready {
		t.Fatalf("automated players are ready on join: %+v", players)
	}
}

func TestRejoinRenames(t *testing.T) {
	l := lobby.NewLobby("g1", 4)
	l.Join("a", "Alice", engine.Human)
	if err := l.Join("a", "Alicia", engine.Human); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if p, _ := l.Player("a"); p.Name != "Alicia" {
		t.Fatalf("expected rename, got %q", p.Name)
	}
	if len(l.GetPlayers()) != 1 {
		t.Fatal("rejoin must not take a second seat")
	}
}

func TestLobbyLimits(t *testing.T) {
	l := lobby.NewLobby("g1", 2)
	l.Join("a", "A", engine.Automated)
	l.Join("b", "B", engine.Automated)
	if err := l.Join("c", "C", engine.Automated); !errors.Is(err, lobby.ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if _, err := l.Start(); !errors.Is(err, lobby.ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	if err := l.Join("", " ", engine.Human); !errors.Is(err, lobby.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestLeaveBeforeStart(t *testing.T) {
	l := lobby.NewLobby("g1", 4)
	l.Join("a", "A", engine.Human)
	l.Leave("a")
	if len(l.GetPlayers()) != 0 {
		t.Fatal("player should have left")
	}
}

func newManager(names ...string) *lobby.Manager {
	cfg := roles.DefaultConfig()
	cfg.Timing = engine.Timing{}
	cfg.RoleList = nil
	for _, n := range names {
		cfg.RoleList = append(cfg.RoleList, "Name::"+n)
	}
	cfg.Seed = 3
	clock := engine.NewManualClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return lobby.NewManager(cfg, roles.NewCatalog(), nil, engine.WithClock(clock))
}

func TestLaunchRunsToConclusion(t *testing.T) {
	m := newManager(roles.Godfather, roles.Sheriff, roles.Doctor)
	defer m.Close()

	id := m.Create()
	l := m.Get(id)
	for _, n := range []string{"A", "B", "C"} {
		if err := l.Join(n, n, engine.Automated); err != nil {
			t.Fatalf("join: %v", err)
		}
	}

	var mu sync.Mutex
	var hooked *engine.Game
	m.OnStart(func(_ *lobby.Lobby, g *engine.Game) {
		mu.Lock()
		hooked = g
		mu.Unlock()
	})

	g, err := m.Launch(id)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if g.ID != id {
		t.Errorf("game should carry the lobby ID")
	}
	if l.Game() != g {
		t.Error("lobby should hold the running game")
	}
	mu.Lock()
	if hooked != g {
		t.Error("start hook did not run")
	}
	mu.Unlock()

	select {
	case <-g.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("game did not conclude")
	}
	if g.Result() == nil {
		t.Fatal("expected a result")
	}

	if _, err := m.Launch(id); !errors.Is(err, lobby.ErrStarted) {
		t.Fatalf("expected ErrStarted, got %v", err)
	}
}

func TestLaunchSetupErrorReopensLobby(t *testing.T) {
	m := newManager(roles.Godfather, "Nobody", roles.Doctor)
	defer m.Close()
	var launched *engine.Game
	m.OnStart(func(_ *lobby.Lobby, g *engine.Game) { launched = g })

	id := m.Create()
	l := m.Get(id)
	for _, n := range []string{"A", "B", "C"} {
		l.Join(n, n, engine.Automated)
	}
	_, err := m.Launch(id)
	var cfgErr *engine.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
	if l.IsStarted() {
		t.Error("lobby should accept a new start")
	}
	if launched == nil {
		t.Fatal("start hook should have seen the game")
	}
	select {
	case <-launched.Done():
	case <-time.After(time.Second):
		t.Fatal("a game that failed setup should be released")
	}
	if launched.Result() != nil {
		t.Errorf("an abandoned game has no result, got %+v", launched.Result())
	}
	if _, err := m.Launch("missing"); !errors.Is(err, lobby.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
