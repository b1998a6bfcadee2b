package archive_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mafia/internal/archive"
	"mafia/internal/engine"
	"mafia/internal/engine/roles"
)

func openStore(t *testing.T) *archive.Store {
	t.Helper()
	s, err := archive.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTranscript(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := s.BeginGame(ctx, "g1", start); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.BeginGame(ctx, "g1", start.Add(time.Hour)); err != nil {
		t.Fatalf("second begin should be ignored: %v", err)
	}
	events := []engine.Event{
		{ID: "e1", GameID: "g1", Time: start, Turn: 1, Phase: engine.PhaseDaybreak, Kind: engine.EventAnnouncement, Title: "Phase", Body: "Day 1"},
		{ID: "e2", GameID: "g1", Time: start.Add(time.Second), Turn: 1, Phase: engine.PhaseDaylight, Kind: engine.EventPlayerPublic, From: "Ann", Body: "hello"},
	}
	for _, e := range events {
		if err := s.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := s.Append(ctx, events[0]); err != nil {
		t.Fatalf("duplicate append should be ignored: %v", err)
	}
	res := engine.Result{Reason: "The town has won.", Winners: []string{"Ann", "Bob"}}
	if err := s.Finish(ctx, "g1", []string{"Sheriff", "Doctor"}, res, start.Add(time.Minute)); err != nil {
		t.Fatalf("finish: %v", err)
	}

	tr, err := s.Transcript(ctx, "g1")
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}
	if !tr.Game.StartedAt.Equal(start) {
		t.Errorf("unexpected start %v", tr.Game.StartedAt)
	}
	if tr.Game.FinishedAt == nil || tr.Game.Winners != "Ann, Bob" || tr.Game.RoleList != "Sheriff, Doctor" {
		t.Errorf("unexpected game record %+v", tr.Game)
	}
	if len(tr.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(tr.Events))
	}
	if tr.Events[0].ID != "e1" || tr.Events[1].Sender != "Ann" || tr.Events[1].Phase != "Daylight" {
		t.Errorf("unexpected events %+v", tr.Events)
	}
}

func TestTranscriptNotFound(t *testing.T) {
	s := openStore(t)
	if _, err := s.Transcript(context.Background(), "nope"); !errors.Is(err, archive.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	err := s.Finish(context.Background(), "nope", nil, engine.Result{}, time.Now())
	if !errors.Is(err, archive.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGamesNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		if err := s.BeginGame(ctx, fmt.Sprintf("g%d", i), start.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}
	games, err := s.Games(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 || games[0].ID != "g2" || games[1].ID != "g1" {
		t.Fatalf("unexpected order %+v", games)
	}
}

func TestRecorderSkipsPrivate(t *testing.T) {
	r := archive.NewRecorder(nil, nil)
	if r.Wants(engine.Event{Kind: engine.EventPrivateFeedback}) {
		t.Error("feedback must not be archived")
	}
	if !r.Wants(engine.Event{Kind: engine.EventIndicator}) {
		t.Error("indicators are public")
	}
}

func TestFollowArchivesGame(t *testing.T) {
	s := openStore(t)
	cfg := roles.DefaultConfig()
	cfg.Timing = engine.Timing{}
	cfg.RoleList = []string{"Name::" + roles.Godfather, "Name::" + roles.Sheriff, "Name::" + roles.Doctor}
	cfg.Seed = 9
	clock := engine.NewManualClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	g := engine.NewGame(cfg, roles.NewCatalog(), engine.WithClock(clock))
	for _, n := range []string{"Ann", "Bob", "Cid"} {
		g.AddParticipant(n, engine.Human)
	}

	if err := s.Follow(g, nil); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := g.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	g.MessageBus().Close()

	var tr *archive.Transcript
	deadline := time.Now().Add(5 * time.Second)
	for {
		var err error
		tr, err = s.Transcript(context.Background(), g.ID)
		if err != nil {
			t.Fatalf("transcript: %v", err)
		}
		if tr.Game.FinishedAt != nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if tr.Game.FinishedAt == nil {
		t.Fatal("the outcome was never archived")
	}
	if tr.Game.Reason != g.Result().Reason {
		t.Errorf("unexpected reason %q", tr.Game.Reason)
	}

	sawRoleList := false
	for _, e := range tr.Events {
		if e.Kind == string(engine.EventPrivateMessage) || e.Kind == string(engine.EventPrivateFeedback) {
			t.Fatalf("private event archived: %+v", e)
		}
		if e.Title == "Role list" {
			sawRoleList = true
		}
	}
	if !sawRoleList {
		t.Error("the role list announcement should be archived")
	}
}

func TestFollowFinishesAbandonedGame(t *testing.T) {
	s := openStore(t)
	cfg := roles.DefaultConfig()
	cfg.RoleList = []string{"Name::Nobody", "Name::" + roles.Sheriff, "Name::" + roles.Doctor}
	g := engine.NewGame(cfg, roles.NewCatalog())
	for _, n := range []string{"Ann", "Bob", "Cid"} {
		g.AddParticipant(n, engine.Human)
	}
	if err := s.Follow(g, nil); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := g.Setup(); err == nil {
		t.Fatal("setup should fail on an unknown role")
	}
	g.MessageBus().Close()
	g.Abandon()

	deadline := time.Now().Add(5 * time.Second)
	for {
		tr, err := s.Transcript(context.Background(), g.ID)
		if err != nil {
			t.Fatalf("transcript: %v", err)
		}
		if tr.Game.FinishedAt != nil {
			if tr.Game.Reason != archive.ReasonAbandoned {
				t.Errorf("unexpected reason %q", tr.Game.Reason)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("the abandoned game was never finished")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
