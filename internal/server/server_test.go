package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mafia/internal/archive"
	"mafia/internal/engine"
	"mafia/internal/engine/roles"
	"mafia/internal/lobby"
	"mafia/internal/protocol"
	"mafia/internal/server"
)

type fixture struct {
	mgr   *lobby.Manager
	store *archive.Store
	srv   *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := archive.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	mgr := lobby.NewManager(roles.DefaultConfig(), roles.NewCatalog(), nil)
	h := server.NewHandlers(mgr, store, zap.NewNop())
	srv := httptest.NewServer(server.New(0, nil, h, zap.NewNop()).Handler())
	t.Cleanup(func() {
		srv.Close()
		h.Close()
		mgr.Close()
		store.Close()
	})
	return &fixture{mgr: mgr, store: store, srv: srv}
}

func TestCreateGameRedirects(t *testing.T) {
	f := newFixture(t)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(f.srv.URL + "/api/create")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	id := strings.TrimSuffix(strings.TrimPrefix(loc, "/?game="), "&type=table")
	if f.mgr.Get(id) == nil {
		t.Fatalf("no lobby behind %q", loc)
	}
}

func TestQR(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.srv.URL + "/api/qr")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without a game, got %d", resp.StatusCode)
	}

	resp, err = http.Get(f.srv.URL + "/api/qr?game=abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected a png, got %q", ct)
	}
}

func TestTranscript(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.BeginGame(ctx, "g1", time.Now())
	f.store.Append(ctx, engine.Event{ID: "e1", GameID: "g1", Time: time.Now(), Kind: engine.EventAnnouncement, Body: "Day 1"})

	resp, err := http.Get(f.srv.URL + "/api/transcript?game=g1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var tr archive.Transcript
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatal(err)
	}
	if tr.Game.ID != "g1" || len(tr.Events) != 1 || tr.Events[0].Body != "Day 1" {
		t.Fatalf("unexpected transcript %+v", tr)
	}

	resp2, err := http.Get(f.srv.URL + "/api/transcript?game=missing")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp2.StatusCode)
	}
}

func TestWebSocketJoin(t *testing.T) {
	f := newFixture(t)
	id := f.mgr.Create()

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws?game=" + id + "&type=player"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	join := protocol.MustEnvelope(protocol.MsgJoin, protocol.JoinMsg{PlayerID: "p1", Name: "Ann"})
	if err := conn.WriteJSON(join); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var env protocol.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read: %v", err)
		}
		if env.Type != protocol.MsgLobbyUpdate {
			continue
		}
		var lu protocol.LobbyUpdate
		if err := env.Decode(&lu); err != nil {
			t.Fatal(err)
		}
		if len(lu.Players) == 1 && lu.Players[0].Name == "Ann" && lu.Players[0].Kind == "human" {
			return
		}
	}
}

func TestWebSocketUnknownGame(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.srv.URL + "/ws?game=missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
