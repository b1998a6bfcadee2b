package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mafia/internal/archive"
	"mafia/internal/engine"
	"mafia/internal/lobby"
	qr "mafia/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TranscriptSource serves archived games.
type TranscriptSource interface {
	Transcript(ctx context.Context, gameID string) (*archive.Transcript, error)
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr    *lobby.Manager
	Transcripts TranscriptSource

	mu   sync.Mutex
	hubs map[string]*Hub
	log  *zap.Logger
}

// NewHandlers wires the chat UI into mgr: every game the manager starts is
// relayed to the matching room.
func NewHandlers(mgr *lobby.Manager, transcripts TranscriptSource, log *zap.Logger) *Handlers {
	h := &Handlers{
		LobbyMgr:    mgr,
		Transcripts: transcripts,
		hubs:        make(map[string]*Hub),
		log:         log,
	}
	mgr.OnStart(func(l *lobby.Lobby, g *engine.Game) {
		h.hub(l.ID).attach(g)
	})
	return h
}

// hub returns the room for gameID, creating it on first use.
func (h *Handlers) hub(gameID string) *Hub {
	h.mu.Lock()
	defer h.mu.Unlock()
	if hub, ok := h.hubs[gameID]; ok {
		return hub
	}
	hub := NewHub(gameID, h.LobbyMgr, h.log)
	h.hubs[gameID] = hub
	go hub.Run()
	return hub
}

// Close stops every room.
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, hub := range h.hubs {
		hub.Stop()
		delete(h.hubs, id)
	}
}

// HandleCreateGame creates a new game lobby and redirects to its table view.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	h.hub(gameID)
	http.Redirect(w, r, fmt.Sprintf("/?game=%s&type=table", gameID), http.StatusSeeOther)
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	png, err := qr.Generate(qr.JoinURL(r.Host, gameID))
	if err != nil {
		h.log.Error("qr", zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS upgrades a table or player connection for an existing lobby.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "table" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	if h.LobbyMgr.Get(gameID) == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	hub := h.hub(gameID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade", zap.Error(err))
		return
	}

	ct := ClientPlayer
	if clientType == "table" {
		ct = ClientTable
	}

	client := NewClient(hub, conn, playerID, ct)
	select {
	case hub.register <- client:
	case <-hub.quit:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(GeneratePlayerID()))
}

// HandleTranscript returns the archived public transcript of a game.
func (h *Handlers) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	if h.Transcripts == nil {
		http.Error(w, "archive disabled", http.StatusNotFound)
		return
	}
	t, err := h.Transcripts.Transcript(r.Context(), gameID)
	if errors.Is(err, archive.ErrNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("transcript", zap.String("game", gameID), zap.Error(err))
		http.Error(w, "transcript unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}
