package server

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"mafia/internal/engine"
	"mafia/internal/lobby"
	"mafia/internal/protocol"
)

// Hub is the chat-UI driver of one game room. Before the start it relays
// lobby traffic; afterwards it is subscribed to the game's bus and routes
// every event to the clients allowed to see it.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	manager    *lobby.Manager
	game       *engine.Game
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	log        *zap.Logger
}

func NewHub(gameID string, mgr *lobby.Manager, log *zap.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      mgr.Get(gameID),
		manager:    mgr,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
		log:        log.With(zap.String("game", gameID)),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			h.sendState(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			return
		}
	}
}

// Stop ends the hub loop.
func (h *Hub) Stop() {
	close(h.quit)
}

// attach subscribes the hub to g's bus. Called from the lobby start hook
// before roles are dealt, so clients see the role list and their own role.
func (h *Hub) attach(g *engine.Game) {
	h.mu.Lock()
	h.game = g
	h.mu.Unlock()
	g.MessageBus().Subscribe(h)

	go func() {
		select {
		case <-g.Done():
			r := g.Result()
			if r == nil {
				// abandoned before it ran; the lobby is open again
				h.mu.Lock()
				if h.game == g {
					h.game = nil
				}
				h.mu.Unlock()
				h.sendLobbyUpdate()
				return
			}
			h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, r))
			h.broadcastState()
		case <-h.quit:
		}
	}()
}

// Wants accepts every event; Deliver decides who may see it.
func (h *Hub) Wants(engine.Event) bool { return true }

// Deliver routes one bus event. Private events go to the addressee only.
func (h *Hub) Deliver(e engine.Event) {
	env := protocol.MustEnvelope(protocol.MsgEvent, e)
	if !e.Private() {
		h.broadcastAll(env)
		h.broadcastState()
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.Type == ClientPlayer && h.playerName(c) == e.To {
			c.SendEnvelope(env)
			h.pushState(c)
		}
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil || join.PlayerID == "" {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	h.mu.Lock()
	msg.Client.PlayerID = join.PlayerID
	msg.Client.Type = ClientPlayer
	h.mu.Unlock()
	if err := h.lobby.Join(join.PlayerID, join.Name, engine.Human); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if _, err := h.manager.Launch(h.gameID); err != nil {
		h.log.Info("start refused", zap.Error(err))
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
	h.broadcastState()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	h.mu.Lock()
	g := h.game
	h.mu.Unlock()
	if g == nil {
		h.sendError(msg.Client, "game not started")
		return
	}
	p, ok := h.lobby.Player(msg.Client.PlayerID)
	if !ok {
		h.sendError(msg.Client, "not seated in this game")
		return
	}

	if err := protocol.Dispatch(g, p.Name, msg.Envelope); err != nil {
		if errors.Is(err, protocol.ErrUnknownType) {
			h.log.Debug("unknown message", zap.String("type", msg.Envelope.Type))
		}
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendState(msg.Client)
}

func (h *Hub) broadcastState() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.pushState(c)
	}
}

func (h *Hub) sendState(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		h.pushState(c)
	}
}

// pushState sends the view c is entitled to. Caller holds h.mu.
func (h *Hub) pushState(c *Client) {
	if h.game == nil {
		return
	}
	if c.Type == ClientTable {
		c.SendEnvelope(protocol.MustEnvelope(protocol.MsgGameState, h.game.PublicView()))
		return
	}
	c.SendEnvelope(protocol.MustEnvelope(protocol.MsgPlayerState, h.game.ViewFor(h.playerName(c))))
}

func (h *Hub) playerName(c *Client) string {
	p, ok := h.lobby.Player(c.PlayerID)
	if !ok {
		return ""
	}
	return p.Name
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Kind: p.Kind.String(), Ready: p.Ready}
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:  h.gameID,
		Players: lps,
		Started: h.lobby.IsStarted(),
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.trySend(data)
	}
}

func (h *Hub) sendError(c *Client, message string) {
	h.sendTo(c, protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}

func (h *Hub) sendTo(c *Client, env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		c.SendEnvelope(env)
	}
}
