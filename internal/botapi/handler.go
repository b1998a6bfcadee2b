// Package botapi is the REST driver for automated participants. Bots join a
// lobby, poll their mailbox for events and submit the same input as human
// players.
package botapi

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mafia/internal/engine"
	"mafia/internal/lobby"
	"mafia/internal/protocol"
)

// Handler serves the bot API for every lobby of a manager.
type Handler struct {
	mgr *lobby.Manager
	log *zap.Logger

	mu    sync.Mutex
	boxes map[string]map[string]*Mailbox // game -> bot name -> mailbox
}

// NewHandler subscribes a mailbox for every automated participant of each
// game mgr starts.
func NewHandler(mgr *lobby.Manager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{
		mgr:   mgr,
		log:   log,
		boxes: make(map[string]map[string]*Mailbox),
	}
	mgr.OnStart(h.attach)
	return h
}

func (h *Handler) attach(l *lobby.Lobby, g *engine.Game) {
	boxes := make(map[string]*Mailbox)
	for _, p := range l.GetPlayers() {
		if p.Kind != engine.Automated {
			continue
		}
		m := NewMailbox(p.Name)
		g.MessageBus().Subscribe(m)
		boxes[p.Name] = m
	}
	h.mu.Lock()
	h.boxes[g.ID] = boxes
	h.mu.Unlock()
}

func (h *Handler) mailbox(gameID, name string) *Mailbox {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.boxes[gameID][name]
}

// Router builds the gin engine serving the API.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests)

	games := r.Group("/games/:game", h.loadLobby)
	games.POST("/bots", h.join)
	games.POST("/start", h.start)

	bot := games.Group("/bots/:name", h.loadBot)
	bot.GET("/events", h.events)
	bot.GET("/view", h.view)
	bot.POST("/targets", h.input(protocol.MsgTargets))
	bot.POST("/trial-vote", h.input(protocol.MsgTrialVote))
	bot.POST("/skip-vote", h.input(protocol.MsgSkipVote))
	bot.POST("/lynch-vote", h.input(protocol.MsgLynchVote))
	bot.POST("/vest", h.input(protocol.MsgVest))
	bot.POST("/say", h.input(protocol.MsgSay))
	bot.POST("/last-will", h.input(protocol.MsgLastWill))
	bot.POST("/death-note", h.input(protocol.MsgDeathNote))
	return r
}

func (h *Handler) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Debug("bot api",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("took", time.Since(start)),
	)
}

type errorBody struct {
	Error string `json:"error"`
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, errorBody{Error: err.Error()})
}

func (h *Handler) loadLobby(c *gin.Context) {
	l := h.mgr.Get(c.Param("game"))
	if l == nil {
		abort(c, http.StatusNotFound, lobby.ErrNotFound)
		return
	}
	c.Set("lobby", l)
	c.Next()
}

// loadBot resolves the running game and checks that :name is one of its
// automated seats.
func (h *Handler) loadBot(c *gin.Context) {
	l := c.MustGet("lobby").(*lobby.Lobby)
	g := l.Game()
	if g == nil {
		abort(c, http.StatusConflict, errors.New("game not started"))
		return
	}
	name := c.Param("name")
	m := h.mailbox(g.ID, name)
	if m == nil {
		abort(c, http.StatusForbidden, errors.New("not an automated participant of this game"))
		return
	}
	c.Set("game", g)
	c.Set("mailbox", m)
	c.Next()
}

type joinRequest struct {
	Name string `json:"name" binding:"required"`
}

type joinResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) join(c *gin.Context) {
	l := c.MustGet("lobby").(*lobby.Lobby)
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	id := uuid.NewString()
	if err := l.Join(id, req.Name, engine.Automated); err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusCreated, joinResponse{ID: id, Name: req.Name})
}

func (h *Handler) start(c *gin.Context) {
	l := c.MustGet("lobby").(*lobby.Lobby)
	g, err := h.mgr.Launch(l.ID)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, g.PublicView())
}

type eventsResponse struct {
	Events  []engine.Event `json:"events"`
	Dropped int            `json:"dropped,omitempty"`
}

func (h *Handler) events(c *gin.Context) {
	events, dropped := c.MustGet("mailbox").(*Mailbox).Drain()
	c.JSON(http.StatusOK, eventsResponse{Events: events, Dropped: dropped})
}

func (h *Handler) view(c *gin.Context) {
	g := c.MustGet("game").(*engine.Game)
	c.JSON(http.StatusOK, g.ViewFor(c.Param("name")))
}

// input relays the request body as a message of type typ.
func (h *Handler) input(typ string) gin.HandlerFunc {
	return func(c *gin.Context) {
		g := c.MustGet("game").(*engine.Game)
		body, err := c.GetRawData()
		if err != nil {
			abort(c, http.StatusBadRequest, err)
			return
		}
		env := protocol.Envelope{Type: typ, Payload: body}
		if err := protocol.Dispatch(g, c.Param("name"), env); err != nil {
			abort(c, statusFor(err), err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func statusFor(err error) int {
	var cfgErr *engine.ConfigError
	switch {
	case errors.Is(err, lobby.ErrNotFound), errors.Is(err, engine.ErrActorNotFound):
		return http.StatusNotFound
	case errors.Is(err, lobby.ErrStarted), errors.Is(err, lobby.ErrFull),
		errors.Is(err, lobby.ErrNameTaken), errors.Is(err, lobby.ErrNotReady),
		errors.Is(err, lobby.ErrNotEnoughPlayers),
		errors.Is(err, engine.ErrWrongPhase), errors.Is(err, engine.ErrInputLocked),
		errors.Is(err, engine.ErrTribunalClosed), errors.Is(err, engine.ErrActorDead),
		errors.Is(err, engine.ErrConcluded):
		return http.StatusConflict
	case errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
