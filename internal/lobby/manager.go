package lobby

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mafia/internal/engine"
)

var ErrNotFound = errors.New("lobby not found")

// StartHook runs once a lobby's participants are seated in a new game, before
// roles are dealt. Hooks subscribe drivers to the game's bus.
type StartHook func(l *Lobby, g *engine.Game)

// Manager manages multiple lobbies and the games they start.
type Manager struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	hooks   []StartHook

	cfg     engine.GameConfig
	catalog *engine.Catalog
	opts    []engine.Option
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(cfg engine.GameConfig, cat *engine.Catalog, log *zap.Logger, opts ...engine.Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		lobbies: make(map[string]*Lobby),
		cfg:     cfg,
		catalog: cat,
		opts:    opts,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// OnStart registers h for every game started afterwards.
func (m *Manager) OnStart(h StartHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, h)
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.lobbies[id] = NewLobby(id, m.cfg.MaxParticipants)
	return id
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// Launch starts lobby id: it seats every player in a new game, runs the
// start hooks, deals roles and drives the game in the background until it
// concludes or the manager is closed.
func (m *Manager) Launch(id string) (*engine.Game, error) {
	l := m.Get(id)
	if l == nil {
		return nil, ErrNotFound
	}
	players, err := l.Start()
	if err != nil {
		return nil, err
	}

	opts := append([]engine.Option{
		engine.WithID(l.ID),
		engine.WithLogger(m.log),
	}, m.opts...)
	g := engine.NewGame(m.cfg, m.catalog, opts...)
	for _, p := range players {
		if err := g.AddParticipant(p.Name, p.Kind); err != nil {
			l.abort()
			return nil, fmt.Errorf("seat %s: %w", p.Name, err)
		}
	}

	m.mu.Lock()
	hooks := append([]StartHook(nil), m.hooks...)
	m.mu.Unlock()
	for _, h := range hooks {
		h(l, g)
	}

	if err := g.Setup(); err != nil {
		g.MessageBus().Close()
		g.Abandon()
		l.abort()
		return nil, err
	}
	l.setGame(g)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer g.MessageBus().Close()
		if err := g.Run(m.ctx); err != nil && !errors.Is(err, context.Canceled) {
			m.log.Error("game stopped", zap.String("game", g.ID), zap.Error(err))
			return
		}
		if r := g.Result(); r != nil {
			m.log.Info("game concluded",
				zap.String("game", g.ID),
				zap.String("reason", r.Reason),
				zap.Strings("winners", r.Winners),
			)
		}
	}()
	return g, nil
}

// Close stops every running game and waits for their drivers to drain.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}
