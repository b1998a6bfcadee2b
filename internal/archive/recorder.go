package archive

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mafia/internal/engine"
	"mafia/internal/lobby"
)

// Recorder is a bus driver writing the public side of one game to the
// store. Private messages and feedback are never archived.
type Recorder struct {
	store *Store
	log   *zap.Logger
}

func NewRecorder(s *Store, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: s, log: log}
}

func (r *Recorder) Wants(e engine.Event) bool { return !e.Private() }

func (r *Recorder) Deliver(e engine.Event) {
	if err := r.store.Append(context.Background(), e); err != nil {
		r.log.Error("archive event", zap.String("game", e.GameID), zap.String("event", e.ID), zap.Error(err))
	}
}

// ReasonAbandoned is archived for games that ended without a result: a
// failed setup or a server shutdown mid-game.
const ReasonAbandoned = "abandoned"

// Follow registers g, subscribes a recorder and stores the outcome once the
// game is over.
func (s *Store) Follow(g *engine.Game, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := s.BeginGame(context.Background(), g.ID, time.Now()); err != nil {
		return err
	}
	g.MessageBus().Subscribe(NewRecorder(s, log))

	go func() {
		<-g.Done()
		r := g.Result()
		if r == nil {
			r = &engine.Result{Reason: ReasonAbandoned}
		}
		if err := s.Finish(context.Background(), g.ID, g.RoleList(), *r, time.Now()); err != nil {
			log.Error("archive result", zap.String("game", g.ID), zap.Error(err))
		}
	}()
	return nil
}

// Hook archives every game a lobby manager starts.
func (s *Store) Hook(log *zap.Logger) lobby.StartHook {
	return func(_ *lobby.Lobby, g *engine.Game) {
		if err := s.Follow(g, log); err != nil && log != nil {
			log.Error("archive game", zap.String("game", g.ID), zap.Error(err))
		}
	}
}
