package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// pollInterval bounds each sleep while waiting on deadlines or an active
// tribunal.
const pollInterval = 250 * time.Millisecond

var tracer = otel.Tracer("mafia/engine")

// Run drives the turn cycle until the game concludes or ctx is cancelled.
// Setup must have succeeded first.
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.mu.Lock()
	if g.abandoned {
		g.mu.Unlock()
		return ErrConcluded
	}
	if g.roleList == nil {
		g.mu.Unlock()
		return ErrWrongPhase
	}
	g.stop = cancel
	g.mu.Unlock()
	defer g.finish()

	g.log.Info("game started", zap.Int("actors", len(g.actors)))
	for {
		err := g.Step(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrConcluded):
			return nil
		}
		if g.Phase() == PhaseConcluded {
			return nil
		}
		return err
	}
}

// Step runs the work of the current phase, waits out its minimum duration
// and moves to the next phase.
func (g *Game) Step(ctx context.Context) error {
	g.mu.Lock()
	from, turn := g.phase, g.turn
	g.mu.Unlock()
	if from == PhaseConcluded {
		return ErrConcluded
	}

	ctx, span := tracer.Start(ctx, "phase."+from.String(), trace.WithAttributes(
		attribute.String("game.id", g.ID),
		attribute.Int("game.turn", turn),
		attribute.String("game.phase", from.String()),
	))
	defer span.End()

	start := g.clock.Now()
	timing := g.cfg.Timing
	var err error

	switch from {
	case PhaseInit:
		g.mu.Lock()
		g.turn = 1
		g.mu.Unlock()

	case PhaseDaybreak:
		g.mu.Lock()
		g.flushPending()
		g.mu.Unlock()
		err = g.hold(ctx, start, timing.DaybreakToDaylight.Std())

	case PhaseDaylight:
		err = g.daylight(ctx)

	case PhaseDusk:
		g.mu.Lock()
		g.dusk()
		g.mu.Unlock()
		err = g.hold(ctx, start, timing.DuskToNight.Std())

	case PhaseNight:
		err = g.hold(ctx, start, timing.NightDuration.Std())
		g.mu.Lock()
		g.inputLocked = true
		g.mu.Unlock()

	case PhaseNightSequence:
		g.mu.Lock()
		g.nightSequence()
		over := g.phase == PhaseConcluded
		g.mu.Unlock()
		if !over {
			err = g.hold(ctx, start, timing.NightSequenceDuration.Std())
		}
		g.mu.Lock()
		g.endTurn()
		g.mu.Unlock()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseConcluded {
		return nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if g.phase != from || g.turn < turn {
		g.log.Error("scheduler invariant violated",
			zap.Stringer("expected", from),
			zap.Stringer("phase", g.phase),
			zap.Int("turn", g.turn),
			zap.Int("previous_turn", turn),
		)
		span.SetStatus(codes.Error, "scheduler invariant violated")
		g.conclude("The game was stopped after an internal error.", true)
		return nil
	}

	g.phase = from.Next()
	g.log.Debug("phase", zap.Stringer("phase", g.phase), zap.Int("turn", g.turn))
	g.publish(Event{
		Kind:  EventAnnouncement,
		Title: "Phase",
		Body:  phaseBanner(g.phase, g.turn),
	})
	return nil
}

func phaseBanner(p GamePhase, turn int) string {
	switch p {
	case PhaseDaybreak:
		return fmt.Sprintf("The sun rises on day %d.", turn)
	case PhaseDaylight:
		return "It is daylight. The town gathers."
	case PhaseDusk:
		return "Dusk falls."
	case PhaseNight:
		return fmt.Sprintf("Night %d begins. Choose your targets.", turn)
	case PhaseNightSequence:
		return "The night plays out."
	}
	return p.String()
}

// daylight runs the tribunal until it closes. A tribunal already opened
// through Tribunal().Open is left running.
func (g *Game) daylight(ctx context.Context) error {
	g.mu.Lock()
	if !g.tribunal.opened && !(g.turn == 1 && g.cfg.Timing.SkipFirstDay) {
		g.tribunal.open(g.clock.Now())
	}
	g.mu.Unlock()

	for {
		g.mu.Lock()
		g.tribunal.tick(g.clock.Now())
		closed := g.tribunal.mode == TribunalClosed
		g.mu.Unlock()
		if closed {
			return nil
		}
		if err := g.clock.Sleep(ctx, pollInterval); err != nil {
			return err
		}
	}
}

// hold waits until min has elapsed since start and no tribunal is active.
// An active tribunal keeps ticking while the phase is held.
func (g *Game) hold(ctx context.Context, start time.Time, min time.Duration) error {
	for {
		g.mu.Lock()
		if g.tribunal.active() {
			g.tribunal.tick(g.clock.Now())
		}
		busy := g.tribunal.active() && g.phase != PhaseConcluded
		g.mu.Unlock()

		left := min - g.clock.Now().Sub(start)
		if left <= 0 && !busy {
			return nil
		}
		d := pollInterval
		if left > 0 && left < d {
			d = left
		}
		if err := g.clock.Sleep(ctx, d); err != nil {
			return err
		}
	}
}
