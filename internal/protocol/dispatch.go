package protocol

import (
	"errors"
	"fmt"

	"mafia/internal/engine"
)

// ErrUnknownType is returned by Dispatch for message types that are not
// in-game input.
var ErrUnknownType = errors.New("unknown message type")

// Dispatch applies one in-game input message from actor to g.
func Dispatch(g *engine.Game, actor string, env Envelope) error {
	switch env.Type {
	case MsgTargets:
		var m TargetsMsg
		if err := env.Decode(&m); err != nil {
			return fmt.Errorf("invalid targets message: %w", err)
		}
		return g.ChooseTargets(actor, m.Targets...)

	case MsgVest:
		var m VestMsg
		if err := env.Decode(&m); err != nil {
			return fmt.Errorf("invalid vest message: %w", err)
		}
		if m.On {
			return g.PutOnVest(actor)
		}
		return g.TakeOffVest(actor)

	case MsgTrialVote:
		var m TrialVoteMsg
		if err := env.Decode(&m); err != nil {
			return fmt.Errorf("invalid trial vote: %w", err)
		}
		return g.SubmitTrialVote(actor, m.Candidate)

	case MsgSkipVote:
		return g.SubmitSkipVote(actor)

	case MsgLynchVote:
		var m LynchVoteMsg
		if err := env.Decode(&m); err != nil {
			return fmt.Errorf("invalid lynch vote: %w", err)
		}
		v, err := engine.ParseVerdict(m.Verdict)
		if err != nil {
			return err
		}
		return g.SubmitLynchVote(actor, v)

	case MsgSay, MsgLastWill, MsgDeathNote:
		var m TextMsg
		if err := env.Decode(&m); err != nil {
			return fmt.Errorf("invalid %s message: %w", env.Type, err)
		}
		switch env.Type {
		case MsgSay:
			return g.Say(actor, m.Text)
		case MsgLastWill:
			return g.SetLastWill(actor, m.Text)
		}
		return g.SetDeathNote(actor, m.Text)
	}
	return fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
}
