package engine

import (
	"errors"
	"fmt"
)

var (
	ErrWrongPhase          = errors.New("wrong phase for this action")
	ErrActorNotFound       = errors.New("actor not found")
	ErrActorDead           = errors.New("actor is dead")
	ErrInvalidTarget       = errors.New("invalid target")
	ErrSelfVote            = errors.New("cannot vote for yourself")
	ErrAccusedCannotVote   = errors.New("the accused cannot vote")
	ErrNoVests             = errors.New("no vest available")
	ErrInputLocked         = errors.New("input is locked while the night resolves")
	ErrTribunalClosed      = errors.New("tribunal is not accepting this vote")
	ErrDuplicateName       = errors.New("a participant with that name already joined")
	ErrTooManyParticipants = errors.New("too many participants")
	ErrNoAbility           = errors.New("role has no usable ability")
	ErrNotAllowed          = errors.New("not allowed")
	ErrConcluded           = errors.New("game concluded")
)

// ConfigErrorKind classifies configuration errors.
type ConfigErrorKind int

const (
	ConfigUnknownRole ConfigErrorKind = iota
	ConfigUnknownGroup
	ConfigMalformed
	ConfigUnsatisfiable
	ConfigBadOverride
)

var configErrorNames = map[ConfigErrorKind]string{
	ConfigUnknownRole:   "unknown role",
	ConfigUnknownGroup:  "unknown group",
	ConfigMalformed:     "malformed role list",
	ConfigUnsatisfiable: "unsatisfiable role list",
	ConfigBadOverride:   "bad role override",
}

// ConfigError is returned by Setup and Catalog.Create. The game never leaves
// PhaseInit after one.
type ConfigError struct {
	Kind ConfigErrorKind
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", configErrorNames[e.Kind], e.Msg)
}

func configErr(kind ConfigErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
